package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"speedrun/app_error"
	"speedrun/auth"
	"speedrun/repository"

	"github.com/google/uuid"
)

type ProfileUpdate struct {
	Username  *string
	AvatarUrl *string
	Bio       *string
}

type UserService struct {
	userRepository UserStore
	activity       *ActivityService
}

func NewUserService(userRepository UserStore, activity *ActivityService) *UserService {
	return &UserService{
		userRepository: userRepository,
		activity:       activity,
	}
}

// GetActor resolves the roles of a user from storage on every call, so role
// changes apply to tokens that were issued before them.
func (s *UserService) GetActor(ctx context.Context, userId uuid.UUID) (*Actor, error) {
	profile, err := s.userRepository.GetProfileById(ctx, userId)
	if errors.Is(err, app_error.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user %s", app_error.ErrUnauthenticated, userId)
	}
	if err != nil {
		return nil, err
	}
	return &Actor{UserId: profile.Id, Roles: profile.RoleNames()}, nil
}

func (s *UserService) GetActorFromToken(ctx context.Context, token string) (*Actor, error) {
	claims, err := auth.ClaimsFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", app_error.ErrUnauthenticated, err)
	}
	return s.GetActor(ctx, claims.UserId)
}

// IssueToken signs a token for an existing profile.
func (s *UserService) IssueToken(ctx context.Context, userId uuid.UUID) (string, error) {
	profile, err := s.userRepository.GetProfileById(ctx, userId)
	if err != nil {
		return "", err
	}
	return auth.CreateToken(profile.Id)
}

func (s *UserService) GetProfile(ctx context.Context, userId uuid.UUID) (*repository.Profile, error) {
	return s.userRepository.GetProfileById(ctx, userId)
}

func (s *UserService) GetAllProfiles(ctx context.Context, actor *Actor) ([]*repository.Profile, error) {
	if err := requireAdmin(actor, "listing users"); err != nil {
		return nil, err
	}
	return s.userRepository.GetAllProfiles(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *Actor, update ProfileUpdate) (*repository.Profile, error) {
	if err := requireActor(actor, "updating a profile"); err != nil {
		return nil, err
	}
	profile, err := s.userRepository.GetProfileById(ctx, actor.UserId)
	if err != nil {
		return nil, err
	}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if len(username) < 3 || len(username) > 32 {
			return nil, fmt.Errorf("%w: username must be between 3 and 32 characters", app_error.ErrInvalidFormat)
		}
		profile.Username = username
	}
	if update.AvatarUrl != nil {
		profile.AvatarUrl = update.AvatarUrl
	}
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	return s.userRepository.SaveProfile(ctx, profile)
}

func (s *UserService) AssignRole(ctx context.Context, actor *Actor, userId uuid.UUID, role repository.Role) error {
	if err := requireAdmin(actor, "assigning roles"); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", app_error.ErrInvalidFormat, role)
	}
	profile, err := s.userRepository.GetProfileById(ctx, userId)
	if err != nil {
		return err
	}
	if err := s.userRepository.AddRole(ctx, profile.Id, role); err != nil {
		if errors.Is(err, app_error.ErrConflict) {
			return fmt.Errorf("%w: %s already has the %s role", app_error.ErrConflict, profile.Username, role)
		}
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:   "role_assigned",
		Category:     ActivityUsers,
		Description:  fmt.Sprintf("Assigned %s role to %s", role, profile.Username),
		TargetUserId: &profile.Id,
		Metadata:     map[string]any{"role": string(role)},
	})
	return nil
}

func (s *UserService) RemoveRole(ctx context.Context, actor *Actor, userId uuid.UUID, role repository.Role) error {
	if err := requireAdmin(actor, "removing roles"); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", app_error.ErrInvalidFormat, role)
	}
	if userId == actor.UserId && role == repository.RoleAdmin {
		return fmt.Errorf("%w: you cannot remove your own admin role", app_error.ErrConflict)
	}
	if err := s.userRepository.RemoveRole(ctx, userId, role); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:   "role_removed",
		Category:     ActivityUsers,
		Description:  fmt.Sprintf("Removed %s role", role),
		TargetUserId: &userId,
		Metadata:     map[string]any{"role": string(role)},
	})
	return nil
}
