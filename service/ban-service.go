package service

import (
	"context"
	"fmt"
	"time"

	"speedrun/app_error"
	"speedrun/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBanDuration = 24 * time.Hour

type BanCreate struct {
	UserId        uuid.UUID
	Reason        *string
	IsPermanent   bool
	DurationHours *int
}

type BanService struct {
	banRepository  BanStore
	userRepository UserStore
	activity       *ActivityService
	logger         *zap.Logger
	now            func() time.Time
}

func NewBanService(banRepository BanStore, userRepository UserStore, activity *ActivityService, logger *zap.Logger) *BanService {
	return &BanService{
		banRepository:  banRepository,
		userRepository: userRepository,
		activity:       activity,
		logger:         logger,
		now:            time.Now,
	}
}

// activeBan returns the first ban of the user in force at now, or nil.
func activeBan(ctx context.Context, bans BanStore, userId uuid.UUID, now time.Time) (*repository.Ban, error) {
	userBans, err := bans.GetBansForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	for _, ban := range userBans {
		if ban.IsActive(now) {
			return ban, nil
		}
	}
	return nil, nil
}

func (s *BanService) IsBanned(ctx context.Context, userId uuid.UUID) (bool, error) {
	ban, err := activeBan(ctx, s.banRepository, userId, s.now())
	if err != nil {
		return false, err
	}
	return ban != nil, nil
}

func (s *BanService) GetBans(ctx context.Context, actor *Actor) ([]*repository.Ban, error) {
	if err := requireModerator(actor, "listing bans"); err != nil {
		return nil, err
	}
	return s.banRepository.GetBans(ctx)
}

func (s *BanService) BanUser(ctx context.Context, actor *Actor, create BanCreate) (*repository.Ban, error) {
	if err := requireModerator(actor, "banning a user"); err != nil {
		return nil, err
	}
	if create.UserId == actor.UserId {
		return nil, fmt.Errorf("%w: you cannot ban yourself", app_error.ErrInvalidFormat)
	}
	target, err := s.userRepository.GetProfileById(ctx, create.UserId)
	if err != nil {
		return nil, err
	}
	now := s.now()
	ban := &repository.Ban{
		UserId:      target.Id,
		BannedBy:    actor.UserId,
		Reason:      create.Reason,
		IsPermanent: create.IsPermanent,
		CreatedAt:   now,
	}
	if !create.IsPermanent {
		duration := defaultBanDuration
		if create.DurationHours != nil {
			if *create.DurationHours <= 0 {
				return nil, fmt.Errorf("%w: ban duration must be a positive number of hours", app_error.ErrInvalidFormat)
			}
			duration = time.Duration(*create.DurationHours) * time.Hour
		}
		expiresAt := now.Add(duration)
		ban.ExpiresAt = &expiresAt
	}
	if err := s.banRepository.CreateBan(ctx, ban); err != nil {
		return nil, err
	}
	s.logger.Info("user banned", zap.Stringer("user", target.Id), zap.Stringer("by", actor.UserId), zap.Bool("permanent", ban.IsPermanent))
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:   "user_banned",
		Category:     ActivityModeration,
		Description:  fmt.Sprintf("Banned %s", target.Username),
		TargetUserId: &target.Id,
		Metadata:     map[string]any{"ban_id": ban.Id.String(), "permanent": ban.IsPermanent},
	})
	return ban, nil
}

func (s *BanService) Unban(ctx context.Context, actor *Actor, banId uuid.UUID) error {
	if err := requireModerator(actor, "lifting a ban"); err != nil {
		return err
	}
	ban, err := s.banRepository.GetBanById(ctx, banId)
	if err != nil {
		return err
	}
	if err := s.banRepository.DeleteBan(ctx, banId); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:   "user_unbanned",
		Category:     ActivityModeration,
		Description:  "Lifted a ban",
		TargetUserId: &ban.UserId,
		Metadata:     map[string]any{"ban_id": ban.Id.String()},
	})
	return nil
}
