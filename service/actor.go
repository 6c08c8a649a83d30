package service

import (
	"fmt"

	"speedrun/app_error"
	"speedrun/repository"
	"speedrun/utils"

	"github.com/google/uuid"
)

// Actor is the caller of an operation. A nil *Actor is an anonymous caller.
type Actor struct {
	UserId uuid.UUID
	Roles  []repository.Role
}

func (a *Actor) HasRole(roles ...repository.Role) bool {
	if a == nil {
		return false
	}
	return utils.Any(roles, func(role repository.Role) bool {
		return utils.Contains(a.Roles, role)
	})
}

func (a *Actor) IsModerator() bool {
	return a.HasRole(repository.RoleModerator, repository.RoleAdmin)
}

func (a *Actor) IsAdmin() bool {
	return a.HasRole(repository.RoleAdmin)
}

func requireActor(actor *Actor, action string) error {
	if actor == nil {
		return fmt.Errorf("%w: %s requires a signed in user", app_error.ErrUnauthenticated, action)
	}
	return nil
}

func requireModerator(actor *Actor, action string) error {
	if err := requireActor(actor, action); err != nil {
		return err
	}
	if !actor.IsModerator() {
		return fmt.Errorf("%w: %s requires the moderator role", app_error.ErrUnauthorized, action)
	}
	return nil
}

func requireAdmin(actor *Actor, action string) error {
	if err := requireActor(actor, action); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: %s requires the admin role", app_error.ErrUnauthorized, action)
	}
	return nil
}
