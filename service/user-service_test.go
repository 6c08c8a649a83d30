package service

import (
	"context"
	"testing"

	"speedrun/app_error"
	"speedrun/auth"
	"speedrun/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActorLoadsRolesFromStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	actor, err := f.services.Users.GetActor(ctx, f.runner.UserId)
	require.NoError(t, err)
	assert.Equal(t, []repository.Role{repository.RoleUser}, actor.Roles)
	assert.False(t, actor.IsModerator())

	require.NoError(t, f.services.Users.AssignRole(ctx, f.admin, f.runner.UserId, repository.RoleModerator))
	actor, err = f.services.Users.GetActor(ctx, f.runner.UserId)
	require.NoError(t, err)
	assert.True(t, actor.IsModerator())
	assert.False(t, actor.IsAdmin())

	_, err = f.services.Users.GetActor(ctx, uuid.New())
	assert.ErrorIs(t, err, app_error.ErrUnauthenticated)
}

func TestGetActorFromToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := auth.CreateToken(f.moderator.UserId)
	require.NoError(t, err)
	actor, err := f.services.Users.GetActorFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, f.moderator.UserId, actor.UserId)
	assert.True(t, actor.IsModerator())

	_, err = f.services.Users.GetActorFromToken(ctx, "not a token")
	assert.ErrorIs(t, err, app_error.ErrUnauthenticated)
}

func TestAssignRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.services.Users.AssignRole(ctx, f.moderator, f.runner.UserId, repository.RoleAdmin)
	assert.ErrorIs(t, err, app_error.ErrUnauthorized)

	err = f.services.Users.AssignRole(ctx, f.admin, f.runner.UserId, "owner")
	assert.ErrorIs(t, err, app_error.ErrInvalidFormat)

	require.NoError(t, f.services.Users.AssignRole(ctx, f.admin, f.runner.UserId, repository.RoleModerator))
	err = f.services.Users.AssignRole(ctx, f.admin, f.runner.UserId, repository.RoleModerator)
	assert.ErrorIs(t, err, app_error.ErrConflict)

	err = f.services.Users.AssignRole(ctx, f.admin, uuid.New(), repository.RoleModerator)
	assert.ErrorIs(t, err, app_error.ErrNotFound)
	assert.Equal(t, []string{"role_assigned"}, f.activityLogs.actions())
}

func TestRemoveRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.services.Users.RemoveRole(ctx, f.admin, f.admin.UserId, repository.RoleAdmin)
	assert.ErrorIs(t, err, app_error.ErrConflict)

	require.NoError(t, f.services.Users.RemoveRole(ctx, f.admin, f.moderator.UserId, repository.RoleModerator))
	actor, err := f.services.Users.GetActor(ctx, f.moderator.UserId)
	require.NoError(t, err)
	assert.False(t, actor.IsModerator())

	err = f.services.Users.RemoveRole(ctx, f.admin, f.moderator.UserId, repository.RoleModerator)
	assert.ErrorIs(t, err, app_error.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	username := "  speedy  "
	bio := "any% enjoyer"
	profile, err := f.services.Users.UpdateProfile(ctx, f.runner, ProfileUpdate{Username: &username, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "speedy", profile.Username)
	assert.Equal(t, "any% enjoyer", *profile.Bio)

	short := "ab"
	_, err = f.services.Users.UpdateProfile(ctx, f.runner, ProfileUpdate{Username: &short})
	assert.ErrorIs(t, err, app_error.ErrInvalidFormat)

	_, err = f.services.Users.UpdateProfile(ctx, nil, ProfileUpdate{})
	assert.ErrorIs(t, err, app_error.ErrUnauthenticated)
}
