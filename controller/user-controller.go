package controller

import (
	"time"

	"speedrun/app_error"
	"speedrun/repository"
	"speedrun/service"
	"speedrun/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserController struct {
	userService *service.UserService
	banService  *service.BanService
	pageCache   PageCache
	logger      *zap.Logger
}

func NewUserController(services *service.Services, pageCache PageCache, logger *zap.Logger) *UserController {
	return &UserController{
		userService: services.Users,
		banService:  services.Bans,
		pageCache:   pageCache,
		logger:      logger,
	}
}

// setupUserController only exposes token issuing when devTokens is set.
func setupUserController(services *service.Services, pageCache PageCache, logger *zap.Logger, devTokens bool) []RouteInfo {
	e := NewUserController(services, pageCache, logger)
	admin := []repository.Role{repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "/users", HandlerFunc: e.getAllUsersHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "GET", Path: "/users/self", HandlerFunc: e.getSelfHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/users/self", HandlerFunc: e.updateSelfHandler(), Authenticated: true},
		{Method: "GET", Path: "/users/:user_id", HandlerFunc: e.getUserByIdHandler()},
		{Method: "GET", Path: "/users/:user_id/banned", HandlerFunc: e.getBanStatusHandler()},
		{Method: "POST", Path: "/users/:user_id/roles", HandlerFunc: e.assignRoleHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "DELETE", Path: "/users/:user_id/roles/:role", HandlerFunc: e.removeRoleHandler(), Authenticated: true, RequiredRoles: admin},
	}
	if devTokens {
		routes = append(routes, RouteInfo{Method: "POST", Path: "/auth/token", HandlerFunc: e.issueTokenHandler()})
	}
	return routes
}

// @id GetAllUsers
// @Description Fetches all users with their roles
// @Tags user
// @Produce json
// @Success 200 {array} User
// @Security BearerAuth
// @Router /users [get]
func (e *UserController) getAllUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := e.userService.GetAllProfiles(c.Request.Context(), getActor(c))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(profiles, toUserResponse))
	}
}

// @id GetSelf
// @Description Fetches the authenticated user and what they may do
// @Tags user
// @Produce json
// @Success 200 {object} Self
// @Security BearerAuth
// @Router /users/self [get]
func (e *UserController) getSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := getActor(c)
		profile, err := e.userService.GetProfile(c.Request.Context(), actor.UserId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toSelfResponse(profile, actor))
	}
}

// @id UpdateSelf
// @Description Updates the profile of the authenticated user
// @Tags user
// @Accept json
// @Produce json
// @Param body body UserUpdate true "Fields to change"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/self [patch]
func (e *UserController) updateSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body UserUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		profile, err := e.userService.UpdateProfile(c.Request.Context(), getActor(c), service.ProfileUpdate{
			Username:  body.Username,
			AvatarUrl: body.AvatarUrl,
			Bio:       body.Bio,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		// cached leaderboards embed usernames
		e.pageCache.flush(e.logger)
		c.JSON(200, toUserResponse(profile))
	}
}

// @id GetUser
// @Description Fetches a user profile
// @Tags user
// @Produce json
// @Param user_id path string true "User Id"
// @Success 200 {object} User
// @Router /users/{user_id} [get]
func (e *UserController) getUserByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := parseId(c, "user_id")
		if !ok {
			return
		}
		profile, err := e.userService.GetProfile(c.Request.Context(), userId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserResponse(profile))
	}
}

// @id GetBanStatus
// @Description Tells whether a user is currently banned
// @Tags user
// @Produce json
// @Param user_id path string true "User Id"
// @Success 200 {object} BanStatus
// @Router /users/{user_id}/banned [get]
func (e *UserController) getBanStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := parseId(c, "user_id")
		if !ok {
			return
		}
		banned, err := e.banService.IsBanned(c.Request.Context(), userId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, BanStatus{Banned: banned})
	}
}

// @id AssignRole
// @Description Grants a role to a user
// @Tags user
// @Accept json
// @Param user_id path string true "User Id"
// @Param body body RoleAssignment true "Role to grant"
// @Success 204
// @Security BearerAuth
// @Router /users/{user_id}/roles [post]
func (e *UserController) assignRoleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := parseId(c, "user_id")
		if !ok {
			return
		}
		var body RoleAssignment
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.userService.AssignRole(c.Request.Context(), getActor(c), userId, body.Role); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id RemoveRole
// @Description Revokes a role from a user
// @Tags user
// @Param user_id path string true "User Id"
// @Param role path string true "Role"
// @Success 204
// @Security BearerAuth
// @Router /users/{user_id}/roles/{role} [delete]
func (e *UserController) removeRoleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := parseId(c, "user_id")
		if !ok {
			return
		}
		role := repository.Role(c.Param("role"))
		if err := e.userService.RemoveRole(c.Request.Context(), getActor(c), userId, role); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id IssueToken
// @Description Issues a token for an existing user. Only available outside production.
// @Tags user
// @Accept json
// @Produce json
// @Param body body TokenRequest true "User to sign in as"
// @Success 200 {object} TokenResponse
// @Router /auth/token [post]
func (e *UserController) issueTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body TokenRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		token, err := e.userService.IssueToken(c.Request.Context(), body.UserId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, TokenResponse{Token: token})
	}
}

type UserUpdate struct {
	Username  *string `json:"username"`
	AvatarUrl *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

type RoleAssignment struct {
	Role repository.Role `json:"role" binding:"required,oneof=admin moderator user"`
}

type TokenRequest struct {
	UserId uuid.UUID `json:"user_id" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token" binding:"required"`
}

type BanStatus struct {
	Banned bool `json:"banned" binding:"required"`
}

type User struct {
	Id        uuid.UUID         `json:"id" binding:"required"`
	Username  string            `json:"username" binding:"required"`
	AvatarUrl *string           `json:"avatar_url"`
	Bio       *string           `json:"bio"`
	CreatedAt time.Time         `json:"created_at" binding:"required"`
	Roles     []repository.Role `json:"roles" binding:"required"`
}

type Capabilities struct {
	CanSubmit     bool `json:"can_submit" binding:"required"`
	CanVerify     bool `json:"can_verify" binding:"required"`
	CanAdminister bool `json:"can_administer" binding:"required"`
}

type Self struct {
	User
	Capabilities Capabilities `json:"capabilities" binding:"required"`
}

func toUserResponse(profile *repository.Profile) *User {
	return &User{
		Id:        profile.Id,
		Username:  profile.Username,
		AvatarUrl: profile.AvatarUrl,
		Bio:       profile.Bio,
		CreatedAt: profile.CreatedAt,
		Roles:     profile.RoleNames(),
	}
}

func toSelfResponse(profile *repository.Profile, actor *service.Actor) *Self {
	user := toUserResponse(profile)
	user.Roles = actor.Roles
	return &Self{
		User: *user,
		Capabilities: Capabilities{
			CanSubmit:     true,
			CanVerify:     actor.IsModerator(),
			CanAdminister: actor.IsAdmin(),
		},
	}
}
