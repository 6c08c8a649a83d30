package controller

import (
	"time"

	"speedrun/app_error"
	"speedrun/repository"
	"speedrun/service"
	"speedrun/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BanController struct {
	banService *service.BanService
}

func NewBanController(services *service.Services) *BanController {
	return &BanController{banService: services.Bans}
}

func setupBanController(services *service.Services) []RouteInfo {
	e := NewBanController(services)
	moderators := []repository.Role{repository.RoleModerator, repository.RoleAdmin}
	return []RouteInfo{
		{Method: "GET", Path: "/bans", HandlerFunc: e.getBansHandler(), Authenticated: true, RequiredRoles: moderators},
		{Method: "POST", Path: "/bans", HandlerFunc: e.createBanHandler(), Authenticated: true, RequiredRoles: moderators},
		{Method: "DELETE", Path: "/bans/:id", HandlerFunc: e.deleteBanHandler(), Authenticated: true, RequiredRoles: moderators},
	}
}

// @id GetBans
// @Description Fetches all bans, newest first
// @Tags ban
// @Produce json
// @Success 200 {array} Ban
// @Security BearerAuth
// @Router /bans [get]
func (e *BanController) getBansHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		bans, err := e.banService.GetBans(c.Request.Context(), getActor(c))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(bans, toBanResponse))
	}
}

// @id CreateBan
// @Description Bans a user permanently or for a number of hours (default 24)
// @Tags ban
// @Accept json
// @Produce json
// @Param body body BanCreate true "Ban to create"
// @Success 201 {object} Ban
// @Security BearerAuth
// @Router /bans [post]
func (e *BanController) createBanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body BanCreate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		ban, err := e.banService.BanUser(c.Request.Context(), getActor(c), service.BanCreate{
			UserId:        body.UserId,
			Reason:        body.Reason,
			IsPermanent:   body.IsPermanent,
			DurationHours: body.DurationHours,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toBanResponse(ban))
	}
}

// @id DeleteBan
// @Description Lifts a ban
// @Tags ban
// @Param id path string true "Ban Id"
// @Success 204
// @Security BearerAuth
// @Router /bans/{id} [delete]
func (e *BanController) deleteBanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		banId, ok := parseId(c, "id")
		if !ok {
			return
		}
		if err := e.banService.Unban(c.Request.Context(), getActor(c), banId); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

type BanCreate struct {
	UserId        uuid.UUID `json:"user_id" binding:"required"`
	Reason        *string   `json:"reason"`
	IsPermanent   bool      `json:"is_permanent"`
	DurationHours *int      `json:"duration_hours"`
}

type Ban struct {
	Id           uuid.UUID    `json:"id" binding:"required"`
	UserId       uuid.UUID    `json:"user_id" binding:"required"`
	BannedBy     uuid.UUID    `json:"banned_by" binding:"required"`
	Reason       *string      `json:"reason"`
	IsPermanent  bool         `json:"is_permanent" binding:"required"`
	ExpiresAt    *time.Time   `json:"expires_at"`
	CreatedAt    time.Time    `json:"created_at" binding:"required"`
	User         *MinimalUser `json:"user,omitempty"`
	BannedByUser *MinimalUser `json:"banned_by_user,omitempty"`
}

func toBanResponse(ban *repository.Ban) *Ban {
	return &Ban{
		Id:           ban.Id,
		UserId:       ban.UserId,
		BannedBy:     ban.BannedBy,
		Reason:       ban.Reason,
		IsPermanent:  ban.IsPermanent,
		ExpiresAt:    ban.ExpiresAt,
		CreatedAt:    ban.CreatedAt,
		User:         toMinimalUserResponse(ban.User),
		BannedByUser: toMinimalUserResponse(ban.BannedByUser),
	}
}
