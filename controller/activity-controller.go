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

type ActivityController struct {
	activityService *service.ActivityService
}

func NewActivityController(services *service.Services) *ActivityController {
	return &ActivityController{activityService: services.Activity}
}

func setupActivityController(services *service.Services) []RouteInfo {
	e := NewActivityController(services)
	return []RouteInfo{
		{Method: "GET", Path: "/activity-logs", HandlerFunc: e.getActivityLogsHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
	}
}

// @id GetActivityLogs
// @Description Fetches the audit log, newest first
// @Tags activity
// @Produce json
// @Param category query string false "Only entries of this category"
// @Param limit query int false "Maximum number of entries (default 100)"
// @Success 200 {array} ActivityLog
// @Security BearerAuth
// @Router /activity-logs [get]
func (e *ActivityController) getActivityLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryLimit(c)
		if !ok {
			return
		}
		logs, err := e.activityService.GetActivityLogs(c.Request.Context(), getActor(c), c.Query("category"), limit)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(logs, toActivityLogResponse))
	}
}

type ActivityLog struct {
	Id           uuid.UUID      `json:"id" binding:"required"`
	ActionType   string         `json:"action_type" binding:"required"`
	Category     string         `json:"category" binding:"required"`
	Description  string         `json:"description" binding:"required"`
	PerformedBy  uuid.UUID      `json:"performed_by" binding:"required"`
	TargetUserId *uuid.UUID     `json:"target_user_id"`
	Metadata     map[string]any `json:"metadata" binding:"required"`
	CreatedAt    time.Time      `json:"created_at" binding:"required"`
	Performer    *MinimalUser   `json:"performer,omitempty"`
	Target       *MinimalUser   `json:"target,omitempty"`
}

func toActivityLogResponse(activity *repository.ActivityLog) *ActivityLog {
	return &ActivityLog{
		Id:           activity.Id,
		ActionType:   activity.ActionType,
		Category:     activity.Category,
		Description:  activity.Description,
		PerformedBy:  activity.PerformedBy,
		TargetUserId: activity.TargetUserId,
		Metadata:     activity.Metadata,
		CreatedAt:    activity.CreatedAt,
		Performer:    toMinimalUserResponse(activity.Performer),
		Target:       toMinimalUserResponse(activity.Target),
	}
}
