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

type AnnouncementController struct {
	announcementService *service.AnnouncementService
}

func NewAnnouncementController(services *service.Services) *AnnouncementController {
	return &AnnouncementController{announcementService: services.Announcements}
}

func setupAnnouncementController(services *service.Services) []RouteInfo {
	e := NewAnnouncementController(services)
	admin := []repository.Role{repository.RoleAdmin}
	basePath := "/announcements"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getAnnouncementsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createAnnouncementHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "PATCH", Path: "/:id", HandlerFunc: e.updateAnnouncementHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "DELETE", Path: "/:id", HandlerFunc: e.deleteAnnouncementHandler(), Authenticated: true, RequiredRoles: admin},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetAnnouncements
// @Description Fetches all announcements, newest first
// @Tags announcement
// @Produce json
// @Success 200 {array} Announcement
// @Router /announcements [get]
func (e *AnnouncementController) getAnnouncementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		announcements, err := e.announcementService.GetAnnouncements(c.Request.Context())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(announcements, toAnnouncementResponse))
	}
}

// @id CreateAnnouncement
// @Description Posts an announcement
// @Tags announcement
// @Accept json
// @Produce json
// @Param body body AnnouncementCreate true "Announcement to post"
// @Success 201 {object} Announcement
// @Security BearerAuth
// @Router /announcements [post]
func (e *AnnouncementController) createAnnouncementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body AnnouncementCreate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		announcement, err := e.announcementService.CreateAnnouncement(c.Request.Context(), getActor(c), body.Title, body.Content)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toAnnouncementResponse(announcement))
	}
}

// @id UpdateAnnouncement
// @Description Edits an announcement
// @Tags announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement Id"
// @Param body body AnnouncementCreate true "New title and content"
// @Success 200 {object} Announcement
// @Security BearerAuth
// @Router /announcements/{id} [patch]
func (e *AnnouncementController) updateAnnouncementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseId(c, "id")
		if !ok {
			return
		}
		var body AnnouncementCreate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		announcement, err := e.announcementService.UpdateAnnouncement(c.Request.Context(), getActor(c), id, body.Title, body.Content)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toAnnouncementResponse(announcement))
	}
}

// @id DeleteAnnouncement
// @Description Deletes an announcement
// @Tags announcement
// @Param id path string true "Announcement Id"
// @Success 204
// @Security BearerAuth
// @Router /announcements/{id} [delete]
func (e *AnnouncementController) deleteAnnouncementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseId(c, "id")
		if !ok {
			return
		}
		if err := e.announcementService.DeleteAnnouncement(c.Request.Context(), getActor(c), id); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

type AnnouncementCreate struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type Announcement struct {
	Id        uuid.UUID    `json:"id" binding:"required"`
	Title     string       `json:"title" binding:"required"`
	Content   string       `json:"content" binding:"required"`
	CreatedAt time.Time    `json:"created_at" binding:"required"`
	UpdatedAt time.Time    `json:"updated_at" binding:"required"`
	Creator   *MinimalUser `json:"creator,omitempty"`
}

func toAnnouncementResponse(announcement *repository.Announcement) *Announcement {
	return &Announcement{
		Id:        announcement.Id,
		Title:     announcement.Title,
		Content:   announcement.Content,
		CreatedAt: announcement.CreatedAt,
		UpdatedAt: announcement.UpdatedAt,
		Creator:   toMinimalUserResponse(announcement.Creator),
	}
}
