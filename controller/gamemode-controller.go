package controller

import (
	"speedrun/app_error"
	"speedrun/metric"
	"speedrun/repository"
	"speedrun/service"
	"speedrun/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GamemodeController struct {
	gamemodeService *service.GamemodeService
	pageCache       PageCache
	logger          *zap.Logger
}

func NewGamemodeController(services *service.Services, pageCache PageCache, logger *zap.Logger) *GamemodeController {
	return &GamemodeController{
		gamemodeService: services.Gamemodes,
		pageCache:       pageCache,
		logger:          logger,
	}
}

func setupGamemodeController(services *service.Services, pageCache PageCache, logger *zap.Logger) []RouteInfo {
	e := NewGamemodeController(services, pageCache, logger)
	admin := []repository.Role{repository.RoleAdmin}
	return []RouteInfo{
		{Method: "GET", Path: "/gamemodes", HandlerFunc: e.getGamemodesHandler()},
		{Method: "GET", Path: "/gamemodes/:slug", HandlerFunc: e.getGamemodeHandler()},
		{Method: "POST", Path: "/gamemodes", HandlerFunc: e.createGamemodeHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "PATCH", Path: "/gamemodes/:id", HandlerFunc: e.updateGamemodeHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "DELETE", Path: "/gamemodes/:id", HandlerFunc: e.deleteGamemodeHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "GET", Path: "/gamemodes/:slug/categories/:category_slug", HandlerFunc: e.getCategoryBySlugsHandler()},
		{Method: "POST", Path: "/categories", HandlerFunc: e.createCategoryHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "PATCH", Path: "/categories/:id", HandlerFunc: e.updateCategoryHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "DELETE", Path: "/categories/:id", HandlerFunc: e.deleteCategoryHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "GET", Path: "/metrics/kinds", HandlerFunc: e.getMetricKindsHandler()},
	}
}

// @id GetGamemodes
// @Description Fetches all gamemodes with their categories
// @Tags gamemode
// @Produce json
// @Success 200 {array} Gamemode
// @Router /gamemodes [get]
func (e *GamemodeController) getGamemodesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		gamemodes, err := e.gamemodeService.GetAllGamemodes(c.Request.Context())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(gamemodes, toGamemodeResponse))
	}
}

// @id GetGamemode
// @Description Fetches a gamemode by its slug
// @Tags gamemode
// @Produce json
// @Param slug path string true "Gamemode slug"
// @Success 200 {object} Gamemode
// @Router /gamemodes/{slug} [get]
func (e *GamemodeController) getGamemodeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		gamemode, err := e.gamemodeService.GetGamemodeBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toGamemodeResponse(gamemode))
	}
}

// @id CreateGamemode
// @Description Creates a gamemode
// @Tags gamemode
// @Accept json
// @Produce json
// @Param body body GamemodeCreate true "Gamemode to create"
// @Success 201 {object} Gamemode
// @Security BearerAuth
// @Router /gamemodes [post]
func (e *GamemodeController) createGamemodeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body GamemodeCreate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gamemode, err := e.gamemodeService.CreateGamemode(c.Request.Context(), getActor(c), service.GamemodeCreate{
			Name:         body.Name,
			Slug:         body.Slug,
			Description:  body.Description,
			Icon:         body.Icon,
			DisplayOrder: body.DisplayOrder,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toGamemodeResponse(gamemode))
	}
}

// @id UpdateGamemode
// @Description Updates a gamemode
// @Tags gamemode
// @Accept json
// @Produce json
// @Param id path string true "Gamemode Id"
// @Param body body GamemodeUpdate true "Fields to change"
// @Success 200 {object} Gamemode
// @Security BearerAuth
// @Router /gamemodes/{id} [patch]
func (e *GamemodeController) updateGamemodeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseId(c, "id")
		if !ok {
			return
		}
		var body GamemodeUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		gamemode, err := e.gamemodeService.UpdateGamemode(c.Request.Context(), getActor(c), id, service.GamemodeUpdate{
			Name:         body.Name,
			Description:  body.Description,
			Icon:         body.Icon,
			DisplayOrder: body.DisplayOrder,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		e.pageCache.flush(e.logger)
		c.JSON(200, toGamemodeResponse(gamemode))
	}
}

// @id DeleteGamemode
// @Description Deletes a gamemode with all of its categories and runs
// @Tags gamemode
// @Param id path string true "Gamemode Id"
// @Success 204
// @Security BearerAuth
// @Router /gamemodes/{id} [delete]
func (e *GamemodeController) deleteGamemodeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseId(c, "id")
		if !ok {
			return
		}
		if err := e.gamemodeService.DeleteGamemode(c.Request.Context(), getActor(c), id); err != nil {
			app_error.Respond(c, err)
			return
		}
		e.pageCache.flush(e.logger)
		c.Status(204)
	}
}

// @id GetCategoryBySlugs
// @Description Fetches a category by gamemode and category slug
// @Tags category
// @Produce json
// @Param slug path string true "Gamemode slug"
// @Param category_slug path string true "Category slug"
// @Success 200 {object} Category
// @Router /gamemodes/{slug}/categories/{category_slug} [get]
func (e *GamemodeController) getCategoryBySlugsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := e.gamemodeService.GetCategoryBySlugs(c.Request.Context(), c.Param("slug"), c.Param("category_slug"))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toCategoryResponse(category))
	}
}

// @id CreateCategory
// @Description Creates a category inside a gamemode
// @Tags category
// @Accept json
// @Produce json
// @Param body body CategoryCreate true "Category to create"
// @Success 201 {object} Category
// @Security BearerAuth
// @Router /categories [post]
func (e *GamemodeController) createCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body CategoryCreate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		category, err := e.gamemodeService.CreateCategory(c.Request.Context(), getActor(c), body.toModel())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toCategoryResponse(category))
	}
}

// @id UpdateCategory
// @Description Updates a category. The metric type cannot change.
// @Tags category
// @Accept json
// @Produce json
// @Param id path string true "Category Id"
// @Param body body CategoryUpdate true "Fields to change"
// @Success 200 {object} Category
// @Security BearerAuth
// @Router /categories/{id} [patch]
func (e *GamemodeController) updateCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseId(c, "id")
		if !ok {
			return
		}
		var body CategoryUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		category, err := e.gamemodeService.UpdateCategory(c.Request.Context(), getActor(c), id, body.toModel())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		e.pageCache.flush(e.logger)
		c.JSON(200, toCategoryResponse(category))
	}
}

// @id DeleteCategory
// @Description Deletes a category with all of its runs
// @Tags category
// @Param id path string true "Category Id"
// @Success 204
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (e *GamemodeController) deleteCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseId(c, "id")
		if !ok {
			return
		}
		if err := e.gamemodeService.DeleteCategory(c.Request.Context(), getActor(c), id); err != nil {
			app_error.Respond(c, err)
			return
		}
		e.pageCache.flush(e.logger)
		c.Status(204)
	}
}

// @id GetMetricKinds
// @Description Lists the metric types with their input hints
// @Tags category
// @Produce json
// @Success 200 {array} MetricKind
// @Router /metrics/kinds [get]
func (e *GamemodeController) getMetricKindsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, utils.Map(metric.Kinds, toMetricKindResponse))
	}
}

type GamemodeCreate struct {
	Name         string  `json:"name" binding:"required"`
	Slug         string  `json:"slug" binding:"required"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	DisplayOrder int     `json:"display_order"`
}

type GamemodeUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
}

type CategoryCreate struct {
	GamemodeId    uuid.UUID   `json:"gamemode_id" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Slug          string      `json:"slug" binding:"required"`
	Description   *string     `json:"description"`
	Rules         *string     `json:"rules"`
	MetricType    metric.Kind `json:"metric_type" binding:"omitempty,oneof=time count score"`
	TimingMethod  *string     `json:"timing_method"`
	Difficulty    *string     `json:"difficulty"`
	EstimatedTime *string     `json:"estimated_time"`
	DisplayOrder  int         `json:"display_order"`
}

type CategoryUpdate struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	Rules         *string      `json:"rules"`
	MetricType    *metric.Kind `json:"metric_type"`
	TimingMethod  *string      `json:"timing_method"`
	Difficulty    *string      `json:"difficulty"`
	EstimatedTime *string      `json:"estimated_time"`
	DisplayOrder  *int         `json:"display_order"`
}

type MetricKind struct {
	Kind metric.Kind `json:"kind" binding:"required"`
	metric.Descriptor
}

func (body *CategoryCreate) toModel() service.CategoryCreate {
	return service.CategoryCreate{
		GamemodeId:    body.GamemodeId,
		Name:          body.Name,
		Slug:          body.Slug,
		Description:   body.Description,
		Rules:         body.Rules,
		MetricType:    body.MetricType,
		TimingMethod:  body.TimingMethod,
		Difficulty:    body.Difficulty,
		EstimatedTime: body.EstimatedTime,
		DisplayOrder:  body.DisplayOrder,
	}
}

func (body *CategoryUpdate) toModel() service.CategoryUpdate {
	return service.CategoryUpdate{
		Name:          body.Name,
		Description:   body.Description,
		Rules:         body.Rules,
		MetricType:    body.MetricType,
		TimingMethod:  body.TimingMethod,
		Difficulty:    body.Difficulty,
		EstimatedTime: body.EstimatedTime,
		DisplayOrder:  body.DisplayOrder,
	}
}

func toMetricKindResponse(kind metric.Kind) MetricKind {
	return MetricKind{Kind: kind, Descriptor: kind.Describe()}
}
