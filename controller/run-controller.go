package controller

import (
	"strconv"

	"speedrun/app_error"
	"speedrun/repository"
	"speedrun/service"
	"speedrun/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RunController struct {
	runService *service.RunService
	pageCache  PageCache
	logger     *zap.Logger
}

func NewRunController(services *service.Services, pageCache PageCache, logger *zap.Logger) *RunController {
	return &RunController{
		runService: services.Runs,
		pageCache:  pageCache,
		logger:     logger,
	}
}

func setupRunController(services *service.Services, pageCache PageCache, logger *zap.Logger) []RouteInfo {
	e := NewRunController(services, pageCache, logger)
	leaderboard := e.getLeaderboardHandler()
	if pageCache.Store != nil {
		leaderboard = cache.CachePage(pageCache.Store, pageCache.Expires, leaderboard)
	}
	reviewers := []repository.Role{repository.RoleModerator, repository.RoleAdmin}
	return []RouteInfo{
		{Method: "GET", Path: "/categories/:id/leaderboard", HandlerFunc: leaderboard},
		{Method: "GET", Path: "/runs/recent", HandlerFunc: e.getRecentRunsHandler()},
		{Method: "GET", Path: "/runs/pending", HandlerFunc: e.getPendingRunsHandler(), Authenticated: true, RequiredRoles: reviewers},
		{Method: "GET", Path: "/runs/:id", HandlerFunc: e.getRunHandler()},
		{Method: "GET", Path: "/users/:user_id/runs", HandlerFunc: e.getRunsForUserHandler()},
		{Method: "POST", Path: "/runs", HandlerFunc: e.submitRunHandler(), Authenticated: true},
		{Method: "PUT", Path: "/runs/:id/review", HandlerFunc: e.reviewRunHandler(), Authenticated: true, RequiredRoles: reviewers},
		{Method: "DELETE", Path: "/runs/:id", HandlerFunc: e.deleteRunHandler(), Authenticated: true},
	}
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(400, gin.H{"error": "limit must be a non-negative number"})
		return 0, false
	}
	return limit, true
}

// @id GetLeaderboard
// @Description Fetches the ranked approved runs of a category
// @Tags run
// @Produce json
// @Param id path string true "Category Id"
// @Param limit query int false "Maximum number of entries (default 100, max 500)"
// @Success 200 {object} Leaderboard
// @Router /categories/{id}/leaderboard [get]
func (e *RunController) getLeaderboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryId, ok := parseId(c, "id")
		if !ok {
			return
		}
		limit, ok := queryLimit(c)
		if !ok {
			return
		}
		leaderboard, err := e.runService.GetLeaderboard(c.Request.Context(), categoryId, limit)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toLeaderboardResponse(leaderboard))
	}
}

// @id GetRecentRuns
// @Description Fetches the most recently submitted approved runs
// @Tags run
// @Produce json
// @Param limit query int false "Maximum number of runs (default 10)"
// @Success 200 {array} Run
// @Router /runs/recent [get]
func (e *RunController) getRecentRunsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryLimit(c)
		if !ok {
			return
		}
		runs, err := e.runService.GetRecentRuns(c.Request.Context(), limit)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(runs, toRunResponse))
	}
}

// @id GetPendingRuns
// @Description Fetches the runs waiting for review, oldest first
// @Tags run
// @Produce json
// @Success 200 {array} Run
// @Security BearerAuth
// @Router /runs/pending [get]
func (e *RunController) getPendingRunsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := e.runService.GetPendingRuns(c.Request.Context(), getActor(c))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(runs, toRunResponse))
	}
}

// @id GetRun
// @Description Fetches a run
// @Tags run
// @Produce json
// @Param id path string true "Run Id"
// @Success 200 {object} Run
// @Router /runs/{id} [get]
func (e *RunController) getRunHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		runId, ok := parseId(c, "id")
		if !ok {
			return
		}
		run, err := e.runService.GetRun(c.Request.Context(), runId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toRunResponse(run))
	}
}

// @id GetRunsForUser
// @Description Fetches all runs of a user, newest first
// @Tags run
// @Produce json
// @Param user_id path string true "User Id"
// @Success 200 {array} Run
// @Router /users/{user_id}/runs [get]
func (e *RunController) getRunsForUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := parseId(c, "user_id")
		if !ok {
			return
		}
		runs, err := e.runService.GetRunsForUser(c.Request.Context(), userId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(runs, toRunResponse))
	}
}

// @id SubmitRun
// @Description Submits a run for review
// @Tags run
// @Accept json
// @Produce json
// @Param body body RunCreate true "Run to submit"
// @Success 201 {object} Run
// @Security BearerAuth
// @Router /runs [post]
func (e *RunController) submitRunHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body RunCreate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		run, err := e.runService.Submit(c.Request.Context(), getActor(c), service.SubmitRun{
			CategoryId:  body.CategoryId,
			Value:       body.Value,
			EvidenceUrl: body.EvidenceUrl,
			Notes:       body.Notes,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toRunResponse(run))
	}
}

// @id ReviewRun
// @Description Approves or rejects a pending run
// @Tags run
// @Accept json
// @Produce json
// @Param id path string true "Run Id"
// @Param body body RunReview true "Review decision"
// @Success 200 {object} Run
// @Failure 409 {object} map[string]any "already reviewed or changed concurrently"
// @Security BearerAuth
// @Router /runs/{id}/review [put]
func (e *RunController) reviewRunHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		runId, ok := parseId(c, "id")
		if !ok {
			return
		}
		var body RunReview
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		run, err := e.runService.Verify(c.Request.Context(), getActor(c), runId, service.Decision{
			Status:          body.Status,
			RejectionReason: body.RejectionReason,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		if run.Status == repository.RunStatusApproved {
			e.pageCache.flush(e.logger)
		}
		c.JSON(200, toRunResponse(run))
	}
}

// @id DeleteRun
// @Description Deletes a run. Runners may withdraw their pending runs, admins may delete any run.
// @Tags run
// @Param id path string true "Run Id"
// @Success 204
// @Security BearerAuth
// @Router /runs/{id} [delete]
func (e *RunController) deleteRunHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		runId, ok := parseId(c, "id")
		if !ok {
			return
		}
		if err := e.runService.DeleteRun(c.Request.Context(), getActor(c), runId); err != nil {
			app_error.Respond(c, err)
			return
		}
		e.pageCache.flush(e.logger)
		c.Status(204)
	}
}

type RunCreate struct {
	CategoryId  uuid.UUID `json:"category_id" binding:"required"`
	Value       string    `json:"value" binding:"required"`
	EvidenceUrl string    `json:"evidence_url" binding:"required,url"`
	Notes       string    `json:"notes"`
}

type RunReview struct {
	Status          repository.RunStatus `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string               `json:"rejection_reason"`
}

type LeaderboardEntry struct {
	Rank int  `json:"rank" binding:"required"`
	Run  *Run `json:"run" binding:"required"`
}

type Leaderboard struct {
	Category *Category          `json:"category" binding:"required"`
	Entries  []LeaderboardEntry `json:"entries" binding:"required"`
}

func toLeaderboardResponse(leaderboard *service.Leaderboard) *Leaderboard {
	return &Leaderboard{
		Category: toCategoryResponse(leaderboard.Category),
		Entries: utils.Map(leaderboard.Entries, func(entry service.LeaderboardEntry) LeaderboardEntry {
			run := toRunResponse(entry.Run)
			run.DisplayValue = entry.DisplayValue
			return LeaderboardEntry{Rank: entry.Rank, Run: run}
		}),
	}
}
