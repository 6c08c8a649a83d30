package controller

import (
	"time"

	"speedrun/metric"
	"speedrun/repository"

	"github.com/google/uuid"
)

type MinimalUser struct {
	Id        uuid.UUID `json:"id" binding:"required"`
	Username  string    `json:"username" binding:"required"`
	AvatarUrl *string   `json:"avatar_url"`
}

type Gamemode struct {
	Id           uuid.UUID   `json:"id" binding:"required"`
	Name         string      `json:"name" binding:"required"`
	Slug         string      `json:"slug" binding:"required"`
	Description  *string     `json:"description"`
	Icon         *string     `json:"icon"`
	DisplayOrder int         `json:"display_order" binding:"required"`
	Categories   []*Category `json:"categories,omitempty"`
}

type Category struct {
	Id            uuid.UUID   `json:"id" binding:"required"`
	GamemodeId    uuid.UUID   `json:"gamemode_id" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Slug          string      `json:"slug" binding:"required"`
	Description   *string     `json:"description"`
	Rules         *string     `json:"rules"`
	MetricType    metric.Kind `json:"metric_type" binding:"required"`
	MetricLabel   string      `json:"metric_label" binding:"required"`
	TimingMethod  *string     `json:"timing_method"`
	Difficulty    *string     `json:"difficulty"`
	EstimatedTime *string     `json:"estimated_time"`
	DisplayOrder  int         `json:"display_order" binding:"required"`
	Gamemode      *Gamemode   `json:"gamemode,omitempty"`
}

type Run struct {
	Id              uuid.UUID            `json:"id" binding:"required"`
	UserId          uuid.UUID            `json:"user_id" binding:"required"`
	CategoryId      uuid.UUID            `json:"category_id" binding:"required"`
	Value           int64                `json:"value" binding:"required"`
	DisplayValue    string               `json:"display_value,omitempty"`
	EvidenceUrl     string               `json:"evidence_url" binding:"required"`
	Notes           *string              `json:"notes"`
	Status          repository.RunStatus `json:"status" binding:"required"`
	VerifiedBy      *uuid.UUID           `json:"verified_by"`
	VerifiedAt      *time.Time           `json:"verified_at"`
	RejectionReason *string              `json:"rejection_reason"`
	IsWorldRecord   bool                 `json:"is_world_record" binding:"required"`
	SubmittedAt     time.Time            `json:"submitted_at" binding:"required"`
	User            *MinimalUser         `json:"user,omitempty"`
	Category        *Category            `json:"category,omitempty"`
}

func toMinimalUserResponse(profile *repository.Profile) *MinimalUser {
	if profile == nil {
		return nil
	}
	return &MinimalUser{
		Id:        profile.Id,
		Username:  profile.Username,
		AvatarUrl: profile.AvatarUrl,
	}
}

func toGamemodeResponse(gamemode *repository.Gamemode) *Gamemode {
	if gamemode == nil {
		return nil
	}
	response := &Gamemode{
		Id:           gamemode.Id,
		Name:         gamemode.Name,
		Slug:         gamemode.Slug,
		Description:  gamemode.Description,
		Icon:         gamemode.Icon,
		DisplayOrder: gamemode.DisplayOrder,
	}
	if gamemode.Categories != nil {
		response.Categories = make([]*Category, len(gamemode.Categories))
		for i, category := range gamemode.Categories {
			response.Categories[i] = toCategoryResponse(category)
		}
	}
	return response
}

func toCategoryResponse(category *repository.Category) *Category {
	if category == nil {
		return nil
	}
	response := &Category{
		Id:            category.Id,
		GamemodeId:    category.GamemodeId,
		Name:          category.Name,
		Slug:          category.Slug,
		Description:   category.Description,
		Rules:         category.Rules,
		MetricType:    category.MetricType,
		MetricLabel:   metric.Label(category.MetricType),
		TimingMethod:  category.TimingMethod,
		Difficulty:    category.Difficulty,
		EstimatedTime: category.EstimatedTime,
		DisplayOrder:  category.DisplayOrder,
	}
	if category.Gamemode != nil {
		// avoid nesting the category list of the gamemode again
		gamemode := *category.Gamemode
		gamemode.Categories = nil
		response.Gamemode = toGamemodeResponse(&gamemode)
	}
	return response
}

func toRunResponse(run *repository.Run) *Run {
	response := &Run{
		Id:              run.Id,
		UserId:          run.UserId,
		CategoryId:      run.CategoryId,
		Value:           run.Value,
		EvidenceUrl:     run.EvidenceUrl,
		Notes:           run.Notes,
		Status:          run.Status,
		VerifiedBy:      run.VerifiedBy,
		VerifiedAt:      run.VerifiedAt,
		RejectionReason: run.RejectionReason,
		IsWorldRecord:   run.IsWorldRecord,
		SubmittedAt:     run.SubmittedAt,
		User:            toMinimalUserResponse(run.User),
		Category:        toCategoryResponse(run.Category),
	}
	if run.Category != nil {
		response.DisplayValue = metric.Decode(run.Category.MetricType, run.Value)
	}
	return response
}
