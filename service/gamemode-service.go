package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"speedrun/app_error"
	"speedrun/metric"
	"speedrun/repository"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	defaultTimingMethod = "RTA"
	defaultDifficulty   = "Medium"
)

type GamemodeCreate struct {
	Name         string
	Slug         string
	Description  *string
	Icon         *string
	DisplayOrder int
}

type GamemodeUpdate struct {
	Name         *string
	Description  *string
	Icon         *string
	DisplayOrder *int
}

type CategoryCreate struct {
	GamemodeId    uuid.UUID
	Name          string
	Slug          string
	Description   *string
	Rules         *string
	MetricType    metric.Kind
	TimingMethod  *string
	Difficulty    *string
	EstimatedTime *string
	DisplayOrder  int
}

// CategoryUpdate changes only the non-nil fields. MetricType may be given but
// must equal the stored kind.
type CategoryUpdate struct {
	Name          *string
	Description   *string
	Rules         *string
	MetricType    *metric.Kind
	TimingMethod  *string
	Difficulty    *string
	EstimatedTime *string
	DisplayOrder  *int
}

type GamemodeService struct {
	gamemodeRepository GamemodeStore
	categoryRepository CategoryStore
	activity           *ActivityService
}

func NewGamemodeService(gamemodeRepository GamemodeStore, categoryRepository CategoryStore, activity *ActivityService) *GamemodeService {
	return &GamemodeService{
		gamemodeRepository: gamemodeRepository,
		categoryRepository: categoryRepository,
		activity:           activity,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", app_error.ErrInvalidFormat)
	}
	return name, nil
}

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug %q may only contain lowercase letters, digits and single dashes", app_error.ErrInvalidFormat, slug)
	}
	return nil
}

func (s *GamemodeService) GetAllGamemodes(ctx context.Context) ([]*repository.Gamemode, error) {
	return s.gamemodeRepository.GetAllGamemodes(ctx)
}

func (s *GamemodeService) GetGamemodeBySlug(ctx context.Context, slug string) (*repository.Gamemode, error) {
	return s.gamemodeRepository.GetGamemodeBySlug(ctx, slug)
}

func (s *GamemodeService) CreateGamemode(ctx context.Context, actor *Actor, create GamemodeCreate) (*repository.Gamemode, error) {
	if err := requireAdmin(actor, "creating a gamemode"); err != nil {
		return nil, err
	}
	name, err := validateName(create.Name)
	if err != nil {
		return nil, err
	}
	if err := validateSlug(create.Slug); err != nil {
		return nil, err
	}
	gamemode, err := s.gamemodeRepository.SaveGamemode(ctx, &repository.Gamemode{
		Name:         name,
		Slug:         create.Slug,
		Description:  create.Description,
		Icon:         create.Icon,
		DisplayOrder: create.DisplayOrder,
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "gamemode_created",
		Category:    ActivityGamemodes,
		Description: fmt.Sprintf("Created gamemode %s", gamemode.Name),
		Metadata:    map[string]any{"gamemode_id": gamemode.Id.String()},
	})
	return gamemode, nil
}

func (s *GamemodeService) UpdateGamemode(ctx context.Context, actor *Actor, id uuid.UUID, update GamemodeUpdate) (*repository.Gamemode, error) {
	if err := requireAdmin(actor, "updating a gamemode"); err != nil {
		return nil, err
	}
	gamemode, err := s.gamemodeRepository.GetGamemodeById(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if gamemode.Name, err = validateName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		gamemode.Description = update.Description
	}
	if update.Icon != nil {
		gamemode.Icon = update.Icon
	}
	if update.DisplayOrder != nil {
		gamemode.DisplayOrder = *update.DisplayOrder
	}
	gamemode, err = s.gamemodeRepository.SaveGamemode(ctx, gamemode)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "gamemode_updated",
		Category:    ActivityGamemodes,
		Description: fmt.Sprintf("Updated gamemode %s", gamemode.Name),
		Metadata:    map[string]any{"gamemode_id": gamemode.Id.String()},
	})
	return gamemode, nil
}

func (s *GamemodeService) DeleteGamemode(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if err := requireAdmin(actor, "deleting a gamemode"); err != nil {
		return err
	}
	if err := s.gamemodeRepository.DeleteGamemode(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "gamemode_deleted",
		Category:    ActivityGamemodes,
		Description: fmt.Sprintf("Deleted gamemode %s", id),
		Metadata:    map[string]any{"gamemode_id": id.String()},
	})
	return nil
}

func (s *GamemodeService) GetCategory(ctx context.Context, id uuid.UUID) (*repository.Category, error) {
	return s.categoryRepository.GetCategoryById(ctx, id)
}

func (s *GamemodeService) GetCategoryBySlugs(ctx context.Context, gamemodeSlug string, categorySlug string) (*repository.Category, error) {
	return s.categoryRepository.GetCategoryBySlugs(ctx, gamemodeSlug, categorySlug)
}

func (s *GamemodeService) CreateCategory(ctx context.Context, actor *Actor, create CategoryCreate) (*repository.Category, error) {
	if err := requireAdmin(actor, "creating a category"); err != nil {
		return nil, err
	}
	name, err := validateName(create.Name)
	if err != nil {
		return nil, err
	}
	if err := validateSlug(create.Slug); err != nil {
		return nil, err
	}
	kind := create.MetricType
	if kind == "" {
		kind = metric.Time
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown metric type %q", app_error.ErrInvalidFormat, kind)
	}
	gamemode, err := s.gamemodeRepository.GetGamemodeById(ctx, create.GamemodeId)
	if err != nil {
		return nil, err
	}
	category := &repository.Category{
		GamemodeId:    gamemode.Id,
		Name:          name,
		Slug:          create.Slug,
		Description:   create.Description,
		Rules:         create.Rules,
		MetricType:    kind,
		TimingMethod:  withDefault(create.TimingMethod, defaultTimingMethod),
		Difficulty:    withDefault(create.Difficulty, defaultDifficulty),
		EstimatedTime: create.EstimatedTime,
		DisplayOrder:  create.DisplayOrder,
	}
	if category, err = s.categoryRepository.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	category.Gamemode = gamemode
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "category_created",
		Category:    ActivityGamemodes,
		Description: fmt.Sprintf("Created category %s in %s", category.Name, gamemode.Name),
		Metadata:    map[string]any{"category_id": category.Id.String(), "metric_type": string(kind)},
	})
	return category, nil
}

func (s *GamemodeService) UpdateCategory(ctx context.Context, actor *Actor, id uuid.UUID, update CategoryUpdate) (*repository.Category, error) {
	if err := requireAdmin(actor, "updating a category"); err != nil {
		return nil, err
	}
	category, err := s.categoryRepository.GetCategoryById(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.MetricType != nil && *update.MetricType != category.MetricType {
		return nil, fmt.Errorf("%w: the metric type of category %s cannot change from %s", app_error.ErrInvalidTransition, id, category.MetricType)
	}
	if update.Name != nil {
		if category.Name, err = validateName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		category.Description = update.Description
	}
	if update.Rules != nil {
		category.Rules = update.Rules
	}
	if update.TimingMethod != nil {
		category.TimingMethod = update.TimingMethod
	}
	if update.Difficulty != nil {
		category.Difficulty = update.Difficulty
	}
	if update.EstimatedTime != nil {
		category.EstimatedTime = update.EstimatedTime
	}
	if update.DisplayOrder != nil {
		category.DisplayOrder = *update.DisplayOrder
	}
	if category, err = s.categoryRepository.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "category_updated",
		Category:    ActivityGamemodes,
		Description: fmt.Sprintf("Updated category %s", category.Name),
		Metadata:    map[string]any{"category_id": category.Id.String()},
	})
	return category, nil
}

func (s *GamemodeService) DeleteCategory(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if err := requireAdmin(actor, "deleting a category"); err != nil {
		return err
	}
	if err := s.categoryRepository.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, ActivityEntry{
		ActionType:  "category_deleted",
		Category:    ActivityGamemodes,
		Description: fmt.Sprintf("Deleted category %s", id),
		Metadata:    map[string]any{"category_id": id.String()},
	})
	return nil
}

func withDefault(value *string, def string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return &def
	}
	return value
}
