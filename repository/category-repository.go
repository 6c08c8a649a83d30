package repository

import (
	"context"
	"fmt"
	"time"

	"speedrun/metric"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Category struct {
	Id            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	GamemodeId    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_category_slug"`
	Name          string      `gorm:"not null"`
	Slug          string      `gorm:"not null;uniqueIndex:idx_category_slug"`
	Description   *string     `gorm:"null"`
	Rules         *string     `gorm:"null"`
	MetricType    metric.Kind `gorm:"type:varchar(16);not null;default:time"`
	TimingMethod  *string     `gorm:"null"`
	Difficulty    *string     `gorm:"null"`
	EstimatedTime *string     `gorm:"null"`
	DisplayOrder  int         `gorm:"not null;default:0"`
	CreatedAt     time.Time   `gorm:"not null"`

	Gamemode *Gamemode `gorm:"foreignKey:GamemodeId"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	assignId(&c.Id)
	return nil
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) GetCategoryById(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	result := r.DB.WithContext(ctx).Preload("Gamemode").First(&category, "id = ?", id)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("category %s", id))
	}
	return &category, nil
}

func (r *CategoryRepository) GetCategoryBySlugs(ctx context.Context, gamemodeSlug string, categorySlug string) (*Category, error) {
	var category Category
	gamemodeId := r.DB.Model(&Gamemode{}).Select("id").Where("slug = ?", gamemodeSlug)
	result := r.DB.WithContext(ctx).
		Preload("Gamemode").
		Where("gamemode_id = (?) AND slug = ?", gamemodeId, categorySlug).
		First(&category)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("category %q in gamemode %q", categorySlug, gamemodeSlug))
	}
	return &category, nil
}

func (r *CategoryRepository) SaveCategory(ctx context.Context, category *Category) (*Category, error) {
	result := r.DB.WithContext(ctx).Omit(clause.Associations).Save(category)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("category %q", category.Slug))
	}
	return category, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, fmt.Sprintf("category %s", id))
	}
	return nil
}
