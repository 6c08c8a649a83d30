package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Gamemode struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Slug         string    `gorm:"not null;uniqueIndex"`
	Description  *string   `gorm:"null"`
	Icon         *string   `gorm:"null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`

	Categories []*Category `gorm:"foreignKey:GamemodeId;constraint:OnDelete:CASCADE;"`
}

func (g *Gamemode) BeforeCreate(tx *gorm.DB) error {
	assignId(&g.Id)
	return nil
}

type GamemodeRepository struct {
	DB *gorm.DB
}

func NewGamemodeRepository(db *gorm.DB) *GamemodeRepository {
	return &GamemodeRepository{DB: db}
}

func orderedCategories(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, name ASC")
}

func (r *GamemodeRepository) GetAllGamemodes(ctx context.Context) ([]*Gamemode, error) {
	gamemodes := make([]*Gamemode, 0)
	result := r.DB.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Order("display_order ASC, name ASC").
		Find(&gamemodes)
	if result.Error != nil {
		return nil, result.Error
	}
	return gamemodes, nil
}

func (r *GamemodeRepository) GetGamemodeBySlug(ctx context.Context, slug string) (*Gamemode, error) {
	var gamemode Gamemode
	result := r.DB.WithContext(ctx).Preload("Categories", orderedCategories).First(&gamemode, "slug = ?", slug)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("gamemode %q", slug))
	}
	return &gamemode, nil
}

func (r *GamemodeRepository) GetGamemodeById(ctx context.Context, id uuid.UUID) (*Gamemode, error) {
	var gamemode Gamemode
	result := r.DB.WithContext(ctx).First(&gamemode, "id = ?", id)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("gamemode %s", id))
	}
	return &gamemode, nil
}

func (r *GamemodeRepository) SaveGamemode(ctx context.Context, gamemode *Gamemode) (*Gamemode, error) {
	result := r.DB.WithContext(ctx).Omit(clause.Associations).Save(gamemode)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("gamemode %q", gamemode.Slug))
	}
	return gamemode, nil
}

func (r *GamemodeRepository) DeleteGamemode(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&Gamemode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, fmt.Sprintf("gamemode %s", id))
	}
	return nil
}
