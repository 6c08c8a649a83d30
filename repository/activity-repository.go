package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityLog struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ActionType   string         `gorm:"not null;index"`
	Category     string         `gorm:"not null;index"`
	Description  string         `gorm:"not null"`
	PerformedBy  uuid.UUID      `gorm:"type:uuid;not null"`
	TargetUserId *uuid.UUID     `gorm:"type:uuid;null"`
	Metadata     map[string]any `gorm:"serializer:json;type:jsonb;not null;default:'{}'"`
	CreatedAt    time.Time      `gorm:"not null;index"`

	Performer *Profile `gorm:"foreignKey:PerformedBy;constraint:OnDelete:CASCADE;"`
	Target    *Profile `gorm:"foreignKey:TargetUserId;constraint:OnDelete:SET NULL;"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	assignId(&a.Id)
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	return nil
}

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) SaveActivityLog(ctx context.Context, activity *ActivityLog) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(activity).Error
}

// GetActivityLogs returns the newest entries first, optionally only those of
// one category.
func (r *ActivityRepository) GetActivityLogs(ctx context.Context, category string, limit int) ([]*ActivityLog, error) {
	activities := make([]*ActivityLog, 0)
	query := r.DB.WithContext(ctx).Preload("Performer").Preload("Target").Order("created_at DESC").Limit(limit)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("error fetching activity logs for category %q: %w", category, err)
	}
	return activities, nil
}
