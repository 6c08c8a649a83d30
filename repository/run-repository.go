package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"speedrun/app_error"
	"speedrun/ranking"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusApproved RunStatus = "approved"
	RunStatusRejected RunStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s RunStatus) Terminal() bool {
	return s == RunStatusApproved || s == RunStatusRejected
}

type Run struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryId      uuid.UUID  `gorm:"type:uuid;not null;index:idx_runs_category_status"`
	Value           int64      `gorm:"not null;check:value >= 0"`
	EvidenceUrl     string     `gorm:"not null"`
	Notes           *string    `gorm:"null"`
	Status          RunStatus  `gorm:"type:varchar(16);not null;default:pending;index:idx_runs_category_status"`
	VerifiedBy      *uuid.UUID `gorm:"type:uuid;null"`
	VerifiedAt      *time.Time `gorm:"null"`
	RejectionReason *string    `gorm:"null"`
	IsWorldRecord   bool       `gorm:"not null;default:false"`
	SubmittedAt     time.Time  `gorm:"not null;index"`

	Category *Category `gorm:"foreignKey:CategoryId;constraint:OnDelete:CASCADE;"`
	User     *Profile  `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE;"`
	Verifier *Profile  `gorm:"foreignKey:VerifiedBy;constraint:OnDelete:SET NULL;"`
}

func (r *Run) BeforeCreate(tx *gorm.DB) error {
	assignId(&r.Id)
	return nil
}

func (r *Run) RankEntry() ranking.Entry {
	return ranking.Entry{Id: r.Id, Value: r.Value, SubmittedAt: r.SubmittedAt}
}

// RunReview is the moderator decision applied to a pending run.
type RunReview struct {
	Status          RunStatus
	VerifiedBy      uuid.UUID
	VerifiedAt      time.Time
	RejectionReason *string
}

type RunRepository struct {
	DB *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{DB: db}
}

func (r *RunRepository) CreateRun(ctx context.Context, run *Run) error {
	defer timeQuery("create_run")()
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(run).Error
}

func (r *RunRepository) GetRunById(ctx context.Context, runId uuid.UUID) (*Run, error) {
	var run Run
	result := r.DB.WithContext(ctx).
		Preload("Category.Gamemode").
		Preload("User").
		First(&run, "id = ?", runId)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("run %s", runId))
	}
	return &run, nil
}

// GetLeaderboard returns the approved runs of a category, best first.
func (r *RunRepository) GetLeaderboard(ctx context.Context, category *Category, limit int) ([]*Run, error) {
	defer timeQuery("leaderboard")()
	runs := make([]*Run, 0)
	result := r.DB.WithContext(ctx).
		Preload("User").
		Where("category_id = ? AND status = ?", category.Id, RunStatusApproved).
		Order(ranking.OrderClause(category.MetricType)).
		Limit(limit).
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (r *RunRepository) GetRecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	defer timeQuery("recent_runs")()
	runs := make([]*Run, 0)
	result := r.DB.WithContext(ctx).
		Preload("Category.Gamemode").
		Preload("User").
		Where("status = ?", RunStatusApproved).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (r *RunRepository) GetRunsForUser(ctx context.Context, userId uuid.UUID) ([]*Run, error) {
	runs := make([]*Run, 0)
	result := r.DB.WithContext(ctx).
		Preload("Category.Gamemode").
		Where("user_id = ?", userId).
		Order("submitted_at DESC").
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (r *RunRepository) GetPendingRuns(ctx context.Context) ([]*Run, error) {
	runs := make([]*Run, 0)
	result := r.DB.WithContext(ctx).
		Preload("Category.Gamemode").
		Preload("User").
		Where("status = ?", RunStatusPending).
		Order("submitted_at ASC").
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

// ReviewRun moves a pending run to its terminal status with a single
// conditional update. If the row is no longer pending nothing is written and
// ErrConflictExternal is returned. Approvals recompute the category's world
// record in the same transaction.
func (r *RunRepository) ReviewRun(ctx context.Context, runId uuid.UUID, review RunReview) (*Run, error) {
	defer timeQuery("review_run")()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target Run
		err := tx.Select("id", "category_id").First(&target, "id = ?", runId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("review of run %s: %w", runId, app_error.ErrConflictExternal)
		}
		if err != nil {
			return err
		}
		category, err := lockCategory(tx, target.CategoryId)
		if err != nil {
			return err
		}
		result := tx.Model(&Run{}).
			Where("id = ? AND status = ?", runId, RunStatusPending).
			Updates(map[string]any{
				"status":           review.Status,
				"verified_by":      review.VerifiedBy,
				"verified_at":      review.VerifiedAt,
				"rejection_reason": review.RejectionReason,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("review of run %s: %w", runId, app_error.ErrConflictExternal)
		}
		if review.Status != RunStatusApproved {
			return nil
		}
		_, err = recomputeWorldRecord(tx, category)
		return err
	})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("run %s", runId))
	}
	return r.GetRunById(ctx, runId)
}

// DeleteRun removes a run. With onlyPending the delete applies only while the
// stored run is still pending, otherwise ErrConflictExternal is returned.
// Removing the record holder hands the flag to the next best run.
func (r *RunRepository) DeleteRun(ctx context.Context, run *Run, onlyPending bool) error {
	defer timeQuery("delete_run")()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := lockCategory(tx, run.CategoryId)
		if err != nil {
			return err
		}
		var stored Run
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status", "is_world_record").
			First(&stored, "id = ?", run.Id).Error
		if err != nil {
			return err
		}
		if onlyPending && stored.Status != RunStatusPending {
			return fmt.Errorf("run %s is already %s: %w", run.Id, stored.Status, app_error.ErrConflictExternal)
		}
		if err := tx.Delete(&Run{}, "id = ?", run.Id).Error; err != nil {
			return err
		}
		if !stored.IsWorldRecord {
			return nil
		}
		_, err = recomputeWorldRecord(tx, category)
		return err
	})
	return translate(err, fmt.Sprintf("run %s", run.Id))
}

// RecomputeWorldRecord re-derives the flag for a category from scratch.
func (r *RunRepository) RecomputeWorldRecord(ctx context.Context, categoryId uuid.UUID) (*Run, error) {
	var holder *Run
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := lockCategory(tx, categoryId)
		if err != nil {
			return err
		}
		holder, err = recomputeWorldRecord(tx, category)
		return err
	})
	return holder, translate(err, fmt.Sprintf("category %s", categoryId))
}

// lockCategory serializes every write that can move the world record of a
// category. It is always the first lock a run write takes.
func lockCategory(tx *gorm.DB, categoryId uuid.UUID) (*Category, error) {
	var category Category
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&category, "id = ?", categoryId).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// recomputeWorldRecord must run inside a transaction holding the category lock.
func recomputeWorldRecord(tx *gorm.DB, category *Category) (*Run, error) {
	err := tx.Model(&Run{}).
		Where("category_id = ? AND is_world_record = ?", category.Id, true).
		Update("is_world_record", false).Error
	if err != nil {
		return nil, err
	}
	var best Run
	err = tx.Where("category_id = ? AND status = ?", category.Id, RunStatusApproved).
		Order(ranking.OrderClause(category.MetricType)).
		Take(&best).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&best).Update("is_world_record", true).Error; err != nil {
		return nil, err
	}
	best.IsWorldRecord = true
	return &best, nil
}
