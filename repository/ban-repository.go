package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Ban struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	BannedBy    uuid.UUID  `gorm:"type:uuid;not null"`
	Reason      *string    `gorm:"null"`
	IsPermanent bool       `gorm:"not null;default:false"`
	ExpiresAt   *time.Time `gorm:"null"`
	CreatedAt   time.Time  `gorm:"not null"`

	User         *Profile `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE;"`
	BannedByUser *Profile `gorm:"foreignKey:BannedBy;constraint:OnDelete:CASCADE;"`
}

func (b *Ban) BeforeCreate(tx *gorm.DB) error {
	assignId(&b.Id)
	return nil
}

// IsActive reports whether the ban still applies at now.
func (b *Ban) IsActive(now time.Time) bool {
	if b.IsPermanent {
		return true
	}
	return b.ExpiresAt != nil && b.ExpiresAt.After(now)
}

type BanRepository struct {
	DB *gorm.DB
}

func NewBanRepository(db *gorm.DB) *BanRepository {
	return &BanRepository{DB: db}
}

func (r *BanRepository) GetBans(ctx context.Context) ([]*Ban, error) {
	bans := make([]*Ban, 0)
	result := r.DB.WithContext(ctx).
		Preload("User").
		Preload("BannedByUser").
		Order("created_at DESC").
		Find(&bans)
	if result.Error != nil {
		return nil, result.Error
	}
	return bans, nil
}

func (r *BanRepository) GetBansForUser(ctx context.Context, userId uuid.UUID) ([]*Ban, error) {
	bans := make([]*Ban, 0)
	result := r.DB.WithContext(ctx).Where("user_id = ?", userId).Find(&bans)
	if result.Error != nil {
		return nil, result.Error
	}
	return bans, nil
}

func (r *BanRepository) GetBanById(ctx context.Context, banId uuid.UUID) (*Ban, error) {
	var ban Ban
	result := r.DB.WithContext(ctx).First(&ban, "id = ?", banId)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("ban %s", banId))
	}
	return &ban, nil
}

func (r *BanRepository) CreateBan(ctx context.Context, ban *Ban) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(ban).Error
}

func (r *BanRepository) DeleteBan(ctx context.Context, banId uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&Ban{}, "id = ?", banId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, fmt.Sprintf("ban %s", banId))
	}
	return nil
}
