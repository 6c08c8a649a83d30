package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Announcement struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Creator *Profile `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE;"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	assignId(&a.Id)
	return nil
}

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) GetAnnouncements(ctx context.Context) ([]*Announcement, error) {
	announcements := make([]*Announcement, 0)
	result := r.DB.WithContext(ctx).Preload("Creator").Order("created_at DESC").Find(&announcements)
	if result.Error != nil {
		return nil, result.Error
	}
	return announcements, nil
}

func (r *AnnouncementRepository) GetAnnouncementById(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	var announcement Announcement
	result := r.DB.WithContext(ctx).First(&announcement, "id = ?", id)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("announcement %s", id))
	}
	return &announcement, nil
}

func (r *AnnouncementRepository) SaveAnnouncement(ctx context.Context, announcement *Announcement) (*Announcement, error) {
	result := r.DB.WithContext(ctx).Omit(clause.Associations).Save(announcement)
	if result.Error != nil {
		return nil, result.Error
	}
	return announcement, nil
}

func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&Announcement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, fmt.Sprintf("announcement %s", id))
	}
	return nil
}
