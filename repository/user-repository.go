package repository

import (
	"context"
	"fmt"
	"time"

	"speedrun/app_error"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleModerator || r == RoleUser
}

type Profile struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"not null;uniqueIndex"`
	AvatarUrl *string   `gorm:"null"`
	Bio       *string   `gorm:"null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Roles []*UserRole `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE;"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	assignId(&p.Id)
	return nil
}

// RoleNames returns the stored roles, or the implicit user role when the
// profile has none.
func (p *Profile) RoleNames() []Role {
	if len(p.Roles) == 0 {
		return []Role{RoleUser}
	}
	roles := make([]Role, len(p.Roles))
	for i, role := range p.Roles {
		roles[i] = role.Role
	}
	return roles
}

type UserRole struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_role"`
	Role   Role      `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_role"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	assignId(&r.Id)
	return nil
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetProfileById(ctx context.Context, userId uuid.UUID) (*Profile, error) {
	var profile Profile
	result := r.DB.WithContext(ctx).Preload("Roles").First(&profile, "id = ?", userId)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("user %s", userId))
	}
	return &profile, nil
}

func (r *UserRepository) GetAllProfiles(ctx context.Context) ([]*Profile, error) {
	profiles := make([]*Profile, 0)
	result := r.DB.WithContext(ctx).Preload("Roles").Order("created_at DESC").Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}

func (r *UserRepository) SaveProfile(ctx context.Context, profile *Profile) (*Profile, error) {
	result := r.DB.WithContext(ctx).Omit(clause.Associations).Save(profile)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("username %q", profile.Username))
	}
	return profile, nil
}

func (r *UserRepository) GetRoles(ctx context.Context, userId uuid.UUID) ([]Role, error) {
	roles := make([]Role, 0)
	result := r.DB.WithContext(ctx).Model(&UserRole{}).Where("user_id = ?", userId).Pluck("role", &roles)
	if result.Error != nil {
		return nil, result.Error
	}
	return roles, nil
}

func (r *UserRepository) AddRole(ctx context.Context, userId uuid.UUID, role Role) error {
	result := r.DB.WithContext(ctx).Create(&UserRole{UserId: userId, Role: role})
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("role %s for user %s", role, userId))
	}
	return nil
}

func (r *UserRepository) RemoveRole(ctx context.Context, userId uuid.UUID, role Role) error {
	result := r.DB.WithContext(ctx).Where("user_id = ? AND role = ?", userId, role).Delete(&UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s does not have role %s", app_error.ErrNotFound, userId, role)
	}
	return nil
}
