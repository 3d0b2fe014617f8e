package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/shared"
)

// UserModel is the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Phone        string    `gorm:"type:varchar(20)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'RESIDENT'"`
	SocietyID    *uuid.UUID `gorm:"type:uuid;index"`
	FlatID       *uuid.UUID `gorm:"type:uuid;index"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Version      int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the model to a domain entity
func (m *UserModel) ToEntity() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		SocietyID:    m.SocietyID,
		FlatID:       m.FlatID,
		LastLoginAt:  m.LastLoginAt,
	}
}

// UserModelFromEntity creates a model from a domain entity
func UserModelFromEntity(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		SocietyID:    u.SocietyID,
		FlatID:       u.FlatID,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Version:      u.Version,
	}
}

// UserRepository implements identity.UserRepository on GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID finds a user by ID. Returns nil when no user exists.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindByEmail finds a user by email, case insensitive. Returns nil when
// no user exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// ExistsByEmail checks whether a user with this email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// FindBySociety lists all users attached to a society
func (r *UserRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]identity.User, error) {
	var models []UserModel
	err := r.db.WithContext(ctx).
		Where("society_id = ?", societyID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	users := make([]identity.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].ToEntity())
	}
	return users, nil
}

// Save inserts or updates a user
func (r *UserRepository) Save(ctx context.Context, user *identity.User) error {
	model := UserModelFromEntity(user)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id).Error
}
