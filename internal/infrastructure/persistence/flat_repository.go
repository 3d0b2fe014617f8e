package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
	"github.com/societyhub/backend/internal/domain/society"
)

// FlatModel is the GORM model for flats
type FlatModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	SocietyID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_flat_society_number_block"`
	FlatNumber        string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_flat_society_number_block"`
	Block             *string   `gorm:"type:varchar(20);uniqueIndex:uq_flat_society_number_block"`
	Floor             *int
	SqFeet            *int
	MaintenanceAmount *decimal.Decimal `gorm:"type:numeric(12,2)"`
	OwnerName         string           `gorm:"type:varchar(100)"`
	OwnerPhone        string           `gorm:"type:varchar(10)"`
	OwnerEmail        string           `gorm:"type:varchar(255)"`
	IsRented          bool             `gorm:"not null;default:false"`
	TenantName        string           `gorm:"type:varchar(100)"`
	TenantPhone       string           `gorm:"type:varchar(10)"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         time.Time        `gorm:"not null"`
	Version           int              `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (FlatModel) TableName() string {
	return "flats"
}

// ToEntity converts the model to a domain entity
func (m *FlatModel) ToEntity() *society.Flat {
	var maintenance *valueobject.Money
	if m.MaintenanceAmount != nil {
		amount := valueobject.NewMoneyINR(*m.MaintenanceAmount)
		maintenance = &amount
	}

	return &society.Flat{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		SocietyID:         m.SocietyID,
		FlatNumber:        m.FlatNumber,
		Block:             m.Block,
		Floor:             m.Floor,
		SqFeet:            m.SqFeet,
		MaintenanceAmount: maintenance,
		OwnerName:         m.OwnerName,
		OwnerPhone:        m.OwnerPhone,
		OwnerEmail:        m.OwnerEmail,
		IsRented:          m.IsRented,
		TenantName:        m.TenantName,
		TenantPhone:       m.TenantPhone,
	}
}

// FlatModelFromEntity creates a model from a domain entity
func FlatModelFromEntity(f *society.Flat) *FlatModel {
	var maintenance *decimal.Decimal
	if f.MaintenanceAmount != nil {
		amount := f.MaintenanceAmount.Amount()
		maintenance = &amount
	}

	return &FlatModel{
		ID:                f.ID,
		SocietyID:         f.SocietyID,
		FlatNumber:        f.FlatNumber,
		Block:             f.Block,
		Floor:             f.Floor,
		SqFeet:            f.SqFeet,
		MaintenanceAmount: maintenance,
		OwnerName:         f.OwnerName,
		OwnerPhone:        f.OwnerPhone,
		OwnerEmail:        f.OwnerEmail,
		IsRented:          f.IsRented,
		TenantName:        f.TenantName,
		TenantPhone:       f.TenantPhone,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
		Version:           f.Version,
	}
}

// FlatRepository implements society.FlatRepository on GORM
type FlatRepository struct {
	db *gorm.DB
}

// NewFlatRepository creates a new flat repository
func NewFlatRepository(db *gorm.DB) *FlatRepository {
	return &FlatRepository{db: db}
}

// FindByID finds a flat by ID. Returns nil when no flat exists.
func (r *FlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Flat, error) {
	var model FlatModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindBySociety lists a society's flats ordered by block then number
func (r *FlatRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]society.Flat, error) {
	var models []FlatModel
	err := r.db.WithContext(ctx).
		Where("society_id = ?", societyID).
		Order("block ASC, flat_number ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	flats := make([]society.Flat, 0, len(models))
	for i := range models {
		flats = append(flats, *models[i].ToEntity())
	}
	return flats, nil
}

// ExistsByNumber checks the (societyID, flatNumber, block) uniqueness tuple
func (r *FlatRepository) ExistsByNumber(ctx context.Context, societyID uuid.UUID, flatNumber string, block *string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&FlatModel{}).
		Where("society_id = ? AND flat_number = ?", societyID, flatNumber)
	if block == nil {
		query = query.Where("block IS NULL")
	} else {
		query = query.Where("block = ?", *block)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountBySociety counts the flats registered in a society
func (r *FlatRepository) CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FlatModel{}).
		Where("society_id = ?", societyID).
		Count(&count).Error
	return count, err
}

// Save inserts or updates a flat
func (r *FlatRepository) Save(ctx context.Context, flat *society.Flat) error {
	model := FlatModelFromEntity(flat)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a flat by ID
func (r *FlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&FlatModel{}, "id = ?", id).Error
}
