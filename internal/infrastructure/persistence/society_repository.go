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

// SocietyModel is the GORM model for societies
type SocietyModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Address           string          `gorm:"type:varchar(500);not null"`
	City              string          `gorm:"type:varchar(100);not null"`
	State             string          `gorm:"type:varchar(100);not null"`
	Pincode           string          `gorm:"type:varchar(6);not null"`
	TotalFlats        int             `gorm:"not null"`
	MaintenanceAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	BillingCycle      string          `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	Version           int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (SocietyModel) TableName() string {
	return "societies"
}

// ToEntity converts the model to a domain entity
func (m *SocietyModel) ToEntity() *society.Society {
	return &society.Society{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:              m.Name,
		Address:           m.Address,
		City:              m.City,
		State:             m.State,
		Pincode:           m.Pincode,
		TotalFlats:        m.TotalFlats,
		MaintenanceAmount: valueobject.NewMoneyINR(m.MaintenanceAmount),
		BillingCycle:      society.BillingCycle(m.BillingCycle),
	}
}

// SocietyModelFromEntity creates a model from a domain entity
func SocietyModelFromEntity(s *society.Society) *SocietyModel {
	return &SocietyModel{
		ID:                s.ID,
		Name:              s.Name,
		Address:           s.Address,
		City:              s.City,
		State:             s.State,
		Pincode:           s.Pincode,
		TotalFlats:        s.TotalFlats,
		MaintenanceAmount: s.MaintenanceAmount.Amount(),
		BillingCycle:      string(s.BillingCycle),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Version:           s.Version,
	}
}

// SocietyRepository implements society.SocietyRepository on GORM
type SocietyRepository struct {
	db *gorm.DB
}

// NewSocietyRepository creates a new society repository
func NewSocietyRepository(db *gorm.DB) *SocietyRepository {
	return &SocietyRepository{db: db}
}

// FindByID finds a society by ID. Returns nil when no society exists.
func (r *SocietyRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Society, error) {
	var model SocietyModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindAll lists every society, newest first
func (r *SocietyRepository) FindAll(ctx context.Context) ([]society.Society, error) {
	var models []SocietyModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	societies := make([]society.Society, 0, len(models))
	for i := range models {
		societies = append(societies, *models[i].ToEntity())
	}
	return societies, nil
}

// Save inserts or updates a society
func (r *SocietyRepository) Save(ctx context.Context, s *society.Society) error {
	model := SocietyModelFromEntity(s)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes the society and cascades to its dependent records
func (r *SocietyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&MaintenancePaymentModel{}, "society_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ExpenseModel{}, "society_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ExpenseCategoryModel{}, "society_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&FlatModel{}, "society_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&UserModel{}, "society_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&SocietyModel{}, "id = ?", id).Error
	})
}
