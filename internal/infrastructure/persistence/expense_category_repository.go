package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// ExpenseCategoryModel is the GORM model for expense categories
type ExpenseCategoryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SocietyID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_category_society_name"`
	Name          string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_category_society_name"`
	Description   string    `gorm:"type:varchar(500)"`
	Color         string    `gorm:"type:varchar(7);not null"`
	MonthlyBudget *decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsDefault     bool      `gorm:"not null;default:false"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Version       int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToEntity converts the model to a domain entity
func (m *ExpenseCategoryModel) ToEntity() *finance.ExpenseCategory {
	var budget *valueobject.Money
	if m.MonthlyBudget != nil {
		amount := valueobject.NewMoneyINR(*m.MonthlyBudget)
		budget = &amount
	}

	return &finance.ExpenseCategory{
		SocietyAggregateRoot: shared.SocietyAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			SocietyID: m.SocietyID,
			CreatedBy: m.CreatedBy,
		},
		Name:          m.Name,
		Description:   m.Description,
		Color:         m.Color,
		MonthlyBudget: budget,
		IsDefault:     m.IsDefault,
	}
}

// ExpenseCategoryModelFromEntity creates a model from a domain entity
func ExpenseCategoryModelFromEntity(c *finance.ExpenseCategory) *ExpenseCategoryModel {
	var budget *decimal.Decimal
	if c.MonthlyBudget != nil {
		amount := c.MonthlyBudget.Amount()
		budget = &amount
	}

	return &ExpenseCategoryModel{
		ID:            c.ID,
		SocietyID:     c.SocietyID,
		Name:          c.Name,
		Description:   c.Description,
		Color:         c.Color,
		MonthlyBudget: budget,
		IsDefault:     c.IsDefault,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Version:       c.Version,
	}
}

// ExpenseCategoryRepository implements finance.ExpenseCategoryRepository on GORM
type ExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewExpenseCategoryRepository creates a new expense category repository
func NewExpenseCategoryRepository(db *gorm.DB) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{db: db}
}

// FindByID finds a category by ID. Returns nil when no category exists.
func (r *ExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseCategory, error) {
	var model ExpenseCategoryModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindBySociety lists a society's categories ordered by name
func (r *ExpenseCategoryRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]finance.ExpenseCategory, error) {
	var models []ExpenseCategoryModel
	err := r.db.WithContext(ctx).
		Where("society_id = ?", societyID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	categories := make([]finance.ExpenseCategory, 0, len(models))
	for i := range models {
		categories = append(categories, *models[i].ToEntity())
	}
	return categories, nil
}

// ExistsByName checks category name uniqueness within a society
func (r *ExpenseCategoryRepository) ExistsByName(ctx context.Context, societyID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ExpenseCategoryModel{}).
		Where("society_id = ? AND name = ?", societyID, name).
		Count(&count).Error
	return count > 0, err
}

// CountBySociety counts a society's categories
func (r *ExpenseCategoryRepository) CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ExpenseCategoryModel{}).
		Where("society_id = ?", societyID).
		Count(&count).Error
	return count, err
}

// Save inserts or updates a category
func (r *ExpenseCategoryRepository) Save(ctx context.Context, category *finance.ExpenseCategory) error {
	model := ExpenseCategoryModelFromEntity(category)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// SaveAll persists the categories in a single transaction
func (r *ExpenseCategoryRepository) SaveAll(ctx context.Context, categories []*finance.ExpenseCategory) error {
	if len(categories) == 0 {
		return nil
	}

	models := make([]*ExpenseCategoryModel, 0, len(categories))
	for _, category := range categories {
		models = append(models, ExpenseCategoryModelFromEntity(category))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models).Error
	})
	return translateError(err)
}

// Delete removes a category by ID
func (r *ExpenseCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&ExpenseCategoryModel{}, "id = ?", id).Error
}
