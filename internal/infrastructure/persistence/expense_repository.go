package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
)

// ExpenseModel is the GORM model for expenses
type ExpenseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SocietyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description   string          `gorm:"type:varchar(500);not null"`
	ExpenseDate   time.Time       `gorm:"not null;index"`
	Vendor        *string         `gorm:"type:varchar(200)"`
	PaymentMode   *string         `gorm:"type:varchar(20)"`
	TransactionID *string         `gorm:"type:varchar(100)"`
	ReceiptURL    *string         `gorm:"type:varchar(500)"`
	ApprovedBy    *uuid.UUID      `gorm:"type:uuid"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	Version       int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts the model to a domain entity
func (m *ExpenseModel) ToEntity() *finance.Expense {
	var mode *finance.PaymentMode
	if m.PaymentMode != nil {
		pm := finance.PaymentMode(*m.PaymentMode)
		mode = &pm
	}

	return &finance.Expense{
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
		CategoryID:    m.CategoryID,
		Amount:        valueobject.NewMoneyINR(m.Amount),
		Description:   m.Description,
		ExpenseDate:   m.ExpenseDate,
		Vendor:        m.Vendor,
		PaymentMode:   mode,
		TransactionID: m.TransactionID,
		ReceiptURL:    m.ReceiptURL,
		ApprovedBy:    m.ApprovedBy,
	}
}

// ExpenseModelFromEntity creates a model from a domain entity
func ExpenseModelFromEntity(e *finance.Expense) *ExpenseModel {
	var mode *string
	if e.PaymentMode != nil {
		pm := string(*e.PaymentMode)
		mode = &pm
	}

	return &ExpenseModel{
		ID:            e.ID,
		SocietyID:     e.SocietyID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount.Amount(),
		Description:   e.Description,
		ExpenseDate:   e.ExpenseDate,
		Vendor:        e.Vendor,
		PaymentMode:   mode,
		TransactionID: e.TransactionID,
		ReceiptURL:    e.ReceiptURL,
		ApprovedBy:    e.ApprovedBy,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Version:       e.Version,
	}
}

// ExpenseRepository implements finance.ExpenseRepository on GORM
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// FindByID finds an expense by ID. Returns nil when no expense exists.
func (r *ExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model ExpenseModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindBySociety returns a filtered, paginated expense listing
func (r *ExpenseRepository) FindBySociety(ctx context.Context, societyID uuid.UUID, filter finance.ExpenseFilter) (shared.Paginated[finance.Expense], error) {
	query := r.db.WithContext(ctx).Model(&ExpenseModel{}).Where("society_id = ?", societyID)
	query = applyExpenseFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[finance.Expense]{}, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "expense_date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var models []ExpenseModel
	err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return shared.Paginated[finance.Expense]{}, err
	}

	expenses := make([]finance.Expense, 0, len(models))
	for i := range models {
		expenses = append(expenses, *models[i].ToEntity())
	}
	return shared.NewPaginated(expenses, total, page, pageSize), nil
}

// Save inserts or updates an expense
func (r *ExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := ExpenseModelFromEntity(expense)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes an expense by ID
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&ExpenseModel{}, "id = ?", id).Error
}

func applyExpenseFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Period != nil {
		start, end := periodBounds(*filter.Period)
		query = query.Where("expense_date >= ? AND expense_date <= ?", start, end)
	}
	if start, ok := filter.Filters["start_date"].(time.Time); ok {
		query = query.Where("expense_date >= ?", start)
	}
	if end, ok := filter.Filters["end_date"].(time.Time); ok {
		query = query.Where("expense_date <= ?", end)
	}
	return query
}

// periodBounds returns the inclusive date range of a billing period
func periodBounds(period finance.BillingPeriod) (time.Time, time.Time) {
	start := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
