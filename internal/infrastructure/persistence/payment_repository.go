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

// MaintenancePaymentModel is the GORM model for maintenance payments.
// The (flat_id, month, year) unique index is the idempotency anchor for
// bulk generation.
type MaintenancePaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SocietyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	FlatID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payment_flat_period"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Month         int             `gorm:"not null;uniqueIndex:uq_payment_flat_period"`
	Year          int             `gorm:"not null;uniqueIndex:uq_payment_flat_period"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentDate   *time.Time
	PaymentMode   *string    `gorm:"type:varchar(20)"`
	TransactionID *string    `gorm:"type:varchar(100)"`
	Notes         *string    `gorm:"type:varchar(500)"`
	RecordedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
	Version       int        `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (MaintenancePaymentModel) TableName() string {
	return "maintenance_payments"
}

// ToEntity converts the model to a domain entity
func (m *MaintenancePaymentModel) ToEntity() *finance.MaintenancePayment {
	var mode *finance.PaymentMode
	if m.PaymentMode != nil {
		pm := finance.PaymentMode(*m.PaymentMode)
		mode = &pm
	}

	return &finance.MaintenancePayment{
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
		FlatID:        m.FlatID,
		Amount:        valueobject.NewMoneyINR(m.Amount),
		Period:        finance.BillingPeriod{Month: m.Month, Year: m.Year},
		Status:        finance.PaymentStatus(m.Status),
		PaymentDate:   m.PaymentDate,
		PaymentMode:   mode,
		TransactionID: m.TransactionID,
		Notes:         m.Notes,
		RecordedBy:    m.RecordedBy,
	}
}

// MaintenancePaymentModelFromEntity creates a model from a domain entity
func MaintenancePaymentModelFromEntity(p *finance.MaintenancePayment) *MaintenancePaymentModel {
	var mode *string
	if p.PaymentMode != nil {
		pm := string(*p.PaymentMode)
		mode = &pm
	}

	return &MaintenancePaymentModel{
		ID:            p.ID,
		SocietyID:     p.SocietyID,
		FlatID:        p.FlatID,
		Amount:        p.Amount.Amount(),
		Month:         p.Period.Month,
		Year:          p.Period.Year,
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate,
		PaymentMode:   mode,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		RecordedBy:    p.RecordedBy,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// MaintenancePaymentRepository implements finance.MaintenancePaymentRepository on GORM
type MaintenancePaymentRepository struct {
	db *gorm.DB
}

// NewMaintenancePaymentRepository creates a new payment repository
func NewMaintenancePaymentRepository(db *gorm.DB) *MaintenancePaymentRepository {
	return &MaintenancePaymentRepository{db: db}
}

// FindByID finds a payment by ID. Returns nil when no payment exists.
func (r *MaintenancePaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.MaintenancePayment, error) {
	var model MaintenancePaymentModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindBySociety returns a filtered, paginated payment listing
func (r *MaintenancePaymentRepository) FindBySociety(ctx context.Context, societyID uuid.UUID, filter finance.PaymentFilter) (shared.Paginated[finance.MaintenancePayment], error) {
	query := r.db.WithContext(ctx).Model(&MaintenancePaymentModel{}).Where("society_id = ?", societyID)
	query = applyPaymentFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[finance.MaintenancePayment]{}, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var models []MaintenancePaymentModel
	err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return shared.Paginated[finance.MaintenancePayment]{}, err
	}

	payments := make([]finance.MaintenancePayment, 0, len(models))
	for i := range models {
		payments = append(payments, *models[i].ToEntity())
	}
	return shared.NewPaginated(payments, total, page, pageSize), nil
}

// FindByFlatAndPeriod finds the payment for one flat and billing period.
// Returns nil when no payment exists.
func (r *MaintenancePaymentRepository) FindByFlatAndPeriod(ctx context.Context, flatID uuid.UUID, period finance.BillingPeriod) (*finance.MaintenancePayment, error) {
	var model MaintenancePaymentModel
	err := r.db.WithContext(ctx).
		First(&model, "flat_id = ? AND month = ? AND year = ?", flatID, period.Month, period.Year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// ExistsForPeriod checks the (flat, month, year) uniqueness tuple
func (r *MaintenancePaymentRepository) ExistsForPeriod(ctx context.Context, flatID uuid.UUID, period finance.BillingPeriod) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MaintenancePaymentModel{}).
		Where("flat_id = ? AND month = ? AND year = ?", flatID, period.Month, period.Year).
		Count(&count).Error
	return count > 0, err
}

// Save inserts or updates a payment
func (r *MaintenancePaymentRepository) Save(ctx context.Context, payment *finance.MaintenancePayment) error {
	model := MaintenancePaymentModelFromEntity(payment)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// BulkUpsert writes all payments in one transaction. Payments whose
// (flat, month, year) row already exists get only their amount updated;
// existing status, payment date and notes survive re-generation. Any
// failure rolls back the whole batch.
func (r *MaintenancePaymentRepository) BulkUpsert(ctx context.Context, payments []*finance.MaintenancePayment) (finance.BulkUpsertResult, error) {
	var result finance.BulkUpsertResult
	if len(payments) == 0 {
		return result, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, payment := range payments {
			update := tx.Model(&MaintenancePaymentModel{}).
				Where("flat_id = ? AND month = ? AND year = ?", payment.FlatID, payment.Period.Month, payment.Period.Year).
				Updates(map[string]interface{}{
					"amount":     payment.Amount.Amount(),
					"updated_at": time.Now(),
				})
			if update.Error != nil {
				return update.Error
			}
			if update.RowsAffected > 0 {
				result.Updated++
				continue
			}

			if err := tx.Create(MaintenancePaymentModelFromEntity(payment)).Error; err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return finance.BulkUpsertResult{}, translateError(err)
	}
	return result, nil
}

// Delete removes a payment by ID
func (r *MaintenancePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&MaintenancePaymentModel{}, "id = ?", id).Error
}

func applyPaymentFilter(query *gorm.DB, filter finance.PaymentFilter) *gorm.DB {
	if filter.FlatID != nil {
		query = query.Where("flat_id = ?", *filter.FlatID)
	}
	if filter.Period != nil {
		query = query.Where("month = ? AND year = ?", filter.Period.Month, filter.Period.Year)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	return query
}
