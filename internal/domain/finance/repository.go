package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/shared"
)

// ExpenseCategoryRepository defines persistence operations for categories
type ExpenseCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)
	FindBySociety(ctx context.Context, societyID uuid.UUID) ([]ExpenseCategory, error)
	ExistsByName(ctx context.Context, societyID uuid.UUID, name string) (bool, error)
	CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error)
	Save(ctx context.Context, category *ExpenseCategory) error
	// SaveAll persists the categories in a single transaction.
	SaveAll(ctx context.Context, categories []*ExpenseCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	shared.Filter
	CategoryID *uuid.UUID
	Period     *BillingPeriod
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindBySociety(ctx context.Context, societyID uuid.UUID, filter ExpenseFilter) (shared.Paginated[Expense], error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	shared.Filter
	FlatID *uuid.UUID
	Period *BillingPeriod
	Status *PaymentStatus
}

// BulkUpsertResult reports how a bulk write landed.
type BulkUpsertResult struct {
	Created int
	Updated int
}

// MaintenancePaymentRepository defines persistence operations for payments
type MaintenancePaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenancePayment, error)
	FindBySociety(ctx context.Context, societyID uuid.UUID, filter PaymentFilter) (shared.Paginated[MaintenancePayment], error)
	FindByFlatAndPeriod(ctx context.Context, flatID uuid.UUID, period BillingPeriod) (*MaintenancePayment, error)
	ExistsForPeriod(ctx context.Context, flatID uuid.UUID, period BillingPeriod) (bool, error)
	Save(ctx context.Context, payment *MaintenancePayment) error
	// BulkUpsert writes all payments in one transaction. A payment whose
	// (flat, month, year) already exists gets only its amount updated;
	// either every payment lands or none do.
	BulkUpsert(ctx context.Context, payments []*MaintenancePayment) (BulkUpsertResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
