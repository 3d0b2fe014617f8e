package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/finance"
)

// CategoryExpense is one category's share of spending over a range.
type CategoryExpense struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Color        string          `json:"color,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"` // Amount / TotalExpenses * 100
}

// FinancialSummary is a read model of income and spending over a date range.
type FinancialSummary struct {
	SocietyID          uuid.UUID         `json:"society_id"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            time.Time         `json:"end_date"`
	TotalExpenses      decimal.Decimal   `json:"total_expenses"`
	TotalIncome        decimal.Decimal   `json:"total_income"`     // PAID payments in the period span
	PendingPayments    decimal.Decimal   `json:"pending_payments"` // PENDING + OVERDUE
	CollectionRate     decimal.Decimal   `json:"collection_rate"`
	Balance            decimal.Decimal   `json:"balance"` // TotalIncome - TotalExpenses
	ExpensesByCategory []CategoryExpense `json:"expenses_by_category"`
}

// MonthlyCategoryExpense extends the category share with a record count.
type MonthlyCategoryExpense struct {
	CategoryExpense
	Count int64 `json:"count"`
}

// DefaulterSummary aggregates the unpaid partition of a billing period.
type DefaulterSummary struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// MonthlyReport is a read model for a single billing period.
type MonthlyReport struct {
	SocietyID          uuid.UUID                `json:"society_id"`
	Month              int                      `json:"month"`
	Year               int                      `json:"year"`
	ExpectedIncome     decimal.Decimal          `json:"expected_income"` // flat count x society default
	CollectedIncome    decimal.Decimal          `json:"collected_income"`
	PendingIncome      decimal.Decimal          `json:"pending_income"`
	CollectionRate     decimal.Decimal          `json:"collection_rate"`
	TotalExpenses      decimal.Decimal          `json:"total_expenses"`
	ExpensesByCategory []MonthlyCategoryExpense `json:"expenses_by_category"`
	Defaulters         DefaulterSummary         `json:"defaulters"`
}

// CollectionTrendEntry is one month of the 12-month collection series.
type CollectionTrendEntry struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Expected  decimal.Decimal `json:"expected"`  // sum of the month's payment amounts
	Collected decimal.Decimal `json:"collected"` // sum where status is PAID
	Rate      decimal.Decimal `json:"rate"`
}

// DefaulterRecord is one unpaid payment joined with its flat, for dunning
// lists.
type DefaulterRecord struct {
	PaymentID  uuid.UUID             `json:"payment_id"`
	FlatID     uuid.UUID             `json:"flat_id"`
	FlatNumber string                `json:"flat_number"`
	Block      *string               `json:"block,omitempty"`
	OwnerName  string                `json:"owner_name,omitempty"`
	Amount     decimal.Decimal       `json:"amount"`
	Status     finance.PaymentStatus `json:"status"`
	Month      int                   `json:"month"`
	Year       int                   `json:"year"`
}

// CategoryExpenseRow is a raw per-category aggregate from the expense ledger.
type CategoryExpenseRow struct {
	CategoryID   uuid.UUID
	CategoryName string
	Color        string
	Amount       decimal.Decimal
	Count        int64
}

// PaymentStatusRow is a raw per-status aggregate from the payment ledger.
type PaymentStatusRow struct {
	Status finance.PaymentStatus
	Amount decimal.Decimal
	Count  int64
}

// MonthlyCollectionRow is a raw per-month collection aggregate.
type MonthlyCollectionRow struct {
	Month     int
	Year      int
	Expected  decimal.Decimal
	Collected decimal.Decimal
}

// FinanceReportRepository defines the read-only aggregate queries the
// reporting engine computes from. Implementations must not mutate ledger
// state.
type FinanceReportRepository interface {
	// ExpenseTotalsByCategory sums expenses per category over the inclusive
	// date range, descending by amount.
	ExpenseTotalsByCategory(ctx context.Context, societyID uuid.UUID, startDate, endDate time.Time) ([]CategoryExpenseRow, error)

	// PaymentTotalsByStatus sums payment amounts per status over the
	// inclusive billing period span.
	PaymentTotalsByStatus(ctx context.Context, societyID uuid.UUID, from, to finance.BillingPeriod) ([]PaymentStatusRow, error)

	// MonthlyCollectionTotals returns per-month expected and collected sums
	// over the span. Months without payment rows are absent; callers
	// zero-fill.
	MonthlyCollectionTotals(ctx context.Context, societyID uuid.UUID, from, to finance.BillingPeriod) ([]MonthlyCollectionRow, error)

	// FindDefaulters lists PENDING and OVERDUE payments for the period,
	// ordered by flat number ascending.
	FindDefaulters(ctx context.Context, societyID uuid.UUID, period finance.BillingPeriod) ([]DefaulterRecord, error)
}
