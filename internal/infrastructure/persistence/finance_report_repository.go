package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/report"
)

// FinanceReportRepository implements report.FinanceReportRepository with
// aggregate queries over the expense and payment ledgers.
type FinanceReportRepository struct {
	db *gorm.DB
}

// NewFinanceReportRepository creates a new finance report repository
func NewFinanceReportRepository(db *gorm.DB) *FinanceReportRepository {
	return &FinanceReportRepository{db: db}
}

// ExpenseTotalsByCategory sums expenses per category over the inclusive
// date range, descending by amount
func (r *FinanceReportRepository) ExpenseTotalsByCategory(ctx context.Context, societyID uuid.UUID, startDate, endDate time.Time) ([]report.CategoryExpenseRow, error) {
	var rows []report.CategoryExpenseRow
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select(`expenses.category_id AS category_id,
			expense_categories.name AS category_name,
			expense_categories.color AS color,
			SUM(expenses.amount) AS amount,
			COUNT(expenses.id) AS count`).
		Joins("JOIN expense_categories ON expense_categories.id = expenses.category_id").
		Where("expenses.society_id = ?", societyID).
		Where("expenses.expense_date >= ? AND expenses.expense_date <= ?", startDate, endDate).
		Group("expenses.category_id, expense_categories.name, expense_categories.color").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PaymentTotalsByStatus sums payment amounts per status over the inclusive
// billing period span
func (r *FinanceReportRepository) PaymentTotalsByStatus(ctx context.Context, societyID uuid.UUID, from, to finance.BillingPeriod) ([]report.PaymentStatusRow, error) {
	var rows []report.PaymentStatusRow
	err := r.db.WithContext(ctx).
		Table("maintenance_payments").
		Select(`status, SUM(amount) AS amount, COUNT(id) AS count`).
		Where("society_id = ?", societyID).
		Where("(year * 100 + month) >= ? AND (year * 100 + month) <= ?", periodKey(from), periodKey(to)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyCollectionTotals returns per-month expected and collected sums
// over the span, oldest month first. Months without rows are absent.
func (r *FinanceReportRepository) MonthlyCollectionTotals(ctx context.Context, societyID uuid.UUID, from, to finance.BillingPeriod) ([]report.MonthlyCollectionRow, error) {
	var rows []report.MonthlyCollectionRow
	err := r.db.WithContext(ctx).
		Table("maintenance_payments").
		Select(`month, year,
			SUM(amount) AS expected,
			SUM(CASE WHEN status = ? THEN amount ELSE 0 END) AS collected`, string(finance.PaymentStatusPaid)).
		Where("society_id = ?", societyID).
		Where("(year * 100 + month) >= ? AND (year * 100 + month) <= ?", periodKey(from), periodKey(to)).
		Group("month, year").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDefaulters lists PENDING and OVERDUE payments for the period joined
// with their flats, ordered by flat number ascending
func (r *FinanceReportRepository) FindDefaulters(ctx context.Context, societyID uuid.UUID, period finance.BillingPeriod) ([]report.DefaulterRecord, error) {
	var rows []report.DefaulterRecord
	err := r.db.WithContext(ctx).
		Table("maintenance_payments").
		Select(`maintenance_payments.id AS payment_id,
			maintenance_payments.flat_id AS flat_id,
			flats.flat_number AS flat_number,
			flats.block AS block,
			flats.owner_name AS owner_name,
			maintenance_payments.amount AS amount,
			maintenance_payments.status AS status,
			maintenance_payments.month AS month,
			maintenance_payments.year AS year`).
		Joins("JOIN flats ON flats.id = maintenance_payments.flat_id").
		Where("maintenance_payments.society_id = ?", societyID).
		Where("maintenance_payments.month = ? AND maintenance_payments.year = ?", period.Month, period.Year).
		Where("maintenance_payments.status IN ?", []string{
			string(finance.PaymentStatusPending),
			string(finance.PaymentStatusOverdue),
		}).
		Order("flats.flat_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// periodKey flattens a billing period into a sortable integer
func periodKey(p finance.BillingPeriod) int {
	return p.Year*100 + p.Month
}
