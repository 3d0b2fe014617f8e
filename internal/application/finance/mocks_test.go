package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/report"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/society"
)

// MockCategoryRepository is a mock implementation of finance.ExpenseCategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]finance.ExpenseCategory, error) {
	args := m.Called(ctx, societyID)
	return args.Get(0).([]finance.ExpenseCategory), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, societyID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, societyID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, societyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *finance.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveAll(ctx context.Context, categories []*finance.ExpenseCategory) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindBySociety(ctx context.Context, societyID uuid.UUID, filter finance.ExpenseFilter) (shared.Paginated[finance.Expense], error) {
	args := m.Called(ctx, societyID, filter)
	return args.Get(0).(shared.Paginated[finance.Expense]), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of finance.MaintenancePaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.MaintenancePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.MaintenancePayment), args.Error(1)
}

func (m *MockPaymentRepository) FindBySociety(ctx context.Context, societyID uuid.UUID, filter finance.PaymentFilter) (shared.Paginated[finance.MaintenancePayment], error) {
	args := m.Called(ctx, societyID, filter)
	return args.Get(0).(shared.Paginated[finance.MaintenancePayment]), args.Error(1)
}

func (m *MockPaymentRepository) FindByFlatAndPeriod(ctx context.Context, flatID uuid.UUID, period finance.BillingPeriod) (*finance.MaintenancePayment, error) {
	args := m.Called(ctx, flatID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.MaintenancePayment), args.Error(1)
}

func (m *MockPaymentRepository) ExistsForPeriod(ctx context.Context, flatID uuid.UUID, period finance.BillingPeriod) (bool, error) {
	args := m.Called(ctx, flatID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.MaintenancePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) BulkUpsert(ctx context.Context, payments []*finance.MaintenancePayment) (finance.BulkUpsertResult, error) {
	args := m.Called(ctx, payments)
	return args.Get(0).(finance.BulkUpsertResult), args.Error(1)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFlatRepository is a mock implementation of society.FlatRepository
type MockFlatRepository struct {
	mock.Mock
}

func (m *MockFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Flat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]society.Flat, error) {
	args := m.Called(ctx, societyID)
	return args.Get(0).([]society.Flat), args.Error(1)
}

func (m *MockFlatRepository) ExistsByNumber(ctx context.Context, societyID uuid.UUID, flatNumber string, block *string) (bool, error) {
	args := m.Called(ctx, societyID, flatNumber, block)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlatRepository) CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, societyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlatRepository) Save(ctx context.Context, flat *society.Flat) error {
	args := m.Called(ctx, flat)
	return args.Error(0)
}

func (m *MockFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of report.FinanceReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ExpenseTotalsByCategory(ctx context.Context, societyID uuid.UUID, startDate, endDate time.Time) ([]report.CategoryExpenseRow, error) {
	args := m.Called(ctx, societyID, startDate, endDate)
	return args.Get(0).([]report.CategoryExpenseRow), args.Error(1)
}

func (m *MockReportRepository) PaymentTotalsByStatus(ctx context.Context, societyID uuid.UUID, from, to finance.BillingPeriod) ([]report.PaymentStatusRow, error) {
	args := m.Called(ctx, societyID, from, to)
	return args.Get(0).([]report.PaymentStatusRow), args.Error(1)
}

func (m *MockReportRepository) MonthlyCollectionTotals(ctx context.Context, societyID uuid.UUID, from, to finance.BillingPeriod) ([]report.MonthlyCollectionRow, error) {
	args := m.Called(ctx, societyID, from, to)
	return args.Get(0).([]report.MonthlyCollectionRow), args.Error(1)
}

func (m *MockReportRepository) FindDefaulters(ctx context.Context, societyID uuid.UUID, period finance.BillingPeriod) ([]report.DefaulterRecord, error) {
	args := m.Called(ctx, societyID, period)
	return args.Get(0).([]report.DefaulterRecord), args.Error(1)
}
