package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/report"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
	"github.com/societyhub/backend/internal/domain/society"
)

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

// MockSocietyRepository is a mock implementation of society.SocietyRepository
type MockSocietyRepository struct {
	mock.Mock
}

func (m *MockSocietyRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Society, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Society), args.Error(1)
}

func (m *MockSocietyRepository) FindAll(ctx context.Context) ([]society.Society, error) {
	args := m.Called(ctx)
	return args.Get(0).([]society.Society), args.Error(1)
}

func (m *MockSocietyRepository) Save(ctx context.Context, soc *society.Society) error {
	args := m.Called(ctx, soc)
	return args.Error(0)
}

func (m *MockSocietyRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

func residentActor(societyID uuid.UUID) identity.Actor {
	return identity.Actor{ID: uuid.New(), Role: identity.RoleResident, SocietyID: &societyID}
}

func storedSociety(t *testing.T, totalFlats int, maintenance float64) *society.Society {
	t.Helper()
	soc, err := society.NewSociety("Green Meadows", "14 Whitefield Main Road", "Bengaluru",
		"Karnataka", "560066", totalFlats, valueobject.NewMoneyINRFromFloat(maintenance))
	require.NoError(t, err)
	return soc
}

func TestFinancialSummary(t *testing.T) {
	societyID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("computes totals percentages and balance", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		reportRepo.On("ExpenseTotalsByCategory", mock.Anything, societyID, start, end).Return([]report.CategoryExpenseRow{
			{CategoryName: "Cleaning", Amount: decimal.NewFromInt(400)},
			{CategoryName: "Security", Amount: decimal.NewFromInt(600)},
		}, nil)
		from := finance.BillingPeriod{Month: 1, Year: 2024}
		to := finance.BillingPeriod{Month: 3, Year: 2024}
		reportRepo.On("PaymentTotalsByStatus", mock.Anything, societyID, from, to).Return([]report.PaymentStatusRow{
			{Status: finance.PaymentStatusPaid, Amount: decimal.NewFromInt(3000), Count: 3},
			{Status: finance.PaymentStatusPending, Amount: decimal.NewFromInt(1000), Count: 1},
		}, nil)
		svc := NewReportService(reportRepo, new(MockSocietyRepository), new(MockFlatRepository))

		summary, err := svc.FinancialSummary(context.Background(), residentActor(societyID), societyID, start, end)
		require.NoError(t, err)

		assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(1000)))
		assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(3000)))
		assert.True(t, summary.PendingPayments.Equal(decimal.NewFromInt(1000)))
		assert.True(t, summary.Balance.Equal(decimal.NewFromInt(2000)))
		assert.Equal(t, "75", summary.CollectionRate.String())

		require.Len(t, summary.ExpensesByCategory, 2)
		assert.Equal(t, "Security", summary.ExpensesByCategory[0].CategoryName)
		assert.Equal(t, "60", summary.ExpensesByCategory[0].Percentage.String())
		assert.Equal(t, "Cleaning", summary.ExpensesByCategory[1].CategoryName)
		assert.Equal(t, "40", summary.ExpensesByCategory[1].Percentage.String())
	})

	t.Run("zero activity yields zero rates not errors", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		reportRepo.On("ExpenseTotalsByCategory", mock.Anything, societyID, start, end).Return([]report.CategoryExpenseRow{}, nil)
		reportRepo.On("PaymentTotalsByStatus", mock.Anything, societyID, mock.Anything, mock.Anything).Return([]report.PaymentStatusRow{}, nil)
		svc := NewReportService(reportRepo, new(MockSocietyRepository), new(MockFlatRepository))

		summary, err := svc.FinancialSummary(context.Background(), residentActor(societyID), societyID, start, end)
		require.NoError(t, err)
		assert.True(t, summary.CollectionRate.IsZero())
		assert.True(t, summary.TotalExpenses.IsZero())
		assert.Empty(t, summary.ExpensesByCategory)
	})

	t.Run("cross tenant read is forbidden", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), new(MockSocietyRepository), new(MockFlatRepository))
		_, err := svc.FinancialSummary(context.Background(), residentActor(uuid.New()), societyID, start, end)
		assert.True(t, shared.IsKind(err, "FORBIDDEN"))
	})

	t.Run("inverted range fails validation", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), new(MockSocietyRepository), new(MockFlatRepository))
		_, err := svc.FinancialSummary(context.Background(), residentActor(societyID), societyID, end, start)
		assert.True(t, shared.IsKind(err, "VALIDATION"))
	})
}

func TestMonthlyReport(t *testing.T) {
	societyID := uuid.New()

	t.Run("expected income ignores flat overrides", func(t *testing.T) {
		soc := storedSociety(t, 48, 1000)
		reportRepo := new(MockReportRepository)
		societyRepo := new(MockSocietyRepository)
		flatRepo := new(MockFlatRepository)
		societyRepo.On("FindByID", mock.Anything, societyID).Return(soc, nil)
		flatRepo.On("CountBySociety", mock.Anything, societyID).Return(int64(3), nil)
		period := finance.BillingPeriod{Month: 3, Year: 2024}
		reportRepo.On("PaymentTotalsByStatus", mock.Anything, societyID, period, period).Return([]report.PaymentStatusRow{
			{Status: finance.PaymentStatusPending, Amount: decimal.NewFromInt(2000), Count: 2},
		}, nil)
		reportRepo.On("ExpenseTotalsByCategory", mock.Anything, societyID, mock.Anything, mock.Anything).Return([]report.CategoryExpenseRow{}, nil)
		svc := NewReportService(reportRepo, societyRepo, flatRepo)

		monthly, err := svc.MonthlyReport(context.Background(), residentActor(societyID), societyID, 3, 2024)
		require.NoError(t, err)

		assert.True(t, monthly.ExpectedIncome.Equal(decimal.NewFromInt(3000)))
		assert.True(t, monthly.CollectedIncome.IsZero())
		assert.True(t, monthly.PendingIncome.Equal(decimal.NewFromInt(2000)))
		assert.True(t, monthly.CollectionRate.IsZero())
		assert.Equal(t, int64(2), monthly.Defaulters.Count)
		assert.True(t, monthly.Defaulters.TotalAmount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("collection rate uses expected income", func(t *testing.T) {
		soc := storedSociety(t, 48, 1000)
		reportRepo := new(MockReportRepository)
		societyRepo := new(MockSocietyRepository)
		flatRepo := new(MockFlatRepository)
		societyRepo.On("FindByID", mock.Anything, societyID).Return(soc, nil)
		flatRepo.On("CountBySociety", mock.Anything, societyID).Return(int64(4), nil)
		period := finance.BillingPeriod{Month: 6, Year: 2025}
		reportRepo.On("PaymentTotalsByStatus", mock.Anything, societyID, period, period).Return([]report.PaymentStatusRow{
			{Status: finance.PaymentStatusPaid, Amount: decimal.NewFromInt(3000), Count: 3},
		}, nil)
		reportRepo.On("ExpenseTotalsByCategory", mock.Anything, societyID, mock.Anything, mock.Anything).Return([]report.CategoryExpenseRow{
			{CategoryName: "Water", Amount: decimal.NewFromInt(500), Count: 2},
		}, nil)
		svc := NewReportService(reportRepo, societyRepo, flatRepo)

		monthly, err := svc.MonthlyReport(context.Background(), residentActor(societyID), societyID, 6, 2025)
		require.NoError(t, err)

		assert.Equal(t, "75", monthly.CollectionRate.String())
		require.Len(t, monthly.ExpensesByCategory, 1)
		assert.Equal(t, int64(2), monthly.ExpensesByCategory[0].Count)
		assert.True(t, monthly.TotalExpenses.Equal(decimal.NewFromInt(500)))
	})

	t.Run("zero flats yields zero rate", func(t *testing.T) {
		soc := storedSociety(t, 48, 0)
		reportRepo := new(MockReportRepository)
		societyRepo := new(MockSocietyRepository)
		flatRepo := new(MockFlatRepository)
		societyRepo.On("FindByID", mock.Anything, societyID).Return(soc, nil)
		flatRepo.On("CountBySociety", mock.Anything, societyID).Return(int64(0), nil)
		reportRepo.On("PaymentTotalsByStatus", mock.Anything, societyID, mock.Anything, mock.Anything).Return([]report.PaymentStatusRow{}, nil)
		reportRepo.On("ExpenseTotalsByCategory", mock.Anything, societyID, mock.Anything, mock.Anything).Return([]report.CategoryExpenseRow{}, nil)
		svc := NewReportService(reportRepo, societyRepo, flatRepo)

		monthly, err := svc.MonthlyReport(context.Background(), residentActor(societyID), societyID, 1, 2024)
		require.NoError(t, err)
		assert.True(t, monthly.CollectionRate.IsZero())
	})

	t.Run("missing society is not found", func(t *testing.T) {
		societyRepo := new(MockSocietyRepository)
		societyRepo.On("FindByID", mock.Anything, societyID).Return(nil, nil)
		svc := NewReportService(new(MockReportRepository), societyRepo, new(MockFlatRepository))

		_, err := svc.MonthlyReport(context.Background(), residentActor(societyID), societyID, 1, 2024)
		assert.True(t, shared.IsKind(err, "NOT_FOUND"))
	})

	t.Run("invalid month fails validation", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), new(MockSocietyRepository), new(MockFlatRepository))
		_, err := svc.MonthlyReport(context.Background(), residentActor(societyID), societyID, 0, 2024)
		assert.True(t, shared.IsKind(err, "VALIDATION"))
	})
}

func TestYearToDateSummary(t *testing.T) {
	societyID := uuid.New()

	t.Run("spans the full calendar year", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		reportRepo.On("ExpenseTotalsByCategory", mock.Anything, societyID,
			mock.MatchedBy(func(d time.Time) bool { return d.Month() == time.January && d.Day() == 1 }),
			mock.MatchedBy(func(d time.Time) bool { return d.Month() == time.December && d.Day() == 31 }),
		).Return([]report.CategoryExpenseRow{}, nil)
		reportRepo.On("PaymentTotalsByStatus", mock.Anything, societyID,
			finance.BillingPeriod{Month: 1, Year: 2024},
			finance.BillingPeriod{Month: 12, Year: 2024},
		).Return([]report.PaymentStatusRow{}, nil)
		svc := NewReportService(reportRepo, new(MockSocietyRepository), new(MockFlatRepository))

		_, err := svc.YearToDateSummary(context.Background(), residentActor(societyID), societyID, 2024)
		require.NoError(t, err)
		reportRepo.AssertExpectations(t)
	})

	t.Run("rejects out of range year", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), new(MockSocietyRepository), new(MockFlatRepository))
		_, err := svc.YearToDateSummary(context.Background(), residentActor(societyID), societyID, 1999)
		assert.True(t, shared.IsKind(err, "VALIDATION"))
	})
}

func TestCollectionTrends(t *testing.T) {
	societyID := uuid.New()
	clock := func() time.Time { return time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC) }

	t.Run("always 12 entries oldest first with zero fill", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		reportRepo.On("MonthlyCollectionTotals", mock.Anything, societyID,
			finance.BillingPeriod{Month: 3, Year: 2024},
			finance.BillingPeriod{Month: 2, Year: 2025},
		).Return([]report.MonthlyCollectionRow{
			{Month: 6, Year: 2024, Expected: decimal.NewFromInt(4000), Collected: decimal.NewFromInt(3000)},
		}, nil)
		svc := NewReportService(reportRepo, new(MockSocietyRepository), new(MockFlatRepository)).WithClock(clock)

		entries, err := svc.CollectionTrends(context.Background(), residentActor(societyID), societyID)
		require.NoError(t, err)
		require.Len(t, entries, 12)

		assert.Equal(t, 3, entries[0].Month)
		assert.Equal(t, 2024, entries[0].Year)
		assert.Equal(t, 2, entries[11].Month)
		assert.Equal(t, 2025, entries[11].Year)

		june := entries[3]
		assert.Equal(t, 6, june.Month)
		assert.Equal(t, "75", june.Rate.String())

		for i, entry := range entries {
			if i == 3 {
				continue
			}
			assert.True(t, entry.Expected.IsZero())
			assert.True(t, entry.Collected.IsZero())
			assert.True(t, entry.Rate.IsZero())
		}
	})

	t.Run("cross tenant read is forbidden", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), new(MockSocietyRepository), new(MockFlatRepository))
		_, err := svc.CollectionTrends(context.Background(), residentActor(uuid.New()), societyID)
		assert.True(t, shared.IsKind(err, "FORBIDDEN"))
	})
}
