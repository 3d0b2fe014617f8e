package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/finance"
	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/report"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/society"
)

const trendMonths = 12

// ReportService computes financial reports from the expense and payment
// ledgers. All operations are read-only.
type ReportService struct {
	reportRepo  report.FinanceReportRepository
	societyRepo society.SocietyRepository
	flatRepo    society.FlatRepository
	now         func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo report.FinanceReportRepository,
	societyRepo society.SocietyRepository,
	flatRepo society.FlatRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		societyRepo: societyRepo,
		flatRepo:    flatRepo,
		now:         time.Now,
	}
}

// WithClock overrides the trend anchor clock. Test hook.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// FinancialSummary aggregates income and spending over an inclusive date
// range. Payments are selected by the billing period span the range covers,
// not by literal dates.
func (s *ReportService) FinancialSummary(ctx context.Context, actor identity.Actor, societyID uuid.UUID, startDate, endDate time.Time) (*report.FinancialSummary, error) {
	if err := identity.Authorize(actor, identity.OpReportRead, societyID); err != nil {
		return nil, err
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewValidationError("Start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewValidationError("End date cannot be before start date")
	}

	expenseRows, err := s.reportRepo.ExpenseTotalsByCategory(ctx, societyID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	for _, row := range expenseRows {
		totalExpenses = totalExpenses.Add(row.Amount)
	}
	categories := make([]report.CategoryExpense, len(expenseRows))
	for i, row := range expenseRows {
		categories[i] = report.CategoryExpense{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Color:        row.Color,
			Amount:       row.Amount,
			Percentage:   report.GuardedRate(row.Amount, totalExpenses),
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	from, to := report.PeriodSpan(startDate, endDate)
	statusRows, err := s.reportRepo.PaymentTotalsByStatus(ctx, societyID, from, to)
	if err != nil {
		return nil, err
	}
	totalIncome, pending, selected := partitionByStatus(statusRows)

	return &report.FinancialSummary{
		SocietyID:          societyID,
		StartDate:          startDate,
		EndDate:            endDate,
		TotalExpenses:      totalExpenses,
		TotalIncome:        totalIncome,
		PendingPayments:    pending,
		CollectionRate:     report.GuardedRate(totalIncome, selected),
		Balance:            totalIncome.Sub(totalExpenses),
		ExpensesByCategory: categories,
	}, nil
}

// MonthlyReport aggregates one billing period. Expected income is always
// flat count times the society default maintenance amount; per-flat overrides
// do not enter the expected figure even though individual payment amounts may
// reflect them.
func (s *ReportService) MonthlyReport(ctx context.Context, actor identity.Actor, societyID uuid.UUID, month, year int) (*report.MonthlyReport, error) {
	if err := identity.Authorize(actor, identity.OpReportRead, societyID); err != nil {
		return nil, err
	}
	period, err := finance.NewBillingPeriod(month, year)
	if err != nil {
		return nil, err
	}

	soc, err := s.societyRepo.FindByID(ctx, societyID)
	if err != nil {
		return nil, err
	}
	if soc == nil {
		return nil, shared.NewNotFoundError("Society not found")
	}

	flatCount, err := s.flatRepo.CountBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	expected := soc.MaintenanceAmount.Amount().Mul(decimal.NewFromInt(flatCount))

	statusRows, err := s.reportRepo.PaymentTotalsByStatus(ctx, societyID, period, period)
	if err != nil {
		return nil, err
	}
	collected, pending, _ := partitionByStatus(statusRows)

	var defaulters report.DefaulterSummary
	for _, row := range statusRows {
		if row.Status == finance.PaymentStatusPending || row.Status == finance.PaymentStatusOverdue {
			defaulters.Count += row.Count
			defaulters.TotalAmount = defaulters.TotalAmount.Add(row.Amount)
		}
	}

	monthStart, monthEnd := report.MonthBounds(period)
	expenseRows, err := s.reportRepo.ExpenseTotalsByCategory(ctx, societyID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	totalExpenses := decimal.Zero
	for _, row := range expenseRows {
		totalExpenses = totalExpenses.Add(row.Amount)
	}
	categories := make([]report.MonthlyCategoryExpense, len(expenseRows))
	for i, row := range expenseRows {
		categories[i] = report.MonthlyCategoryExpense{
			CategoryExpense: report.CategoryExpense{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Color:        row.Color,
				Amount:       row.Amount,
				Percentage:   report.GuardedRate(row.Amount, totalExpenses),
			},
			Count: row.Count,
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	return &report.MonthlyReport{
		SocietyID:          societyID,
		Month:              month,
		Year:               year,
		ExpectedIncome:     expected,
		CollectedIncome:    collected,
		PendingIncome:      pending,
		CollectionRate:     report.GuardedRate(collected, expected),
		TotalExpenses:      totalExpenses,
		ExpensesByCategory: categories,
		Defaulters:         defaulters,
	}, nil
}

// YearToDateSummary is the financial summary over one full calendar year
func (s *ReportService) YearToDateSummary(ctx context.Context, actor identity.Actor, societyID uuid.UUID, year int) (*report.FinancialSummary, error) {
	if year < 2020 || year > 2100 {
		return nil, shared.NewValidationError("Year must be between 2020 and 2100")
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return s.FinancialSummary(ctx, actor, societyID, start, end)
}

// CollectionTrends returns the collection series of the 12 calendar months
// ending at the current month, oldest first. Months without payment rows
// appear with zero values, so the series always has 12 entries.
func (s *ReportService) CollectionTrends(ctx context.Context, actor identity.Actor, societyID uuid.UUID) ([]report.CollectionTrendEntry, error) {
	if err := identity.Authorize(actor, identity.OpReportRead, societyID); err != nil {
		return nil, err
	}

	now := s.now()
	end := finance.BillingPeriod{Month: int(now.Month()), Year: now.Year()}
	periods := report.TrailingPeriods(end, trendMonths)

	rows, err := s.reportRepo.MonthlyCollectionTotals(ctx, societyID, periods[0], end)
	if err != nil {
		return nil, err
	}
	byPeriod := make(map[finance.BillingPeriod]report.MonthlyCollectionRow, len(rows))
	for _, row := range rows {
		byPeriod[finance.BillingPeriod{Month: row.Month, Year: row.Year}] = row
	}

	entries := make([]report.CollectionTrendEntry, trendMonths)
	for i, period := range periods {
		entry := report.CollectionTrendEntry{
			Month:     period.Month,
			Year:      period.Year,
			Expected:  decimal.Zero,
			Collected: decimal.Zero,
			Rate:      decimal.Zero,
		}
		if row, ok := byPeriod[period]; ok {
			entry.Expected = row.Expected
			entry.Collected = row.Collected
			entry.Rate = report.GuardedRate(row.Collected, row.Expected)
		}
		entries[i] = entry
	}
	return entries, nil
}

// partitionByStatus splits per-status totals into collected (PAID), pending
// (PENDING + OVERDUE) and the grand total of all selected payments.
func partitionByStatus(rows []report.PaymentStatusRow) (collected, pending, total decimal.Decimal) {
	collected, pending, total = decimal.Zero, decimal.Zero, decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
		switch row.Status {
		case finance.PaymentStatusPaid:
			collected = collected.Add(row.Amount)
		case finance.PaymentStatusPending, finance.PaymentStatusOverdue:
			pending = pending.Add(row.Amount)
		}
	}
	return collected, pending, total
}
