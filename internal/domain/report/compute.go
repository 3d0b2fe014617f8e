package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/finance"
)

var hundred = decimal.NewFromInt(100)

// GuardedRate computes numerator / denominator * 100, returning zero when the
// denominator is zero.
func GuardedRate(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred).Round(2)
}

// PeriodSpan translates an inclusive date range into the inclusive billing
// period span it covers. A payment's date is its (month, year) pair, so a
// range from 2024-03-15 to 2024-05-02 selects the periods 2024-03 through
// 2024-05.
func PeriodSpan(startDate, endDate time.Time) (finance.BillingPeriod, finance.BillingPeriod) {
	from := finance.BillingPeriod{Month: int(startDate.Month()), Year: startDate.Year()}
	to := finance.BillingPeriod{Month: int(endDate.Month()), Year: endDate.Year()}
	return from, to
}

// TrailingPeriods returns the n billing periods ending at (and including)
// the given period, oldest first.
func TrailingPeriods(end finance.BillingPeriod, n int) []finance.BillingPeriod {
	periods := make([]finance.BillingPeriod, n)
	p := end
	for i := n - 1; i >= 0; i-- {
		periods[i] = p
		p = p.Previous()
	}
	return periods
}

// MonthBounds returns the first and last day of the period's calendar month.
func MonthBounds(period finance.BillingPeriod) (time.Time, time.Time) {
	start := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
