package filings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int               { return &v }
func datePtr(t time.Time) *time.Time  { return &t }

func latestQ(ticker string, fy, fq int, periodEnd time.Time) LatestFiling {
	return LatestFiling{
		CompanyID:     1,
		Ticker:        ticker,
		Name:          ticker + " Inc.",
		FilingType:    TypeQuarterly,
		FilingDate:    periodEnd.AddDate(0, 0, 40),
		FiscalYear:    intPtr(fy),
		FiscalQuarter: intPtr(fq),
		PeriodEndDate: datePtr(periodEnd),
	}
}

func latestK(ticker string, fy int, periodEnd time.Time) LatestFiling {
	return LatestFiling{
		CompanyID:     1,
		Ticker:        ticker,
		Name:          ticker + " Inc.",
		FilingType:    TypeAnnual,
		FilingDate:    periodEnd.AddDate(0, 0, 60),
		FiscalYear:    intPtr(fy),
		PeriodEndDate: datePtr(periodEnd),
	}
}

func TestEstimateUpcoming_Q3ProjectsQ4(t *testing.T) {
	// Last filing: 10-Q Q3 FY2024, period ended 2024-09-30
	now := date(2024, time.November, 1)
	input := []LatestFiling{latestQ("ACME", 2024, 3, date(2024, time.September, 30))}

	result := EstimateUpcoming(input, now, 120)
	require.Len(t, result, 1)

	f := result[0]
	assert.Equal(t, "ACME", f.Ticker)
	assert.Equal(t, TypeQuarterly, f.FilingType)
	assert.Equal(t, 2024, f.FiscalYear)
	assert.Equal(t, 4, f.FiscalQuarter)
	assert.Equal(t, date(2024, time.December, 31), f.PeriodEndDate)
	// Dec 31 + 42 days
	assert.Equal(t, date(2025, time.February, 11), f.EstimatedDate)
	assert.Equal(t, 102, f.DaysUntil)
	assert.Equal(t, "Q4 2024", f.FiscalPeriod)
}

func TestEstimateUpcoming_Q4ProjectsAnnual(t *testing.T) {
	// A company whose last filing was Q4 must project a 10-K next,
	// for the same fiscal year and the same period end
	now := date(2025, time.January, 15)
	input := []LatestFiling{latestQ("ACME", 2024, 4, date(2024, time.December, 31))}

	result := EstimateUpcoming(input, now, 120)
	require.Len(t, result, 1)

	f := result[0]
	assert.Equal(t, TypeAnnual, f.FilingType)
	assert.Equal(t, 2024, f.FiscalYear)
	assert.Equal(t, 0, f.FiscalQuarter)
	assert.Equal(t, date(2024, time.December, 31), f.PeriodEndDate)
	// Dec 31 + 67 days
	assert.Equal(t, date(2025, time.March, 8), f.EstimatedDate)
	assert.Equal(t, "FY 2024", f.FiscalPeriod)
}

func TestEstimateUpcoming_AnnualProjectsQ1NextYear(t *testing.T) {
	now := date(2025, time.March, 10)
	input := []LatestFiling{latestK("ACME", 2024, date(2024, time.December, 31))}

	result := EstimateUpcoming(input, now, 120)
	require.Len(t, result, 1)

	f := result[0]
	assert.Equal(t, TypeQuarterly, f.FilingType)
	assert.Equal(t, 2025, f.FiscalYear)
	assert.Equal(t, 1, f.FiscalQuarter)
	assert.Equal(t, date(2025, time.March, 31), f.PeriodEndDate)
	assert.Equal(t, date(2025, time.May, 12), f.EstimatedDate)
}

func TestEstimateUpcoming_RolloverBeyondHorizon(t *testing.T) {
	// Last filing: 10-K FY2023, period ended 2023-12-31, now = 2024-06-01.
	// The Q1 2024 projection (est. 2024-05-12) is already past, so the
	// cursor rolls to Q2 2024 (est. 2024-08-11, 71 days out) which
	// exceeds the 60-day horizon: the company yields no result.
	now := date(2024, time.June, 1)
	input := []LatestFiling{latestK("ACME", 2023, date(2023, time.December, 31))}

	result := EstimateUpcoming(input, now, 60)
	assert.Empty(t, result)

	// The same input with a wider horizon surfaces the Q2 projection
	result = EstimateUpcoming(input, now, 120)
	require.Len(t, result, 1)

	f := result[0]
	assert.Equal(t, TypeQuarterly, f.FilingType)
	assert.Equal(t, 2, f.FiscalQuarter)
	assert.Equal(t, 2024, f.FiscalYear)
	assert.Equal(t, date(2024, time.June, 30), f.PeriodEndDate)
	assert.Equal(t, date(2024, time.August, 11), f.EstimatedDate)
	assert.Equal(t, 71, f.DaysUntil)
}

func TestEstimateUpcoming_NonDecemberFiscalYear(t *testing.T) {
	// June fiscal year end: Q1 period end must follow the company's own
	// calendar (Sep 30), not an assumed December year end
	now := date(2024, time.October, 1)
	input := []LatestFiling{latestK("JUNE", 2024, date(2024, time.June, 30))}

	result := EstimateUpcoming(input, now, 60)
	require.Len(t, result, 1)

	f := result[0]
	assert.Equal(t, 1, f.FiscalQuarter)
	assert.Equal(t, 2025, f.FiscalYear)
	assert.Equal(t, date(2024, time.September, 30), f.PeriodEndDate)
	assert.Equal(t, date(2024, time.November, 11), f.EstimatedDate)
	assert.Equal(t, 41, f.DaysUntil)
}

func TestEstimateUpcoming_SkipsIncompleteRecords(t *testing.T) {
	now := date(2024, time.November, 1)
	input := []LatestFiling{
		{
			Ticker:        "NOPE",
			Name:          "No Period End Inc.",
			FilingType:    TypeQuarterly,
			FiscalYear:    intPtr(2024),
			FiscalQuarter: intPtr(2),
			// PeriodEndDate missing
		},
		{
			Ticker:        "NOFY",
			Name:          "No Fiscal Year Inc.",
			FilingType:    TypeQuarterly,
			FiscalQuarter: intPtr(2),
			PeriodEndDate: datePtr(date(2024, time.September, 30)),
			// FiscalYear missing
		},
		latestQ("GOOD", 2024, 3, date(2024, time.September, 30)),
	}

	result := EstimateUpcoming(input, now, 120)
	require.Len(t, result, 1)
	assert.Equal(t, "GOOD", result[0].Ticker)
}

func TestEstimateUpcoming_StaleDataExcludedByCap(t *testing.T) {
	// 20 quarterly steps cover about five years; a company last seen in
	// 2000 cannot reach a future date and is silently excluded
	now := date(2024, time.June, 1)
	input := []LatestFiling{latestQ("OLD", 2000, 1, date(2000, time.March, 31))}

	result := EstimateUpcoming(input, now, 365)
	assert.Empty(t, result)
}

func TestEstimateUpcoming_TerminatesOnAncientDates(t *testing.T) {
	now := date(2024, time.June, 1)
	input := []LatestFiling{
		latestQ("A", 1970, 1, date(1970, time.March, 31)),
		latestK("B", 1980, date(1980, time.December, 31)),
	}

	done := make(chan []UpcomingFiling, 1)
	go func() {
		done <- EstimateUpcoming(input, now, 365)
	}()

	select {
	case result := <-done:
		assert.Empty(t, result)
	case <-time.After(5 * time.Second):
		t.Fatal("estimator did not terminate")
	}
}

func TestEstimateUpcoming_OutputInvariants(t *testing.T) {
	now := date(2024, time.November, 1)
	daysAhead := 150
	input := []LatestFiling{
		latestQ("AAA", 2024, 3, date(2024, time.September, 30)),
		latestQ("BBB", 2024, 4, date(2024, time.December, 31)),
		latestQ("CCC", 2024, 2, date(2024, time.June, 30)),
		latestK("DDD", 2024, date(2024, time.June, 30)),
	}

	result := EstimateUpcoming(input, now, daysAhead)
	require.NotEmpty(t, result)

	for _, f := range result {
		assert.Greater(t, f.DaysUntil, 0, "%s: daysUntil must be positive", f.Ticker)
		assert.LessOrEqual(t, f.DaysUntil, daysAhead, "%s: daysUntil must be within horizon", f.Ticker)
		assert.True(t, f.EstimatedDate.After(now), "%s: estimated date must be in the future", f.Ticker)
	}

	// Sorted ascending by estimated date
	for i := 1; i < len(result); i++ {
		assert.False(t, result[i].EstimatedDate.Before(result[i-1].EstimatedDate),
			"output must be non-decreasing in estimated date")
	}
}

func TestEstimateUpcoming_Idempotent(t *testing.T) {
	now := date(2024, time.November, 1)
	input := []LatestFiling{
		latestQ("AAA", 2024, 3, date(2024, time.September, 30)),
		latestK("BBB", 2023, date(2023, time.December, 31)),
	}

	first := EstimateUpcoming(input, now, 365)
	second := EstimateUpcoming(input, now, 365)
	assert.Equal(t, first, second)
}

func TestEstimateUpcoming_DoesNotMutateInput(t *testing.T) {
	now := date(2024, time.November, 1)
	periodEnd := date(2024, time.September, 30)
	input := []LatestFiling{latestQ("AAA", 2024, 3, periodEnd)}

	EstimateUpcoming(input, now, 365)

	assert.Equal(t, 2024, *input[0].FiscalYear)
	assert.Equal(t, 3, *input[0].FiscalQuarter)
	assert.Equal(t, periodEnd, *input[0].PeriodEndDate)
}

func TestNextQuarterEnd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"dec to mar", date(2024, time.December, 31), date(2025, time.March, 31)},
		{"mar to jun", date(2024, time.March, 31), date(2024, time.June, 30)},
		{"jun to sep", date(2024, time.June, 30), date(2024, time.September, 30)},
		{"sep to dec", date(2024, time.September, 30), date(2024, time.December, 31)},
		{"jan to apr", date(2025, time.January, 31), date(2025, time.April, 30)},
		{"nov to feb", date(2024, time.November, 30), date(2025, time.February, 28)},
		{"nov to feb leap", date(2023, time.November, 30), date(2024, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextQuarterEnd(tt.in))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	now := date(2024, time.November, 1)

	assert.Equal(t, 102, daysBetween(now, date(2025, time.February, 11)))
	assert.Equal(t, 1, daysBetween(now, date(2024, time.November, 2)))
	assert.Equal(t, 0, daysBetween(now, now))
	assert.Equal(t, -1, daysBetween(now, date(2024, time.October, 31)))

	// Partial days round up
	assert.Equal(t, 1, daysBetween(now, now.Add(6*time.Hour)))
}
