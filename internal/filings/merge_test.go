package filings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func estimated(ticker string, est time.Time, days int) UpcomingFiling {
	return UpcomingFiling{
		Ticker:        ticker,
		Name:          ticker + " Inc.",
		FilingType:    TypeQuarterly,
		FiscalYear:    2025,
		FiscalQuarter: 1,
		EstimatedDate: est,
		DaysUntil:     days,
		FiscalPeriod:  "Q1 2025",
	}
}

func scheduled(ticker string, earnings time.Time, fq int) ScheduledFiling {
	eps := 1.25
	return ScheduledFiling{
		Ticker:        ticker,
		Name:          ticker + " Inc.",
		EarningsDate:  earnings,
		EarningsTime:  "amc",
		FiscalYear:    2025,
		FiscalQuarter: fq,
		EPSEstimate:   &eps,
	}
}

func TestMergeScheduled_ScheduledSuppressesEstimate(t *testing.T) {
	now := date(2025, time.January, 2)

	est := []UpcomingFiling{
		estimated("AAPL", date(2025, time.February, 11), 40),
		estimated("MSFT", date(2025, time.February, 14), 43),
	}
	// AAPL has a confirmed date that differs from the estimate;
	// the estimate must be fully suppressed
	sch := []ScheduledFiling{scheduled("AAPL", date(2025, time.January, 30), 1)}

	merged, stats := MergeScheduled(est, sch, now, 10)
	require.Len(t, merged, 2)

	assert.Equal(t, "AAPL", merged[0].Ticker)
	assert.Equal(t, SourceScheduled, merged[0].Source)
	assert.Equal(t, date(2025, time.January, 30), merged[0].EstimatedDate)
	assert.Equal(t, 28, merged[0].DaysUntil)
	assert.Equal(t, "amc", merged[0].EarningsTime)
	require.NotNil(t, merged[0].EPSEstimate)
	assert.Equal(t, 1.25, *merged[0].EPSEstimate)

	assert.Equal(t, "MSFT", merged[1].Ticker)
	assert.Equal(t, SourceEstimated, merged[1].Source)

	assert.Equal(t, 1, stats.Scheduled)
	assert.Equal(t, 1, stats.Estimated)
}

func TestMergeScheduled_SortedAndTruncated(t *testing.T) {
	now := date(2025, time.January, 2)

	est := []UpcomingFiling{
		estimated("CCC", date(2025, time.March, 1), 58),
		estimated("AAA", date(2025, time.February, 1), 30),
	}
	sch := []ScheduledFiling{
		scheduled("BBB", date(2025, time.February, 15), 4),
	}

	merged, _ := MergeScheduled(est, sch, now, 2)
	require.Len(t, merged, 2)
	assert.Equal(t, "AAA", merged[0].Ticker)
	assert.Equal(t, "BBB", merged[1].Ticker)

	// Q4 earnings precede the annual report
	assert.Equal(t, TypeAnnual, merged[1].FilingType)
	assert.Equal(t, "FY 2025", merged[1].FiscalPeriod)
}

func TestMergeScheduled_EmptyInputs(t *testing.T) {
	now := date(2025, time.January, 2)

	merged, stats := MergeScheduled(nil, nil, now, 10)
	assert.Empty(t, merged)
	assert.Equal(t, 0, stats.Scheduled)
	assert.Equal(t, 0, stats.Estimated)

	merged, stats = MergeScheduled(nil, []ScheduledFiling{scheduled("AAA", date(2025, time.February, 1), 2)}, now, 10)
	require.Len(t, merged, 1)
	assert.Equal(t, SourceScheduled, merged[0].Source)
	assert.Equal(t, "Q2 2025", merged[0].FiscalPeriod)
	assert.Equal(t, 1, stats.Scheduled)
}
