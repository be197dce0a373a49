package filings

import (
	"fmt"
	"sort"
	"time"
)

// SEC deadline heuristics. Large accelerated filers get 40 days for a
// 10-Q and 60 for a 10-K, smaller filers up to 45 and 75; the offsets
// below are midpoints of those windows.
const (
	quarterlyFilingOffset = 42 // days after period end for a 10-Q
	annualFilingOffset    = 67 // days after period end for a 10-K

	// maxRollforward bounds the cursor advance for companies with stale
	// data (20 quarters is roughly five years).
	maxRollforward = 20
)

// projection is the estimator's internal cursor: the filing it currently
// treats as "last known" while walking forward.
type projection struct {
	filingType    string
	fiscalYear    int
	fiscalQuarter int // 0 when filingType is 10-K
	periodEnd     time.Time
}

// EstimateUpcoming projects the next filing for each company in
// latestFilings and returns those estimated within daysAhead days of
// now, sorted ascending by estimated date.
//
// Pure function: no I/O, no mutation of inputs, deterministic for a
// fixed now. Records missing a period end or fiscal year are skipped.
// Companies whose first future projection falls beyond daysAhead, or
// whose data is too stale to reach a future date within the rollforward
// cap, are excluded rather than reported as errors.
func EstimateUpcoming(latestFilings []LatestFiling, now time.Time, daysAhead int) []UpcomingFiling {
	var upcoming []UpcomingFiling

	for _, last := range latestFilings {
		// Not projectable without fiscal context
		if last.PeriodEndDate == nil || last.FiscalYear == nil {
			continue
		}

		cur := projection{
			filingType: last.FilingType,
			fiscalYear: *last.FiscalYear,
			periodEnd:  *last.PeriodEndDate,
		}
		if last.FiscalQuarter != nil {
			cur.fiscalQuarter = *last.FiscalQuarter
		}

		next, ok := firstFutureProjection(cur, now)
		if !ok {
			continue
		}

		estimated := estimatedFilingDate(next)
		days := daysBetween(now, estimated)
		if days > daysAhead {
			continue
		}

		upcoming = append(upcoming, UpcomingFiling{
			Ticker:        last.Ticker,
			Name:          last.Name,
			FilingType:    next.filingType,
			FiscalYear:    next.fiscalYear,
			FiscalQuarter: next.fiscalQuarter,
			PeriodEndDate: next.periodEnd,
			EstimatedDate: estimated,
			DaysUntil:     days,
			FiscalPeriod:  fiscalPeriodLabel(next),
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if !upcoming[i].EstimatedDate.Equal(upcoming[j].EstimatedDate) {
			return upcoming[i].EstimatedDate.Before(upcoming[j].EstimatedDate)
		}
		return upcoming[i].Ticker < upcoming[j].Ticker
	})

	return upcoming
}

// firstFutureProjection advances the cursor past filings whose estimated
// date has already elapsed, up to maxRollforward steps. Returns false
// when no future filing is reachable within the cap.
func firstFutureProjection(cur projection, now time.Time) (projection, bool) {
	for i := 0; i < maxRollforward; i++ {
		next := nextFiling(cur)
		if daysBetween(now, estimatedFilingDate(next)) > 0 {
			return next, true
		}
		cur = next
	}
	return projection{}, false
}

// nextFiling determines the filing that follows cur in a company's
// reporting cycle:
//
//	10-Q Q4      -> 10-K for the same fiscal year (same period end)
//	10-Q Q1..Q3  -> 10-Q for the next quarter, period end one quarter on
//	10-K         -> 10-Q Q1 of the next fiscal year, period end one quarter on
func nextFiling(cur projection) projection {
	if cur.filingType == TypeQuarterly && cur.fiscalQuarter == 4 {
		// Q4 period end is the fiscal year end
		return projection{
			filingType: TypeAnnual,
			fiscalYear: cur.fiscalYear,
			periodEnd:  cur.periodEnd,
		}
	}

	if cur.filingType == TypeQuarterly {
		return projection{
			filingType:    TypeQuarterly,
			fiscalYear:    cur.fiscalYear,
			fiscalQuarter: cur.fiscalQuarter + 1,
			periodEnd:     nextQuarterEnd(cur.periodEnd),
		}
	}

	// 10-K
	return projection{
		filingType:    TypeQuarterly,
		fiscalYear:    cur.fiscalYear + 1,
		fiscalQuarter: 1,
		periodEnd:     nextQuarterEnd(cur.periodEnd),
	}
}

// nextQuarterEnd returns the last day of the month three months after
// periodEnd's month. Anchoring to the company's own period end keeps
// non-December fiscal years coherent: Dec 31 -> Mar 31 -> Jun 30 ->
// Sep 30 -> Dec 31, and equally Jun 30 -> Sep 30 for a June filer.
func nextQuarterEnd(periodEnd time.Time) time.Time {
	y, m, _ := periodEnd.Date()
	// Day 0 of month m+4 normalizes to the last day of month m+3
	return time.Date(y, m+4, 0, 0, 0, 0, 0, periodEnd.Location())
}

// estimatedFilingDate applies the SEC deadline offset for the filing type
func estimatedFilingDate(p projection) time.Time {
	if p.filingType == TypeAnnual {
		return p.periodEnd.AddDate(0, 0, annualFilingOffset)
	}
	return p.periodEnd.AddDate(0, 0, quarterlyFilingOffset)
}

// daysBetween returns ceil((to - from) / 24h)
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// fiscalPeriodLabel formats the fiscal period for display,
// e.g. "Q2 2025" for a 10-Q and "FY 2024" for a 10-K
func fiscalPeriodLabel(p projection) string {
	if p.filingType == TypeAnnual {
		return fmt.Sprintf("FY %d", p.fiscalYear)
	}
	return fmt.Sprintf("Q%d %d", p.fiscalQuarter, p.fiscalYear)
}
