package filings

import (
	"sort"
	"time"
)

// Provenance of a merged entry
const (
	SourceScheduled = "scheduled"
	SourceEstimated = "estimated"
)

// ScheduledFiling is a company-announced earnings event from the
// earnings calendar. When present for a ticker it is authoritative over
// the heuristic estimate.
type ScheduledFiling struct {
	Ticker          string
	Name            string
	EarningsDate    time.Time
	EarningsTime    string // "bmo" or "amc", empty when unknown
	FiscalYear      int
	FiscalQuarter   int
	EPSEstimate     *float64
	RevenueEstimate *float64
}

// MergedFiling is one entry of the combined upcoming-filings feed
type MergedFiling struct {
	Ticker          string    `json:"ticker"`
	Name            string    `json:"name"`
	FilingType      string    `json:"filingType"`
	EstimatedDate   time.Time `json:"estimatedDate"`
	DaysUntil       int       `json:"daysUntil"`
	FiscalPeriod    string    `json:"fiscalPeriod"`
	Source          string    `json:"source"`
	EarningsTime    string    `json:"earningsTime,omitempty"`
	EPSEstimate     *float64  `json:"epsEstimate,omitempty"`
	RevenueEstimate *float64  `json:"revenueEstimate,omitempty"`
}

// MergeStats reports how many entries came from each source
type MergeStats struct {
	Scheduled int `json:"scheduled"`
	Estimated int `json:"estimated"`
}

// MergeScheduled combines scheduled earnings with estimated projections.
// A ticker present in the scheduled set suppresses its estimate entirely,
// even when the dates differ. The combined list is sorted ascending by
// date and truncated to limit.
func MergeScheduled(estimated []UpcomingFiling, scheduled []ScheduledFiling, now time.Time, limit int) ([]MergedFiling, MergeStats) {
	merged := make([]MergedFiling, 0, len(estimated)+len(scheduled))

	scheduledTickers := make(map[string]bool, len(scheduled))
	for _, s := range scheduled {
		scheduledTickers[s.Ticker] = true

		merged = append(merged, MergedFiling{
			Ticker:          s.Ticker,
			Name:            s.Name,
			FilingType:      scheduledFilingType(s.FiscalQuarter),
			EstimatedDate:   s.EarningsDate,
			DaysUntil:       daysBetween(now, s.EarningsDate),
			FiscalPeriod:    scheduledPeriodLabel(s),
			Source:          SourceScheduled,
			EarningsTime:    s.EarningsTime,
			EPSEstimate:     s.EPSEstimate,
			RevenueEstimate: s.RevenueEstimate,
		})
	}

	for _, e := range estimated {
		if scheduledTickers[e.Ticker] {
			continue
		}
		merged = append(merged, MergedFiling{
			Ticker:        e.Ticker,
			Name:          e.Name,
			FilingType:    e.FilingType,
			EstimatedDate: e.EstimatedDate,
			DaysUntil:     e.DaysUntil,
			FiscalPeriod:  e.FiscalPeriod,
			Source:        SourceEstimated,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].EstimatedDate.Equal(merged[j].EstimatedDate) {
			return merged[i].EstimatedDate.Before(merged[j].EstimatedDate)
		}
		return merged[i].Ticker < merged[j].Ticker
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	stats := MergeStats{}
	for _, m := range merged {
		if m.Source == SourceScheduled {
			stats.Scheduled++
		} else {
			stats.Estimated++
		}
	}

	return merged, stats
}

// scheduledFilingType guesses the filing that follows an earnings call.
// Q4 earnings precede the annual report.
func scheduledFilingType(fiscalQuarter int) string {
	if fiscalQuarter == 4 {
		return TypeAnnual
	}
	return TypeQuarterly
}

func scheduledPeriodLabel(s ScheduledFiling) string {
	p := projection{
		filingType:    scheduledFilingType(s.FiscalQuarter),
		fiscalYear:    s.FiscalYear,
		fiscalQuarter: s.FiscalQuarter,
	}
	if p.filingType == TypeAnnual {
		p.fiscalQuarter = 0
	}
	return fiscalPeriodLabel(p)
}
