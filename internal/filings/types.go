package filings

import "time"

// Filing types tracked by the pipeline
const (
	TypeAnnual    = "10-K"
	TypeQuarterly = "10-Q"
)

// Filing represents a stored SEC filing row
type Filing struct {
	ID              int64      `json:"id"`
	CompanyID       int64      `json:"company_id"`
	FilingType      string     `json:"filing_type"`
	AccessionNumber string     `json:"accession_number"`
	FilingDate      time.Time  `json:"filing_date"`
	PeriodEndDate   *time.Time `json:"period_end_date,omitempty"`
	FiscalYear      *int       `json:"fiscal_year,omitempty"`
	FiscalQuarter   *int       `json:"fiscal_quarter,omitempty"`
	EdgarURL        string     `json:"edgar_url"`
	Status          string     `json:"status"`
}

// LatestFiling is the most recent filing for a company, joined with
// company identity. One entry per company; resolving "most recent" is
// the repository's job, not the estimator's.
type LatestFiling struct {
	CompanyID     int64
	Ticker        string
	Name          string
	FilingType    string
	FilingDate    time.Time
	FiscalYear    *int
	FiscalQuarter *int
	PeriodEndDate *time.Time
}

// UpcomingFiling is a projected next filing for a company. Derived and
// ephemeral: recomputed on every request, never persisted.
type UpcomingFiling struct {
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name"`
	FilingType    string    `json:"filingType"`
	FiscalYear    int       `json:"fiscalYear"`
	FiscalQuarter int       `json:"fiscalQuarter,omitempty"` // 0 for 10-K
	PeriodEndDate time.Time `json:"periodEndDate"`
	EstimatedDate time.Time `json:"estimatedDate"`
	DaysUntil     int       `json:"daysUntil"`
	FiscalPeriod  string    `json:"fiscalPeriod"`
}
