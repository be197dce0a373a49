package edgar

import (
	"fmt"
	"time"
)

// tickerEntry is one row of the SEC company_tickers.json mapping
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// submissionsResponse is the shape of /submissions/CIK##########.json.
// The recent block is column-oriented: parallel arrays indexed together.
type submissionsResponse struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent recentFilings `json:"recent"`
	} `json:"filings"`
}

type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// FilingMetadata describes one 10-K or 10-Q found in EDGAR
type FilingMetadata struct {
	AccessionNumber string
	Form            string // "10-K" or "10-Q"
	FilingDate      time.Time
	ReportDate      *time.Time // period end; missing in rare older rows
	PrimaryDocument string
	FiscalYear      *int
	FiscalQuarter   *int // nil for 10-K
}

// parseRecentFilings extracts 10-K/10-Q rows from the column-oriented
// recent block, preserving EDGAR's most-recent-first order
func parseRecentFilings(subs *submissionsResponse, limit int) ([]FilingMetadata, error) {
	recent := subs.Filings.Recent

	n := len(recent.Form)
	if len(recent.AccessionNumber) != n || len(recent.FilingDate) != n {
		return nil, fmt.Errorf("inconsistent column lengths in submissions response")
	}

	var filings []FilingMetadata
	for i := 0; i < n && len(filings) < limit; i++ {
		form := recent.Form[i]
		if form != "10-K" && form != "10-Q" {
			continue
		}

		filingDate, err := time.Parse("2006-01-02", recent.FilingDate[i])
		if err != nil {
			// Unparseable row: skip rather than fail the whole response
			continue
		}

		meta := FilingMetadata{
			AccessionNumber: recent.AccessionNumber[i],
			Form:            form,
			FilingDate:      filingDate,
		}

		if i < len(recent.ReportDate) && recent.ReportDate[i] != "" {
			if reportDate, err := time.Parse("2006-01-02", recent.ReportDate[i]); err == nil {
				meta.ReportDate = &reportDate
			}
		}

		if i < len(recent.PrimaryDocument) {
			meta.PrimaryDocument = recent.PrimaryDocument[i]
		}

		if meta.ReportDate != nil {
			fy, fq := deriveFiscalPeriod(form, *meta.ReportDate)
			meta.FiscalYear = &fy
			meta.FiscalQuarter = fq
		}

		filings = append(filings, meta)
	}

	return filings, nil
}
