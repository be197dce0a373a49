package edgar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSubmissions = `{
	"cik": "320193",
	"name": "Apple Inc.",
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-24-000123", "0000320193-24-000081", "0000320193-24-000069", "0000320193-23-000106"],
			"filingDate": ["2024-11-01", "2024-08-02", "2024-05-03", "2023-11-03"],
			"reportDate": ["2024-09-28", "2024-06-29", "2024-03-30", "2023-09-30"],
			"form": ["10-K", "10-Q", "10-Q", "10-K"],
			"primaryDocument": ["aapl-20240928.htm", "aapl-20240629.htm", "aapl-20240330.htm", "aapl-20230930.htm"]
		}
	}
}`

func TestParseRecentFilings(t *testing.T) {
	var subs submissionsResponse
	require.NoError(t, json.Unmarshal([]byte(sampleSubmissions), &subs))

	filings, err := parseRecentFilings(&subs, 10)
	require.NoError(t, err)
	require.Len(t, filings, 4)

	first := filings[0]
	assert.Equal(t, "10-K", first.Form)
	assert.Equal(t, "0000320193-24-000123", first.AccessionNumber)
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), first.FilingDate)
	require.NotNil(t, first.ReportDate)
	assert.Equal(t, time.Date(2024, time.September, 28, 0, 0, 0, 0, time.UTC), *first.ReportDate)
	require.NotNil(t, first.FiscalYear)
	assert.Equal(t, 2024, *first.FiscalYear)
	assert.Nil(t, first.FiscalQuarter)

	second := filings[1]
	assert.Equal(t, "10-Q", second.Form)
	require.NotNil(t, second.FiscalQuarter)
	assert.Equal(t, 2, *second.FiscalQuarter)
}

func TestParseRecentFilings_Limit(t *testing.T) {
	var subs submissionsResponse
	require.NoError(t, json.Unmarshal([]byte(sampleSubmissions), &subs))

	filings, err := parseRecentFilings(&subs, 2)
	require.NoError(t, err)
	assert.Len(t, filings, 2)
}

func TestParseRecentFilings_FiltersOtherForms(t *testing.T) {
	raw := `{
		"filings": {
			"recent": {
				"accessionNumber": ["a", "b", "c"],
				"filingDate": ["2024-01-10", "2024-02-10", "2024-03-10"],
				"reportDate": ["", "2023-12-31", ""],
				"form": ["8-K", "10-K", "4"],
				"primaryDocument": ["x.htm", "y.htm", "z.htm"]
			}
		}
	}`

	var subs submissionsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &subs))

	filings, err := parseRecentFilings(&subs, 10)
	require.NoError(t, err)
	require.Len(t, filings, 1)
	assert.Equal(t, "10-K", filings[0].Form)
}

func TestParseRecentFilings_InconsistentColumns(t *testing.T) {
	raw := `{
		"filings": {
			"recent": {
				"accessionNumber": ["a"],
				"filingDate": ["2024-01-10", "2024-02-10"],
				"form": ["10-K", "10-Q"]
			}
		}
	}`

	var subs submissionsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &subs))

	_, err := parseRecentFilings(&subs, 10)
	assert.Error(t, err)
}

func TestDeriveFiscalPeriod(t *testing.T) {
	tests := []struct {
		name        string
		form        string
		reportDate  time.Time
		wantYear    int
		wantQuarter int // 0 means nil
	}{
		{"annual", "10-K", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 2024, 0},
		{"annual june fye", "10-K", time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), 2024, 0},
		{"q1", "10-Q", time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), 2024, 1},
		{"q2", "10-Q", time.Date(2024, time.June, 29, 0, 0, 0, 0, time.UTC), 2024, 2},
		{"q3", "10-Q", time.Date(2024, time.September, 28, 0, 0, 0, 0, time.UTC), 2024, 3},
		{"q4", "10-Q", time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC), 2024, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, quarter := deriveFiscalPeriod(tt.form, tt.reportDate)
			assert.Equal(t, tt.wantYear, year)
			if tt.wantQuarter == 0 {
				assert.Nil(t, quarter)
			} else {
				require.NotNil(t, quarter)
				assert.Equal(t, tt.wantQuarter, *quarter)
			}
		})
	}
}

func TestFilingURL(t *testing.T) {
	url := FilingURL("0000320193", "0000320193-24-000123", "aapl-20240928.htm")
	assert.Equal(t,
		"https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm",
		url)
}
