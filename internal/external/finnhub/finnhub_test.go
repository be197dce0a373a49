package finnhub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarningsCalendarDecoding(t *testing.T) {
	raw := `{
		"earningsCalendar": [
			{
				"date": "2025-01-30",
				"epsActual": null,
				"epsEstimate": 2.35,
				"hour": "amc",
				"quarter": 1,
				"revenueActual": null,
				"revenueEstimate": 124520000000,
				"symbol": "AAPL",
				"year": 2025
			},
			{
				"date": "2025-02-04",
				"epsEstimate": null,
				"hour": "bmo",
				"quarter": 4,
				"symbol": "MRK",
				"year": 2024
			}
		]
	}`

	var resp earningsCalendarResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.Len(t, resp.EarningsCalendar, 2)

	first := resp.EarningsCalendar[0]
	assert.Equal(t, "AAPL", first.Symbol)
	assert.Equal(t, "amc", first.Hour)
	assert.Equal(t, 1, first.Quarter)
	assert.Equal(t, 2025, first.Year)
	require.NotNil(t, first.EPSEstimate)
	assert.Equal(t, 2.35, *first.EPSEstimate)
	assert.Nil(t, first.EPSActual)

	date, err := first.ParseDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC), date)

	second := resp.EarningsCalendar[1]
	assert.Nil(t, second.EPSEstimate)
	assert.Equal(t, 4, second.Quarter)
}

func TestQuoteDecoding(t *testing.T) {
	raw := `{"c": 227.55, "d": -1.23, "dp": -0.54, "h": 229.9, "l": 226.1, "o": 228.5, "pc": 228.78, "t": 1730481600}`

	var quote Quote
	require.NoError(t, json.Unmarshal([]byte(raw), &quote))

	assert.Equal(t, 227.55, quote.Current)
	assert.Equal(t, -1.23, quote.Change)
	assert.Equal(t, 228.78, quote.PrevClose)
	assert.Equal(t, int64(1730481600), quote.Timestamp)
}

func TestNewsArticlePublishedAt(t *testing.T) {
	a := NewsArticle{Datetime: 1730481600}
	assert.Equal(t, time.Date(2024, time.November, 1, 17, 20, 0, 0, time.UTC), a.PublishedAt())
}
