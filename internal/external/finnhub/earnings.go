package finnhub

import (
	"context"
	"net/url"
	"time"
)

// EarningsEvent is one entry of the Finnhub earnings calendar
type EarningsEvent struct {
	Symbol          string   `json:"symbol"`
	Date            string   `json:"date"` // YYYY-MM-DD
	Hour            string   `json:"hour"` // "bmo" or "amc"
	Year            int      `json:"year"`
	Quarter         int      `json:"quarter"`
	EPSEstimate     *float64 `json:"epsEstimate"`
	EPSActual       *float64 `json:"epsActual"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	RevenueActual   *float64 `json:"revenueActual"`
}

// ParseDate returns the event date as a time.Time
func (e *EarningsEvent) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", e.Date)
}

type earningsCalendarResponse struct {
	EarningsCalendar []EarningsEvent `json:"earningsCalendar"`
}

// FetchEarningsCalendar returns company-announced earnings events in
// [from, to]. Pass an empty symbol for all companies.
func (c *Client) FetchEarningsCalendar(ctx context.Context, from, to time.Time, symbol string) ([]EarningsEvent, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	if symbol != "" {
		params.Set("symbol", symbol)
	}

	var resp earningsCalendarResponse
	if err := c.getJSON(ctx, "/calendar/earnings", params, &resp); err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
		"count": len(resp.EarningsCalendar),
	}).Debug("Fetched earnings calendar")

	return resp.EarningsCalendar, nil
}
