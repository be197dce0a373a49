package finnhub

import (
	"context"
	"fmt"
	"net/url"
)

// Quote is a real-time quote for a symbol
type Quote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// FetchQuote returns the current quote for a symbol
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var quote Quote
	if err := c.getJSON(ctx, "/quote", params, &quote); err != nil {
		return nil, err
	}

	// Finnhub returns zeros for unknown symbols rather than an error
	if quote.Current == 0 && quote.Timestamp == 0 {
		return nil, fmt.Errorf("no quote data for symbol %s", symbol)
	}

	return &quote, nil
}
