package finnhub

import (
	"context"
	"net/url"
	"time"
)

// NewsArticle is one company-news entry
type NewsArticle struct {
	ID       int64  `json:"id"`
	Datetime int64  `json:"datetime"` // unix seconds
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Related  string `json:"related"`
}

// PublishedAt returns the article timestamp as a time.Time
func (a *NewsArticle) PublishedAt() time.Time {
	return time.Unix(a.Datetime, 0).UTC()
}

// FetchCompanyNews returns press coverage for a symbol in [from, to]
func (c *Client) FetchCompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]NewsArticle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var articles []NewsArticle
	if err := c.getJSON(ctx, "/company-news", params, &articles); err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(articles),
	}).Debug("Fetched company news")

	return articles, nil
}
