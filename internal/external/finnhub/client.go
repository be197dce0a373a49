package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tenkay/backend/pkg/config"
	"github.com/tenkay/backend/pkg/httputil"
	"github.com/tenkay/backend/pkg/logger"
)

// Client handles communication with the Finnhub API: earnings calendar,
// quotes and company news. The free tier allows 60 calls per minute;
// the shared Redis limiter keeps API and scheduler workers inside that
// quota together.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new Finnhub client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.Finnhub.APIKey,
		baseURL:    strings.TrimRight(cfg.Finnhub.BaseURL, "/"),
	}
}

// buildURL assembles an endpoint URL with the token attached
func (c *Client) buildURL(endpoint string, params url.Values) string {
	params.Set("token", c.apiKey)
	return fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())
}

// getJSON performs a GET and decodes the response
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, dest interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("finnhub API key not configured")
	}

	if err := c.httpClient.GetJSON(ctx, c.buildURL(endpoint, params), dest); err != nil {
		return fmt.Errorf("finnhub %s: %w", endpoint, err)
	}
	return nil
}
