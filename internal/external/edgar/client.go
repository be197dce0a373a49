package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tenkay/backend/pkg/config"
	"github.com/tenkay/backend/pkg/logger"
)

// Client handles communication with the SEC EDGAR data API.
// SEC fair-access rules cap automated clients at 10 requests per second
// and require a User-Agent identifying the operator, so the client
// carries its own limiter rather than sharing the generic HTTP wrapper.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	baseURL    string
	userAgent  string
}

// tickersURL is the SEC-maintained ticker-to-CIK mapping file
const tickersURL = "https://www.sec.gov/files/company_tickers.json"

// NewClient creates a new EDGAR client
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	rps := cfg.SEC.RequestsPerSec
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     log,
		baseURL:    strings.TrimRight(cfg.SEC.BaseURL, "/"),
		userAgent:  cfg.SEC.UserAgent,
	}
}

// get performs a rate-limited GET with the mandatory headers
func (c *Client) get(ctx context.Context, url string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("EDGAR request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(map[string]interface{}{
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start),
	}).Debug("EDGAR request completed")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("EDGAR returned status %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode EDGAR response: %w", err)
	}

	return nil
}

// LookupCIK resolves a ticker symbol to a zero-padded 10-digit CIK
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	var entries map[string]tickerEntry
	if err := c.get(ctx, tickersURL, &entries); err != nil {
		return "", err
	}

	upper := strings.ToUpper(ticker)
	for _, e := range entries {
		if strings.ToUpper(e.Ticker) == upper {
			return fmt.Sprintf("%010d", e.CIK), nil
		}
	}

	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}

// FetchRecentFilings returns recent 10-K and 10-Q filings for a CIK,
// most recent first, up to limit
func (c *Client) FetchRecentFilings(ctx context.Context, cik string, limit int) ([]FilingMetadata, error) {
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.baseURL, cik)

	var subs submissionsResponse
	if err := c.get(ctx, url, &subs); err != nil {
		return nil, err
	}

	filings, err := parseRecentFilings(&subs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse submissions for CIK %s: %w", cik, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"cik":   cik,
		"count": len(filings),
	}).Debug("Fetched recent filings")

	return filings, nil
}

// FilingURL builds the public EDGAR viewer URL for a filing
func FilingURL(cik, accessionNumber, primaryDocument string) string {
	// Archives paths use the accession number without dashes and the
	// CIK without leading zeros
	accession := strings.ReplaceAll(accessionNumber, "-", "")
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s",
		strings.TrimLeft(cik, "0"), accession, primaryDocument)
}
