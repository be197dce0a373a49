package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/tenkay/backend/internal/companies"
	"github.com/tenkay/backend/internal/external/finnhub"
	"github.com/tenkay/backend/internal/market"
	"github.com/tenkay/backend/pkg/logger"
)

// marketRetention is how long snapshots are kept
const marketRetention = 90 * 24 * time.Hour

// MarketDataJob records quote snapshots for enabled companies
type MarketDataJob struct {
	companyRepo   *companies.Repository
	marketRepo    *market.Repository
	finnhubClient *finnhub.Client
	logger        *logger.Logger
}

// NewMarketDataJob creates a new market data job
func NewMarketDataJob(
	companyRepo *companies.Repository,
	marketRepo *market.Repository,
	finnhubClient *finnhub.Client,
	log *logger.Logger,
) *MarketDataJob {
	return &MarketDataJob{
		companyRepo:   companyRepo,
		marketRepo:    marketRepo,
		finnhubClient: finnhubClient,
		logger:        log,
	}
}

// Name returns the job name
func (j *MarketDataJob) Name() string {
	return "market_data"
}

// Schedule returns the cron schedule (hourly during US trading hours,
// expressed in UTC)
func (j *MarketDataJob) Schedule() string {
	return "0 30 14-21 * * MON-FRI"
}

// Run executes the quote collection
func (j *MarketDataJob) Run(ctx context.Context) error {
	companyList, err := j.companyRepo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	// Sequential on purpose: the shared limiter spaces Finnhub calls
	// and the set is small
	saved := 0
	for _, company := range companyList {
		quote, err := j.finnhubClient.FetchQuote(ctx, company.Ticker)
		if err != nil {
			j.logger.WithError(err).WithField("ticker", company.Ticker).Warn("Quote fetch failed")
			continue
		}

		snapshot := &market.Snapshot{
			CompanyID:     company.ID,
			Price:         quote.Current,
			Change:        quote.Change,
			ChangePercent: quote.ChangePercent,
			High:          quote.High,
			Low:           quote.Low,
			Open:          quote.Open,
			PrevClose:     quote.PrevClose,
		}

		if err := j.marketRepo.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save snapshot for %s: %w", company.Ticker, err)
		}
		saved++
	}

	if _, err := j.marketRepo.DeleteOlderThan(ctx, time.Now().Add(-marketRetention)); err != nil {
		j.logger.WithError(err).Warn("Failed to prune market data")
	}

	j.logger.WithFields(map[string]interface{}{
		"companies": len(companyList),
		"saved":     saved,
	}).Info("Market data collected")

	return nil
}
