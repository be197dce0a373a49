package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/tenkay/backend/internal/companies"
	"github.com/tenkay/backend/internal/external/finnhub"
	"github.com/tenkay/backend/internal/external/ir"
	"github.com/tenkay/backend/internal/press"
	"github.com/tenkay/backend/pkg/logger"
)

const (
	// newsLookback bounds the company-news query window
	newsLookback = 7 * 24 * time.Hour

	// pressRetention is how long articles are kept
	pressRetention = 365 * 24 * time.Hour
)

// PressSyncJob gathers press coverage per company from three sources:
// Finnhub company news, the company's IR feed when one is configured,
// and the IR page itself as a scraping fallback.
type PressSyncJob struct {
	companyRepo   *companies.Repository
	pressRepo     *press.Repository
	finnhubClient *finnhub.Client
	feedReader    *press.FeedReader
	irScraper     *ir.Scraper
	logger        *logger.Logger
}

// NewPressSyncJob creates a new press sync job
func NewPressSyncJob(
	companyRepo *companies.Repository,
	pressRepo *press.Repository,
	finnhubClient *finnhub.Client,
	feedReader *press.FeedReader,
	irScraper *ir.Scraper,
	log *logger.Logger,
) *PressSyncJob {
	return &PressSyncJob{
		companyRepo:   companyRepo,
		pressRepo:     pressRepo,
		finnhubClient: finnhubClient,
		feedReader:    feedReader,
		irScraper:     irScraper,
		logger:        log,
	}
}

// Name returns the job name
func (j *PressSyncJob) Name() string {
	return "press_sync"
}

// Schedule returns the cron schedule (every 6 hours)
func (j *PressSyncJob) Schedule() string {
	return "0 0 */6 * * *"
}

// Run executes the press sync
func (j *PressSyncJob) Run(ctx context.Context) error {
	companyList, err := j.companyRepo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	since := time.Now().Add(-newsLookback)

	for _, company := range companyList {
		saved := 0
		saved += j.syncCompanyNews(ctx, &company, since)
		saved += j.syncIRSources(ctx, &company, since)

		if saved > 0 {
			j.logger.WithFields(map[string]interface{}{
				"ticker": company.Ticker,
				"saved":  saved,
			}).Info("Press coverage updated")
		}
	}

	if _, err := j.pressRepo.DeleteOlderThan(ctx, time.Now().Add(-pressRetention)); err != nil {
		j.logger.WithError(err).Warn("Failed to prune press articles")
	}

	return nil
}

// syncCompanyNews stores recent Finnhub company news
func (j *PressSyncJob) syncCompanyNews(ctx context.Context, company *companies.Company, since time.Time) int {
	articles, err := j.finnhubClient.FetchCompanyNews(ctx, company.Ticker, since, time.Now())
	if err != nil {
		j.logger.WithError(err).WithField("ticker", company.Ticker).Warn("Company news fetch failed")
		return 0
	}

	saved := 0
	for _, a := range articles {
		publishedAt := a.PublishedAt()
		article := &press.Article{
			CompanyID:   company.ID,
			Title:       a.Headline,
			URL:         a.URL,
			Source:      a.Source,
			Summary:     a.Summary,
			PublishedAt: &publishedAt,
		}
		if err := j.pressRepo.Save(ctx, article); err != nil {
			j.logger.WithError(err).WithField("url", a.URL).Warn("Failed to save article")
			continue
		}
		saved++
	}
	return saved
}

// syncIRSources stores press releases from the company's own IR feed,
// falling back to scraping the IR page when no feed is configured
func (j *PressSyncJob) syncIRSources(ctx context.Context, company *companies.Company, since time.Time) int {
	if company.PressFeedURL != "" {
		articles, err := j.feedReader.Fetch(ctx, company.PressFeedURL, company.ID, since)
		if err != nil {
			j.logger.WithError(err).WithField("ticker", company.Ticker).Warn("IR feed fetch failed")
			return 0
		}

		saved := 0
		for i := range articles {
			if err := j.pressRepo.Save(ctx, &articles[i]); err != nil {
				j.logger.WithError(err).WithField("url", articles[i].URL).Warn("Failed to save article")
				continue
			}
			saved++
		}
		return saved
	}

	if company.IRPageURL == "" {
		return 0
	}

	docs, err := j.irScraper.ScrapeDocuments(ctx, company.IRPageURL)
	if err != nil {
		j.logger.WithError(err).WithField("ticker", company.Ticker).Warn("IR page scrape failed")
		return 0
	}

	saved := 0
	for _, doc := range docs {
		// Scraped listings rarely carry dates; press releases are the
		// only type worth storing undated
		if doc.DocType != ir.DocPressRelease {
			continue
		}
		article := &press.Article{
			CompanyID: company.ID,
			Title:     doc.Title,
			URL:       doc.URL,
			Source:    "ir_page",
		}
		if err := j.pressRepo.Save(ctx, article); err != nil {
			j.logger.WithError(err).WithField("url", doc.URL).Warn("Failed to save article")
			continue
		}
		saved++
	}
	return saved
}
