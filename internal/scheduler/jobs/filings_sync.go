package jobs

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tenkay/backend/internal/companies"
	"github.com/tenkay/backend/internal/events"
	"github.com/tenkay/backend/internal/external/edgar"
	"github.com/tenkay/backend/internal/filings"
	"github.com/tenkay/backend/pkg/logger"
)

// filingsPerCompany is how many recent filings are pulled per sync
const filingsPerCompany = 8

// FilingsSyncJob syncs recent 10-K/10-Q filings from EDGAR for every
// enabled company
type FilingsSyncJob struct {
	companyRepo *companies.Repository
	filingRepo  *filings.Repository
	edgarClient *edgar.Client
	hub         *events.Hub
	logger      *logger.Logger

	// Concurrent companies; the EDGAR limiter still caps requests per
	// second across all of them
	workers int
}

// NewFilingsSyncJob creates a new filings sync job
func NewFilingsSyncJob(
	companyRepo *companies.Repository,
	filingRepo *filings.Repository,
	edgarClient *edgar.Client,
	hub *events.Hub,
	log *logger.Logger,
) *FilingsSyncJob {
	return &FilingsSyncJob{
		companyRepo: companyRepo,
		filingRepo:  filingRepo,
		edgarClient: edgarClient,
		hub:         hub,
		logger:      log,
		workers:     5,
	}
}

// Name returns the job name
func (j *FilingsSyncJob) Name() string {
	return "filings_sync"
}

// Schedule returns the cron schedule (daily at 6 AM, after EDGAR has
// processed the previous day's filings)
func (j *FilingsSyncJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run executes the filings sync
func (j *FilingsSyncJob) Run(ctx context.Context) error {
	companyList, err := j.companyRepo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	j.logger.WithField("companies", len(companyList)).Info("Starting filings sync")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)

	for _, company := range companyList {
		company := company
		g.Go(func() error {
			if err := j.syncCompany(gctx, &company); err != nil {
				// One company failing should not abort the whole sync
				j.logger.WithError(err).WithField("ticker", company.Ticker).Error("Company sync failed")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	j.logger.Info("Filings sync completed")
	return nil
}

// syncCompany pulls recent filings for one company and upserts them
func (j *FilingsSyncJob) syncCompany(ctx context.Context, company *companies.Company) error {
	cik := company.CIK
	if cik == "" {
		resolved, err := j.edgarClient.LookupCIK(ctx, company.Ticker)
		if err != nil {
			return fmt.Errorf("lookup CIK: %w", err)
		}
		cik = resolved

		company.CIK = cik
		if err := j.companyRepo.Save(ctx, company); err != nil {
			j.logger.WithError(err).WithField("ticker", company.Ticker).Warn("Failed to store resolved CIK")
		}
	}

	recent, err := j.edgarClient.FetchRecentFilings(ctx, cik, filingsPerCompany)
	if err != nil {
		return fmt.Errorf("fetch filings: %w", err)
	}

	newCount := 0
	for _, meta := range recent {
		filing := &filings.Filing{
			CompanyID:       company.ID,
			FilingType:      meta.Form,
			AccessionNumber: meta.AccessionNumber,
			FilingDate:      meta.FilingDate,
			PeriodEndDate:   meta.ReportDate,
			FiscalYear:      meta.FiscalYear,
			FiscalQuarter:   meta.FiscalQuarter,
			EdgarURL:        edgar.FilingURL(cik, meta.AccessionNumber, meta.PrimaryDocument),
			Status:          "discovered",
		}

		inserted, err := j.filingRepo.Save(ctx, filing)
		if err != nil {
			return fmt.Errorf("save filing %s: %w", meta.AccessionNumber, err)
		}

		if inserted {
			newCount++
			j.hub.Publish(events.Event{
				Kind:   events.KindFilingDetected,
				Ticker: company.Ticker,
				Payload: map[string]interface{}{
					"filingType":      meta.Form,
					"accessionNumber": meta.AccessionNumber,
					"filingDate":      meta.FilingDate.Format("2006-01-02"),
				},
			})
		}
	}

	if newCount > 0 {
		j.logger.WithFields(map[string]interface{}{
			"ticker": company.Ticker,
			"new":    newCount,
		}).Info("Discovered new filings")
	}

	return nil
}
