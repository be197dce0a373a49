package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/tenkay/backend/internal/companies"
	"github.com/tenkay/backend/internal/earnings"
	"github.com/tenkay/backend/internal/events"
	"github.com/tenkay/backend/internal/external/finnhub"
	"github.com/tenkay/backend/pkg/logger"
)

// calendarWindowDays is how far ahead the calendar is fetched. Matches
// the longest horizon the upcoming-filings endpoint serves by default.
const calendarWindowDays = 90

// EarningsCalendarJob refreshes scheduled earnings dates from the
// Finnhub calendar. Company-announced dates override the heuristic
// estimates in the upcoming-filings feed.
type EarningsCalendarJob struct {
	companyRepo   *companies.Repository
	earningsRepo  *earnings.Repository
	finnhubClient *finnhub.Client
	hub           *events.Hub
	logger        *logger.Logger
}

// NewEarningsCalendarJob creates a new earnings calendar job
func NewEarningsCalendarJob(
	companyRepo *companies.Repository,
	earningsRepo *earnings.Repository,
	finnhubClient *finnhub.Client,
	hub *events.Hub,
	log *logger.Logger,
) *EarningsCalendarJob {
	return &EarningsCalendarJob{
		companyRepo:   companyRepo,
		earningsRepo:  earningsRepo,
		finnhubClient: finnhubClient,
		hub:           hub,
		logger:        log,
	}
}

// Name returns the job name
func (j *EarningsCalendarJob) Name() string {
	return "earnings_calendar"
}

// Schedule returns the cron schedule (daily at 5 AM)
func (j *EarningsCalendarJob) Schedule() string {
	return "0 0 5 * * *"
}

// Run executes the calendar refresh
func (j *EarningsCalendarJob) Run(ctx context.Context) error {
	companyList, err := j.companyRepo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	byTicker := make(map[string]*companies.Company, len(companyList))
	for i := range companyList {
		byTicker[companyList[i].Ticker] = &companyList[i]
	}

	now := time.Now().UTC()
	eventsList, err := j.finnhubClient.FetchEarningsCalendar(ctx, now, now.AddDate(0, 0, calendarWindowDays), "")
	if err != nil {
		return fmt.Errorf("fetch earnings calendar: %w", err)
	}

	saved := 0
	for _, e := range eventsList {
		company, tracked := byTicker[e.Symbol]
		if !tracked {
			continue
		}

		date, err := e.ParseDate()
		if err != nil {
			j.logger.WithFields(map[string]interface{}{
				"symbol": e.Symbol,
				"date":   e.Date,
			}).Warn("Skipping earnings event with bad date")
			continue
		}

		event := &earnings.Event{
			CompanyID:       company.ID,
			Ticker:          e.Symbol,
			EarningsDate:    date,
			EarningsTime:    e.Hour,
			FiscalYear:      e.Year,
			FiscalQuarter:   e.Quarter,
			EPSEstimate:     e.EPSEstimate,
			RevenueEstimate: e.RevenueEstimate,
			Source:          "finnhub",
		}

		if err := j.earningsRepo.Save(ctx, event); err != nil {
			return fmt.Errorf("save earnings event for %s: %w", e.Symbol, err)
		}
		saved++
	}

	// Prune events older than a quarter; they can no longer suppress
	// any estimate
	if _, err := j.earningsRepo.DeletePast(ctx, now.AddDate(0, -3, 0)); err != nil {
		j.logger.WithError(err).Warn("Failed to prune past earnings events")
	}

	j.hub.Publish(events.Event{
		Kind:    events.KindEarningsRefreshed,
		Payload: map[string]interface{}{"saved": saved},
	})

	j.logger.WithFields(map[string]interface{}{
		"fetched": len(eventsList),
		"saved":   saved,
	}).Info("Earnings calendar refreshed")

	return nil
}
