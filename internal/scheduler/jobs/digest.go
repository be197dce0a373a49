package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/tenkay/backend/internal/content"
	"github.com/tenkay/backend/internal/subscribers"
	"github.com/tenkay/backend/pkg/logger"
)

// DigestJob assembles newsletter digests: for each subscriber due by
// their frequency, find analyses published since their last email that
// match their interests, and record the deliveries. Actual sending is
// handled by the email provider consuming email_deliveries.
type DigestJob struct {
	subscriberRepo *subscribers.Repository
	contentRepo    *content.Repository
	logger         *logger.Logger
}

// NewDigestJob creates a new digest job
func NewDigestJob(
	subscriberRepo *subscribers.Repository,
	contentRepo *content.Repository,
	log *logger.Logger,
) *DigestJob {
	return &DigestJob{
		subscriberRepo: subscriberRepo,
		contentRepo:    contentRepo,
		logger:         log,
	}
}

// Name returns the job name
func (j *DigestJob) Name() string {
	return "digest"
}

// Schedule returns the cron schedule (daily at 1 PM UTC, morning in US
// timezones)
func (j *DigestJob) Schedule() string {
	return "0 0 13 * * *"
}

// Run executes the digest assembly
func (j *DigestJob) Run(ctx context.Context) error {
	now := time.Now().UTC()

	due, err := j.subscriberRepo.DueForDigest(ctx, now)
	if err != nil {
		return fmt.Errorf("load due subscribers: %w", err)
	}
	if len(due) == 0 {
		j.logger.Debug("No subscribers due for digest")
		return nil
	}

	delivered := 0
	for _, sub := range due {
		since := digestWindowStart(&sub, now)

		published, err := j.contentRepo.PublishedSince(ctx, since)
		if err != nil {
			return fmt.Errorf("load published analyses: %w", err)
		}

		matching := filterByInterest(published, sub.InterestedCompanies)
		if len(matching) == 0 {
			continue
		}

		for _, analysis := range matching {
			if err := j.recordDelivery(ctx, sub.ID, analysis.Slug); err != nil {
				j.logger.WithError(err).WithFields(map[string]interface{}{
					"subscriber": sub.ID,
					"slug":       analysis.Slug,
				}).Error("Failed to record delivery")
			}
		}
		delivered++
	}

	j.logger.WithFields(map[string]interface{}{
		"due":       len(due),
		"delivered": delivered,
	}).Info("Digest assembly completed")

	return nil
}

// digestWindowStart returns the start of the content window for a
// subscriber
func digestWindowStart(sub *subscribers.Subscriber, now time.Time) time.Time {
	if sub.LastEmailSentAt != nil {
		return *sub.LastEmailSentAt
	}

	switch sub.EmailFrequency {
	case subscribers.FrequencyWeekly:
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, 0, -1)
	}
}

// filterByInterest keeps analyses matching the subscriber's interests.
// An empty interest list means everything.
func filterByInterest(published []content.Summary, interests []string) []content.Summary {
	if len(interests) == 0 {
		return published
	}

	interested := make(map[string]bool, len(interests))
	for _, ticker := range interests {
		interested[ticker] = true
	}

	var matching []content.Summary
	for _, s := range published {
		if interested[s.Ticker] {
			matching = append(matching, s)
		}
	}
	return matching
}

// recordDelivery resolves the analysis id and logs the delivery
func (j *DigestJob) recordDelivery(ctx context.Context, subscriberID int64, slug string) error {
	analysis, err := j.contentRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return j.subscriberRepo.RecordDelivery(ctx, subscriberID, analysis.ID, "queued")
}
