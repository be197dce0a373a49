package handlers

import (
	"net/http"
	"time"

	"github.com/tenkay/backend/internal/earnings"
	"github.com/tenkay/backend/internal/filings"
	"github.com/tenkay/backend/pkg/config"
	"github.com/tenkay/backend/pkg/logger"
	"github.com/tenkay/backend/pkg/redis"
)

// UpcomingHandler serves the upcoming-filings feed: scheduled earnings
// where the company has announced a date, estimated filing dates
// everywhere else.
type UpcomingHandler struct {
	filingRepo   *filings.Repository
	earningsRepo *earnings.Repository
	cache        *redis.Cache
	config       *config.Config
	logger       *logger.Logger
}

// NewUpcomingHandler creates a new upcoming-filings handler
func NewUpcomingHandler(
	filingRepo *filings.Repository,
	earningsRepo *earnings.Repository,
	cache *redis.Cache,
	cfg *config.Config,
	log *logger.Logger,
) *UpcomingHandler {
	return &UpcomingHandler{
		filingRepo:   filingRepo,
		earningsRepo: earningsRepo,
		cache:        cache,
		config:       cfg,
		logger:       log,
	}
}

// UpcomingResponse is the wire format of the upcoming-filings feed
type UpcomingResponse struct {
	Success   bool                   `json:"success"`
	Count     int                    `json:"count"`
	DaysAhead int                    `json:"daysAhead"`
	Filings   []filings.MergedFiling `json:"filings"`
	Metadata  filings.MergeStats     `json:"metadata"`
}

// GetUpcoming returns upcoming filings within the horizon
// GET /api/upcoming-filings?days=60&limit=10
func (h *UpcomingHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := queryInt(r, "days", h.config.Upcoming.DefaultDaysAhead)
	limit := queryInt(r, "limit", h.config.Upcoming.DefaultLimit)

	cacheKey := redis.UpcomingFilingsKey(days, limit)
	var cached UpcomingResponse
	if hit, _ := h.cache.Get(ctx, cacheKey, &cached); hit {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	now := time.Now().UTC()

	latest, err := h.filingRepo.GetLatestPerCompany(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest filings")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve upcoming filings")
		return
	}

	estimated := filings.EstimateUpcoming(latest, now, days)

	scheduled, err := h.earningsRepo.GetUpcomingWindow(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		// Scheduled dates improve the feed but the estimate alone is
		// still a valid answer
		h.logger.WithError(err).Warn("Failed to load scheduled earnings")
		scheduled = nil
	}

	merged, stats := filings.MergeScheduled(estimated, scheduled, now, limit)

	response := UpcomingResponse{
		Success:   true,
		Count:     len(merged),
		DaysAhead: days,
		Filings:   merged,
		Metadata:  stats,
	}

	if err := h.cache.Set(ctx, cacheKey, response, redis.TTLMedium); err != nil {
		h.logger.WithError(err).Warn("Failed to cache upcoming filings")
	}

	respondJSON(w, http.StatusOK, response)
}
