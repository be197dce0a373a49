package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/tenkay/backend/internal/market"
	"github.com/tenkay/backend/pkg/logger"
	"github.com/tenkay/backend/pkg/redis"
)

// MarketHandler serves market data snapshots
type MarketHandler struct {
	marketRepo *market.Repository
	cache      *redis.Cache
	logger     *logger.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(marketRepo *market.Repository, cache *redis.Cache, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		marketRepo: marketRepo,
		cache:      cache,
		logger:     log,
	}
}

// GetByTicker returns the latest market snapshot for a company
// GET /api/companies/{ticker}/market
func (h *MarketHandler) GetByTicker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := tickerVar(r)

	cacheKey := redis.MarketDataKey(ticker)
	var cached market.Snapshot
	if hit, _ := h.cache.Get(ctx, cacheKey, &cached); hit {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"market":  cached,
		})
		return
	}

	snapshot, err := h.marketRepo.GetLatestByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "No market data for company")
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get market data")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve market data")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, snapshot, redis.TTLShort); err != nil {
		h.logger.WithError(err).Warn("Failed to cache market data")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"market":  snapshot,
	})
}
