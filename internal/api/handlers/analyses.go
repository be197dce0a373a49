package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/tenkay/backend/internal/content"
	"github.com/tenkay/backend/pkg/logger"
	"github.com/tenkay/backend/pkg/redis"
)

// AnalysisHandler serves published filing analyses
type AnalysisHandler struct {
	contentRepo *content.Repository
	cache       *redis.Cache
	logger      *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(contentRepo *content.Repository, cache *redis.Cache, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		contentRepo: contentRepo,
		cache:       cache,
		logger:      log,
	}
}

// List returns recent published analyses
// GET /api/analyses?ticker=AAPL&limit=20
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := strings.ToUpper(r.URL.Query().Get("ticker"))
	limit := queryInt(r, "limit", 20)

	list, err := h.contentRepo.ListPublished(ctx, ticker, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list analyses")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve analyses")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(list),
		"analyses": list,
	})
}

// Get returns the current published analysis for a slug
// GET /api/analyses/{slug}
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	cacheKey := redis.AnalysisKey(slug)
	var cached content.Analysis
	if hit, _ := h.cache.Get(ctx, cacheKey, &cached); hit {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"analysis": cached,
		})
		return
	}

	analysis, err := h.contentRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		h.logger.WithError(err).WithField("slug", slug).Error("Failed to get analysis")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve analysis")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, analysis, redis.TTLLong); err != nil {
		h.logger.WithError(err).Warn("Failed to cache analysis")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": analysis,
	})
}
