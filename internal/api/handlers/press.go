package handlers

import (
	"net/http"

	"github.com/tenkay/backend/internal/press"
	"github.com/tenkay/backend/pkg/logger"
)

// PressHandler serves press coverage per company
type PressHandler struct {
	pressRepo *press.Repository
	logger    *logger.Logger
}

// NewPressHandler creates a new press handler
func NewPressHandler(pressRepo *press.Repository, log *logger.Logger) *PressHandler {
	return &PressHandler{
		pressRepo: pressRepo,
		logger:    log,
	}
}

// GetByTicker returns recent press coverage for a company
// GET /api/companies/{ticker}/press?limit=10
func (h *PressHandler) GetByTicker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := tickerVar(r)
	limit := queryInt(r, "limit", 10)

	articles, err := h.pressRepo.GetByTicker(ctx, ticker, limit)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get press coverage")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve press coverage")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(articles),
		"articles": articles,
	})
}
