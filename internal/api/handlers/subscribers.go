package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tenkay/backend/internal/subscribers"
	"github.com/tenkay/backend/pkg/logger"
)

// Identity headers set by the fronting auth proxy. Requests reaching
// these handlers are already authenticated; the backend only consumes
// the subject id.
const (
	headerAuthSubject = "X-Auth-Subject"
	headerAuthEmail   = "X-Auth-Email"
)

// SubscriberHandler handles newsletter preference endpoints
type SubscriberHandler struct {
	subscriberRepo *subscribers.Repository
	logger         *logger.Logger
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(subscriberRepo *subscribers.Repository, log *logger.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberRepo: subscriberRepo,
		logger:         log,
	}
}

// GetPreferences returns the calling subscriber, registering them on
// first sight
// GET /api/me/preferences
func (h *SubscriberHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject := r.Header.Get(headerAuthSubject)
	if subject == "" {
		respondError(w, http.StatusUnauthorized, "Missing auth subject")
		return
	}

	subscriber, err := h.subscriberRepo.Upsert(ctx, subject, r.Header.Get(headerAuthEmail))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load subscriber")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve preferences")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"subscriber": subscriber,
	})
}

// UpdatePreferences stores the calling subscriber's preferences
// PUT /api/me/preferences
func (h *SubscriberHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject := r.Header.Get(headerAuthSubject)
	if subject == "" {
		respondError(w, http.StatusUnauthorized, "Missing auth subject")
		return
	}

	var prefs subscribers.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := prefs.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.subscriberRepo.UpdatePreferences(ctx, subject, &prefs); err != nil {
		h.logger.WithError(err).WithField("subject", subject).Error("Failed to update preferences")
		respondError(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"preferences": prefs,
	})
}
