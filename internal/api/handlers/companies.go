package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/tenkay/backend/internal/companies"
	"github.com/tenkay/backend/internal/filings"
	"github.com/tenkay/backend/pkg/logger"
)

// CompanyHandler handles company and filing endpoints
type CompanyHandler struct {
	companyRepo *companies.Repository
	filingRepo  *filings.Repository
	logger      *logger.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyRepo *companies.Repository, filingRepo *filings.Repository, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyRepo: companyRepo,
		filingRepo:  filingRepo,
		logger:      log,
	}
}

// List returns all tracked companies
// GET /api/companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.companyRepo.GetEnabled(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list companies")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"count":     len(list),
		"companies": list,
	})
}

// Get returns a single company
// GET /api/companies/{ticker}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := tickerVar(r)

	company, err := h.companyRepo.GetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Company not found")
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get company")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve company")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"company": company,
	})
}

// GetFilings returns filings for a company, most recent first
// GET /api/companies/{ticker}/filings?limit=20
func (h *CompanyHandler) GetFilings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := tickerVar(r)
	limit := queryInt(r, "limit", 20)

	list, err := h.filingRepo.GetByTicker(ctx, ticker, limit)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get filings")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve filings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(list),
		"filings": list,
	})
}

// tickerVar extracts and normalizes the ticker path variable
func tickerVar(r *http.Request) string {
	return strings.ToUpper(mux.Vars(r)["ticker"])
}
