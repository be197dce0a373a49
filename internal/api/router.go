package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tenkay/backend/internal/api/handlers"
	"github.com/tenkay/backend/pkg/logger"
)

// Handlers groups the dependencies of the router
type Handlers struct {
	Upcoming    *handlers.UpcomingHandler
	Companies   *handlers.CompanyHandler
	Analyses    *handlers.AnalysisHandler
	Press       *handlers.PressHandler
	Market      *handlers.MarketHandler
	Subscribers *handlers.SubscriberHandler
	Stream      *handlers.StreamHandler
}

// NewRouter creates and configures the HTTP router
func NewRouter(h *Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Upcoming filings feed
	api.HandleFunc("/upcoming-filings", h.Upcoming.GetUpcoming).Methods("GET")

	// Companies
	api.HandleFunc("/companies", h.Companies.List).Methods("GET")
	api.HandleFunc("/companies/{ticker}", h.Companies.Get).Methods("GET")
	api.HandleFunc("/companies/{ticker}/filings", h.Companies.GetFilings).Methods("GET")
	api.HandleFunc("/companies/{ticker}/press", h.Press.GetByTicker).Methods("GET")
	api.HandleFunc("/companies/{ticker}/market", h.Market.GetByTicker).Methods("GET")

	// Published analyses
	api.HandleFunc("/analyses", h.Analyses.List).Methods("GET")
	api.HandleFunc("/analyses/{slug}", h.Analyses.Get).Methods("GET")

	// Subscriber preferences
	api.HandleFunc("/me/preferences", h.Subscribers.GetPreferences).Methods("GET")
	api.HandleFunc("/me/preferences", h.Subscribers.UpdatePreferences).Methods("PUT")

	// Publish event stream
	api.HandleFunc("/stream", h.Stream.Stream).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "tenkay-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]interface{}{
						"success": false,
						"error":   "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
