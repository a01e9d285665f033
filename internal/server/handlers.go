package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"session-router/internal/common/logging"
	"session-router/internal/middleware"
)

// Handlers serves the reporting payloads built by the middleware handler.
type Handlers struct {
	router *middleware.Handler
	logger logging.Logger
}

// NewHandlers creates the handler set for the status surface. A nil logger
// falls back to the global logger.
func NewHandlers(router *middleware.Handler, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Handlers{router: router, logger: logger}
}

// Routes builds the mux router for the status surface.
func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", h.GetStatus).Methods("GET")
	api.HandleFunc("/rules", h.GetRules).Methods("GET")
	api.HandleFunc("/stats", h.GetStats).Methods("GET")

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	return r
}

// GetStatus returns the status summary payload
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, func() interface{} { return h.router.Status() })
}

// GetRules returns the rule listing payload
func (h *Handlers) GetRules(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, func() interface{} { return h.router.Rules() })
}

// GetStats returns the statistics payload
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, func() interface{} { return h.router.Statistics() })
}

// HealthCheck reports whether the router is running
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "stopped"
	if h.router.Running() {
		status = "ok"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// writeReport encodes a reporting payload as JSON. An unexpected fault
// while building the payload is caught here and reported as a generic
// internal-error payload; it must never take the process down.
func (h *Handlers) writeReport(w http.ResponseWriter, build func() interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("report build failed", nil, logging.Any("panic", rec))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
		}
	}()

	payload := build()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
