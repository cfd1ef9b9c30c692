package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/api"
	"github.com/stocksentry/stocksentry/internal/middleware"
	"github.com/stocksentry/stocksentry/internal/services"
)

// AlertHandler serves the alert aggregation and resolution endpoints.
type AlertHandler struct {
	alertService      *services.AlertService
	resolutionService *services.ResolutionService
}

func NewAlertHandler(alertService *services.AlertService, resolutionService *services.ResolutionService) *AlertHandler {
	return &AlertHandler{
		alertService:      alertService,
		resolutionService: resolutionService,
	}
}

// SetupRoutes sets up alert routes
func (h *AlertHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /alerts", h.handleListAlerts)
	mux.HandleFunc("GET /alerts/stats", h.handleAlertStats)
	mux.HandleFunc("POST /alerts/resolve", h.handleResolveAlert)
	mux.HandleFunc("GET /alerts/resolutions", h.handleListResolutions)
}

// handleListAlerts handles GET /alerts
func (h *AlertHandler) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	list, err := h.alertService.Aggregate()
	if err != nil {
		respondAlertError(w, err)
		return
	}
	api.RespondData(w, http.StatusOK, list)
}

// handleAlertStats handles GET /alerts/stats
func (h *AlertHandler) handleAlertStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.alertService.Stats()
	if err != nil {
		respondAlertError(w, err)
		return
	}
	api.RespondData(w, http.StatusOK, stats)
}

// handleResolveAlert handles POST /alerts/resolve
func (h *AlertHandler) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	var req api.ResolveAlertRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	resolvedBy := req.ResolvedBy
	if user := middleware.GetUserFromContext(r.Context()); user != "" {
		resolvedBy = user
	}

	entry, err := h.resolutionService.Resolve(req.AlertID, req.AlertType, resolvedBy, req.Resolution)
	if err != nil {
		respondAlertError(w, err)
		return
	}
	api.RespondMessage(w, http.StatusCreated, entry, "Alert resolved")
}

// handleListResolutions handles GET /alerts/resolutions
func (h *AlertHandler) handleListResolutions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.resolutionService.ListResolutions()
	if err != nil {
		respondAlertError(w, err)
		return
	}
	api.RespondData(w, http.StatusOK, entries)
}

// respondAlertError maps the alert error taxonomy onto HTTP statuses.
// Validation problems are the caller's fault; source and consistency
// failures are ours and get logged.
func respondAlertError(w http.ResponseWriter, err error) {
	var valErr *alerts.ValidationError
	if errors.As(err, &valErr) {
		api.RespondError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	var srcErr *alerts.DataSourceError
	if errors.As(err, &srcErr) {
		log.Printf("AlertHandler: data source failure: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to read alert source", err)
		return
	}

	var consErr *alerts.ConsistencyError
	if errors.As(err, &consErr) {
		log.Printf("AlertHandler: consistency failure: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Alert data is inconsistent", err)
		return
	}

	log.Printf("AlertHandler: unexpected error: %v", err)
	api.RespondError(w, http.StatusInternalServerError, "Internal error", err)
}
