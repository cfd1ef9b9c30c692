package handlers

import (
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/api"
	"github.com/stocksentry/stocksentry/internal/database"
)

// SettingsHandler serves the alert threshold and notification settings
// endpoints.
type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// SetupRoutes sets up settings routes
func (h *SettingsHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /settings/alerts", h.handleGetAlertSettings)
	mux.HandleFunc("PUT /settings/alerts", h.handleUpdateAlertSettings)
	mux.HandleFunc("GET /settings/notifications", h.handleGetNotificationSettings)
	mux.HandleFunc("PUT /settings/notifications", h.handleUpdateNotificationSettings)
}

func (h *SettingsHandler) handleGetAlertSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := database.GetOrCreateAlertSettings(h.db)
	if err != nil {
		log.Printf("SettingsHandler: failed to load alert settings: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	api.RespondData(w, http.StatusOK, settings)
}

func (h *SettingsHandler) handleUpdateAlertSettings(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateAlertSettingsRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}
	if req.LowStockThreshold.IsNegative() {
		api.RespondValidationError(w, map[string]string{"low_stock_threshold": "must not be negative"})
		return
	}

	settings := &database.AlertSettings{
		LowStockThreshold: req.LowStockThreshold,
		ExpiryWindowDays:  req.ExpiryWindowDays,
		CheckWindowDays:   req.CheckWindowDays,
	}
	if err := database.UpdateAlertSettings(h.db, settings); err != nil {
		log.Printf("SettingsHandler: failed to update alert settings: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to update settings", err)
		return
	}
	api.RespondMessage(w, http.StatusOK, settings, "Alert settings updated")
}

func (h *SettingsHandler) handleGetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := database.GetNotificationSettings(h.db)
	if err != nil {
		log.Printf("SettingsHandler: failed to load notification settings: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	settings.BotToken = maskToken(settings.BotToken)
	api.RespondData(w, http.StatusOK, settings)
}

func (h *SettingsHandler) handleUpdateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateNotificationSettingsRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := api.Validate(req); errs != nil {
		api.RespondValidationError(w, errs)
		return
	}

	current, err := database.GetNotificationSettings(h.db)
	if err != nil {
		log.Printf("SettingsHandler: failed to load notification settings: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}

	// A masked or empty token in the request keeps the stored one.
	token := req.BotToken
	if token == "" || strings.Contains(token, "****") {
		token = current.BotToken
	}
	pollSeconds := req.PollSeconds
	if pollSeconds == 0 {
		pollSeconds = current.PollSeconds
	}

	settings := &database.NotificationSettings{
		BotToken:      token,
		AlertsChannel: req.AlertsChannel,
		Enabled:       req.Enabled,
		PollSeconds:   pollSeconds,
	}
	if err := database.UpdateNotificationSettings(h.db, settings); err != nil {
		log.Printf("SettingsHandler: failed to update notification settings: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to update settings", err)
		return
	}

	settings.BotToken = maskToken(settings.BotToken)
	api.RespondMessage(w, http.StatusOK, settings, "Notification settings updated")
}

// maskToken hides all but the last four characters of a secret.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
