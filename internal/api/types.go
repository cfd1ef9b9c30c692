package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request bodies for the HTTP API. Validation tags are enforced through
// Validate before any handler logic runs.

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResolveAlertRequest struct {
	AlertID    string `json:"alert_id" validate:"required"`
	AlertType  string `json:"alert_type"`
	ResolvedBy string `json:"resolved_by" validate:"required,max=100"`
	Resolution string `json:"resolution" validate:"max=1000"`
}

type CreateProductRequest struct {
	SKU  string `json:"sku" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=200"`
	Unit string `json:"unit" validate:"max=20"`
}

type UpdateProductRequest struct {
	SKU  string `json:"sku" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=200"`
	Unit string `json:"unit" validate:"max=20"`
}

type CreateBatchRequest struct {
	ProductID  uint            `json:"product_id" validate:"required"`
	BatchNo    string          `json:"batch_no" validate:"required,max=64"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry_date"`
	Location   string          `json:"location" validate:"max=100"`
}

type UpdateBatchRequest struct {
	BatchNo    string          `json:"batch_no" validate:"required,max=64"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry_date"`
	Location   string          `json:"location" validate:"max=100"`
}

type CreateCheckRequest struct {
	CheckDate time.Time `json:"check_date" validate:"required"`
	CreatedBy string    `json:"created_by" validate:"max=100"`
	Notes     string    `json:"notes" validate:"max=1000"`
}

type UpdateCheckRequest struct {
	Status    string    `json:"status" validate:"required,oneof=pending completed cancelled"`
	CheckDate time.Time `json:"check_date" validate:"required"`
	Notes     string    `json:"notes" validate:"max=1000"`
}

type UpdateAlertSettingsRequest struct {
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	ExpiryWindowDays  int             `json:"expiry_window_days" validate:"required,gte=1"`
	CheckWindowDays   int             `json:"check_window_days" validate:"required,gte=1"`
}

type UpdateNotificationSettingsRequest struct {
	BotToken      string `json:"bot_token"`
	AlertsChannel string `json:"alerts_channel"`
	Enabled       bool   `json:"enabled"`
	PollSeconds   int    `json:"poll_seconds" validate:"gte=0"`
}
