package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item. Stock lives in batches, not on the product row.
type Product struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SKU       string `gorm:"uniqueIndex;not null" json:"sku"`
	Name      string `gorm:"not null" json:"name"`
	Unit      string `gorm:"not null;default:pcs" json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Batches []InventoryBatch `gorm:"foreignKey:ProductID" json:"batches,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// InventoryBatch is a lot of a product held at a location. ExpiryDate is nil
// for non-perishable stock; such batches never produce expiry alerts.
type InventoryBatch struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	BatchNo   string          `gorm:"not null" json:"batch_no"`
	Quantity  decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity"`
	ExpiryDate *time.Time     `gorm:"index" json:"expiry_date,omitempty"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (InventoryBatch) TableName() string {
	return "inventory_batches"
}

// CheckStatus is the lifecycle state of an inventory check.
type CheckStatus string

const (
	CheckStatusPending   CheckStatus = "pending"
	CheckStatusCompleted CheckStatus = "completed"
	CheckStatusCancelled CheckStatus = "cancelled"
)

// InventoryCheck is a scheduled stock count. Only pending checks with a due
// date inside the configured window produce alerts.
type InventoryCheck struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Status    CheckStatus `gorm:"not null;default:pending;index" json:"status"`
	CheckDate time.Time   `gorm:"not null;index" json:"check_date"`
	CreatedBy string      `json:"created_by"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (InventoryCheck) TableName() string {
	return "inventory_checks"
}

// AlertResolution is one entry in the append-only resolution ledger. The
// ledger records operator acknowledgements and is never consulted when alerts
// are generated. Multiple entries for the same alert id are allowed.
type AlertResolution struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AlertID    string    `gorm:"index;not null" json:"alert_id"`
	AlertType  string    `json:"alert_type"`
	ResolvedBy string    `json:"resolved_by"`
	Resolution string    `json:"resolution"`
	ResolvedAt time.Time `gorm:"index;not null" json:"resolved_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AlertResolution) TableName() string {
	return "alert_resolutions"
}

// AlertSettings is a singleton row holding the detection thresholds.
type AlertSettings struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"low_stock_threshold"`
	ExpiryWindowDays  int             `gorm:"not null" json:"expiry_window_days"`
	CheckWindowDays   int             `gorm:"not null" json:"check_window_days"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (AlertSettings) TableName() string {
	return "alert_settings"
}

func NewDefaultAlertSettings() *AlertSettings {
	return &AlertSettings{
		LowStockThreshold: decimal.NewFromInt(10),
		ExpiryWindowDays:  30,
		CheckWindowDays:   3,
	}
}

// NotificationSettings is a singleton row configuring the Slack notifier.
type NotificationSettings struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BotToken      string    `json:"bot_token"`
	AlertsChannel string    `json:"alerts_channel"`
	Enabled       bool      `gorm:"default:false" json:"enabled"`
	PollSeconds   int       `gorm:"default:300" json:"poll_seconds"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}

// IsConfigured reports whether the row carries enough to reach Slack.
func (s *NotificationSettings) IsConfigured() bool {
	return s.BotToken != "" && s.AlertsChannel != ""
}

// IsActive reports whether notifications should actually be sent.
func (s *NotificationSettings) IsActive() bool {
	return s.Enabled && s.IsConfigured()
}
