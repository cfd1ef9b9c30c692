package alerts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category identifies the source condition an alert was derived from.
type Category string

const (
	CategoryLowStock       Category = "lowstock"
	CategoryExpiry         Category = "expiry"
	CategoryExpired        Category = "expired"
	CategoryInventoryCheck Category = "inventory_check"
)

// Priority is the urgency level of an alert.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the numeric ordering value for a priority. Higher ranks sort
// first. Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// PriorityFor maps a category to its priority. The mapping is total and pure:
// every category has exactly one priority, and nothing else influences it.
func PriorityFor(c Category) Priority {
	switch c {
	case CategoryExpired:
		return PriorityCritical
	case CategoryLowStock:
		return PriorityHigh
	case CategoryExpiry, CategoryInventoryCheck:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Alert is a derived record describing a currently-true inventory condition.
// Alerts are recomputed from source rows on every read and never persisted.
// IsResolved is always false at generation time; resolution state lives in
// the alert_resolutions table and never mutates the source row.
type Alert struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`

	// SourceRef is the id of the originating row (batch or check). It is a
	// weak reference: the alert never owns the row.
	SourceRef uint `json:"source_ref"`

	// CreatedAt is copied from the source row's last-update time, not the
	// time the alert was generated.
	CreatedAt time.Time `json:"created_at"`

	IsResolved bool `json:"is_resolved"`

	// Category-specific detail fields.
	CurrentStock    *decimal.Decimal `json:"current_stock,omitempty"`
	Unit            string           `json:"unit,omitempty"`
	DaysUntilExpiry *int             `json:"days_until_expiry,omitempty"`
	DaysOverdue     *int             `json:"days_overdue,omitempty"`
}

// AlertID synthesizes the stable identifier for a category/source-row pair.
// The same source condition yields the same id across repeated aggregation
// calls as long as the source row id is stable.
func AlertID(c Category, sourceRowID uint) string {
	return fmt.Sprintf("%s_%d", c, sourceRowID)
}
