package adapters

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
)

// CheckAdapter flags pending inventory checks due within the next windowDays.
// Overdue pending checks stay flagged; there is no lower bound on the date.
type CheckAdapter struct {
	db         *gorm.DB
	windowDays int
	now        func() time.Time
}

func NewCheckAdapter(db *gorm.DB, windowDays int) *CheckAdapter {
	return &CheckAdapter{db: db, windowDays: windowDays, now: time.Now}
}

func (a *CheckAdapter) Category() alerts.Category {
	return alerts.CategoryInventoryCheck
}

func (a *CheckAdapter) Detect() ([]alerts.Alert, error) {
	cutoff := a.now().AddDate(0, 0, a.windowDays)

	var checks []database.InventoryCheck
	err := a.db.
		Where("status = ? AND check_date <= ?", database.CheckStatusPending, cutoff).
		Order("id").
		Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("querying pending checks: %w", err)
	}

	result := []alerts.Alert{}
	for _, check := range checks {
		result = append(result, alerts.Alert{
			ID:       alerts.AlertID(alerts.CategoryInventoryCheck, check.ID),
			Category: alerts.CategoryInventoryCheck,
			Priority: alerts.PriorityFor(alerts.CategoryInventoryCheck),
			Title:    "Inventory check due",
			Message: fmt.Sprintf("Check #%d scheduled for %s is pending",
				check.ID, check.CheckDate.Format("2006-01-02")),
			SourceRef: check.ID,
			CreatedAt: check.UpdatedAt,
		})
	}
	return result, nil
}
