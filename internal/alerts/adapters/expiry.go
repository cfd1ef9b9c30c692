package adapters

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
	"github.com/stocksentry/stocksentry/internal/utils"
)

// ExpiryAdapter flags batches whose expiry date lies within the next
// windowDays but has not passed yet. Batches without an expiry date are
// skipped.
type ExpiryAdapter struct {
	db         *gorm.DB
	windowDays int
	now        func() time.Time
}

func NewExpiryAdapter(db *gorm.DB, windowDays int) *ExpiryAdapter {
	return &ExpiryAdapter{db: db, windowDays: windowDays, now: time.Now}
}

func (a *ExpiryAdapter) Category() alerts.Category {
	return alerts.CategoryExpiry
}

func (a *ExpiryAdapter) Detect() ([]alerts.Alert, error) {
	now := a.now()
	cutoff := now.AddDate(0, 0, a.windowDays)

	var batches []database.InventoryBatch
	err := a.db.Preload("Product").
		Where("expiry_date > ? AND expiry_date <= ?", now, cutoff).
		Order("id").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("querying expiring batches: %w", err)
	}

	result := []alerts.Alert{}
	for _, batch := range batches {
		days := daysBetween(now, *batch.ExpiryDate)
		result = append(result, alerts.Alert{
			ID:       alerts.AlertID(alerts.CategoryExpiry, batch.ID),
			Category: alerts.CategoryExpiry,
			Priority: alerts.PriorityFor(alerts.CategoryExpiry),
			Title:    fmt.Sprintf("Expiring soon: %s", batch.Product.Name),
			Message: fmt.Sprintf("Batch %s of %s expires in %s",
				batch.BatchNo, batch.Product.Name, utils.FormatDays(days)),
			SourceRef:       batch.ID,
			CreatedAt:       batch.UpdatedAt,
			DaysUntilExpiry: &days,
		})
	}
	return result, nil
}
