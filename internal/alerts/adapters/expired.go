package adapters

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
	"github.com/stocksentry/stocksentry/internal/utils"
)

// ExpiredAdapter flags batches whose expiry date has already passed.
type ExpiredAdapter struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExpiredAdapter(db *gorm.DB) *ExpiredAdapter {
	return &ExpiredAdapter{db: db, now: time.Now}
}

func (a *ExpiredAdapter) Category() alerts.Category {
	return alerts.CategoryExpired
}

func (a *ExpiredAdapter) Detect() ([]alerts.Alert, error) {
	now := a.now()

	var batches []database.InventoryBatch
	err := a.db.Preload("Product").
		Where("expiry_date <= ?", now).
		Order("id").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("querying expired batches: %w", err)
	}

	result := []alerts.Alert{}
	for _, batch := range batches {
		overdue := daysBetween(*batch.ExpiryDate, now)
		if overdue < 0 {
			overdue = 0
		}
		result = append(result, alerts.Alert{
			ID:       alerts.AlertID(alerts.CategoryExpired, batch.ID),
			Category: alerts.CategoryExpired,
			Priority: alerts.PriorityFor(alerts.CategoryExpired),
			Title:    fmt.Sprintf("Expired: %s", batch.Product.Name),
			Message: fmt.Sprintf("Batch %s of %s expired %s ago, remove %s from %s",
				batch.BatchNo, batch.Product.Name, utils.FormatDays(overdue),
				utils.FormatQuantity(batch.Quantity, batch.Product.Unit),
				locationOrDefault(batch.Location)),
			SourceRef:   batch.ID,
			CreatedAt:   batch.UpdatedAt,
			DaysOverdue: &overdue,
		})
	}
	return result, nil
}
