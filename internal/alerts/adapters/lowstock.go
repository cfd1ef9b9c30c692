// Package adapters holds the alert source adapters that read inventory rows
// and derive alert conditions from them. Adapters never write to the
// database.
package adapters

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
	"github.com/stocksentry/stocksentry/internal/utils"
)

// LowStockAdapter flags batches whose quantity has fallen to or below the
// configured threshold.
type LowStockAdapter struct {
	db        *gorm.DB
	threshold decimal.Decimal
}

func NewLowStockAdapter(db *gorm.DB, threshold decimal.Decimal) *LowStockAdapter {
	return &LowStockAdapter{db: db, threshold: threshold}
}

func (a *LowStockAdapter) Category() alerts.Category {
	return alerts.CategoryLowStock
}

func (a *LowStockAdapter) Detect() ([]alerts.Alert, error) {
	var batches []database.InventoryBatch
	err := a.db.Preload("Product").
		Where("quantity <= ?", a.threshold).
		Order("id").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("querying low stock batches: %w", err)
	}

	result := []alerts.Alert{}
	for _, batch := range batches {
		stock := batch.Quantity
		result = append(result, alerts.Alert{
			ID:        alerts.AlertID(alerts.CategoryLowStock, batch.ID),
			Category:  alerts.CategoryLowStock,
			Priority:  alerts.PriorityFor(alerts.CategoryLowStock),
			Title:     fmt.Sprintf("Low stock: %s", batch.Product.Name),
			Message: fmt.Sprintf("Batch %s of %s is down to %s at %s",
				batch.BatchNo, batch.Product.Name,
				utils.FormatQuantity(stock, batch.Product.Unit), locationOrDefault(batch.Location)),
			SourceRef:    batch.ID,
			CreatedAt:    batch.UpdatedAt,
			CurrentStock: &stock,
			Unit:         batch.Product.Unit,
		})
	}
	return result, nil
}

func locationOrDefault(loc string) string {
	if loc == "" {
		return "unassigned location"
	}
	return loc
}

// daysBetween returns whole days from a to b, truncated toward zero.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
