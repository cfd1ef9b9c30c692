package services

import (
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/alerts/adapters"
	"github.com/stocksentry/stocksentry/internal/database"
)

// AlertService derives the current alert set from inventory data. Thresholds
// are re-read from the settings row on every call, so operator changes take
// effect without a restart.
type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

func (s *AlertService) aggregator() (*alerts.Aggregator, error) {
	settings, err := database.GetOrCreateAlertSettings(s.db)
	if err != nil {
		return nil, &alerts.DataSourceError{Source: "alert_settings", Err: err}
	}
	return alerts.NewAggregator(
		adapters.NewLowStockAdapter(s.db, settings.LowStockThreshold),
		adapters.NewExpiryAdapter(s.db, settings.ExpiryWindowDays),
		adapters.NewExpiredAdapter(s.db),
		adapters.NewCheckAdapter(s.db, settings.CheckWindowDays),
	), nil
}

// Aggregate returns all active alerts sorted by priority, then recency.
func (s *AlertService) Aggregate() ([]alerts.Alert, error) {
	agg, err := s.aggregator()
	if err != nil {
		return nil, err
	}
	return agg.Aggregate()
}

// Stats returns the count breakdown for the same alert set Aggregate serves.
func (s *AlertService) Stats() (alerts.Stats, error) {
	agg, err := s.aggregator()
	if err != nil {
		return alerts.Stats{}, err
	}
	return agg.Summarize()
}
