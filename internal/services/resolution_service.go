package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
)

// ResolutionService manages the append-only alert resolution ledger.
type ResolutionService struct {
	db *gorm.DB
}

func NewResolutionService(db *gorm.DB) *ResolutionService {
	return &ResolutionService{db: db}
}

// Resolve appends a resolution entry. The alert id is not checked against the
// live alert set: operators may acknowledge alerts that already cleared
// themselves, and the same id may be resolved more than once.
func (s *ResolutionService) Resolve(alertID, alertType, resolvedBy, resolution string) (*database.AlertResolution, error) {
	if strings.TrimSpace(alertID) == "" {
		return nil, &alerts.ValidationError{Field: "alert_id", Reason: "must not be empty"}
	}

	entry := &database.AlertResolution{
		AlertID:    alertID,
		AlertType:  alertType,
		ResolvedBy: resolvedBy,
		Resolution: resolution,
		ResolvedAt: time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListResolutions returns the ledger newest first.
func (s *ResolutionService) ListResolutions() ([]database.AlertResolution, error) {
	entries := []database.AlertResolution{}
	err := s.db.Order("resolved_at DESC, id DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
