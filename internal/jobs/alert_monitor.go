package jobs

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
	"github.com/stocksentry/stocksentry/internal/notify"
	"github.com/stocksentry/stocksentry/internal/services"
)

// AlertMonitor periodically aggregates alerts and posts unseen critical ones
// to Slack. Seen ids are remembered in memory, so a restart may re-notify.
type AlertMonitor struct {
	db           *gorm.DB
	alertService *services.AlertService

	mu   sync.Mutex
	seen map[string]time.Time

	// post is swapped out in tests.
	post func(settings *database.NotificationSettings, alert alerts.Alert) error
}

// NewAlertMonitor creates a new alert monitor
func NewAlertMonitor(db *gorm.DB, alertService *services.AlertService) *AlertMonitor {
	m := &AlertMonitor{
		db:           db,
		alertService: alertService,
		seen:         make(map[string]time.Time),
	}
	m.post = m.postToSlack
	return m
}

func (m *AlertMonitor) postToSlack(settings *database.NotificationSettings, alert alerts.Alert) error {
	notifier := notify.NewSlackNotifier(settings.BotToken, settings.AlertsChannel)
	return notifier.PostAlert(alert)
}

// CheckAndNotify aggregates the current alert set and posts critical alerts
// that have not been notified yet. Returns the number of notifications sent.
func (m *AlertMonitor) CheckAndNotify() (int, error) {
	settings, err := database.GetNotificationSettings(m.db)
	if err != nil {
		return 0, err
	}
	if !settings.IsActive() {
		return 0, nil
	}

	list, err := m.alertService.Aggregate()
	if err != nil {
		return 0, err
	}

	active := make(map[string]bool, len(list))
	sent := 0
	for _, alert := range list {
		active[alert.ID] = true
		if alert.Priority != alerts.PriorityCritical {
			continue
		}

		m.mu.Lock()
		_, already := m.seen[alert.ID]
		m.mu.Unlock()
		if already {
			continue
		}

		if err := m.post(settings, alert); err != nil {
			log.Printf("Alert monitor: failed to notify for %s: %v", alert.ID, err)
			continue
		}

		m.mu.Lock()
		m.seen[alert.ID] = time.Now()
		m.mu.Unlock()
		sent++
	}

	// Forget ids whose condition cleared so they re-notify if it returns.
	m.mu.Lock()
	for id := range m.seen {
		if !active[id] {
			delete(m.seen, id)
		}
	}
	m.mu.Unlock()

	return sent, nil
}

// Start begins the periodic monitoring
func (m *AlertMonitor) Start(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sent, err := m.CheckAndNotify()
			if err != nil {
				log.Printf("Alert monitor error: %v", err)
			} else if sent > 0 {
				log.Printf("Alert monitor: sent %d notifications", sent)
			}
		case <-stop:
			log.Println("Alert monitor stopped")
			return
		}
	}
}
