package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the postgres connection and runs migrations.
func Connect(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated")
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Product{},
		&InventoryBatch{},
		&InventoryCheck{},
		&AlertResolution{},
		&AlertSettings{},
		&NotificationSettings{},
	)
}

// InitializeDefaults seeds the singleton settings rows on first boot.
// Existing rows are left alone so operator changes survive restarts.
func InitializeDefaults(db *gorm.DB, alertDefaults *AlertSettings) error {
	var count int64
	if err := db.Model(&AlertSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count alert settings: %w", err)
	}
	if count == 0 {
		if alertDefaults == nil {
			alertDefaults = NewDefaultAlertSettings()
		}
		if err := db.Create(alertDefaults).Error; err != nil {
			return fmt.Errorf("failed to create default alert settings: %w", err)
		}
		log.Println("Created default alert settings")
	}

	if err := db.Model(&NotificationSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count notification settings: %w", err)
	}
	if count == 0 {
		if err := db.Create(&NotificationSettings{Enabled: false, PollSeconds: 300}).Error; err != nil {
			return fmt.Errorf("failed to create default notification settings: %w", err)
		}
		log.Println("Created default notification settings")
	}

	return nil
}

// GetOrCreateAlertSettings returns the singleton thresholds row, creating the
// defaults if it does not exist yet.
func GetOrCreateAlertSettings(db *gorm.DB) (*AlertSettings, error) {
	var settings AlertSettings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		defaults := NewDefaultAlertSettings()
		if err := db.Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func UpdateAlertSettings(db *gorm.DB, settings *AlertSettings) error {
	current, err := GetOrCreateAlertSettings(db)
	if err != nil {
		return err
	}
	settings.ID = current.ID
	settings.CreatedAt = current.CreatedAt
	return db.Save(settings).Error
}

func GetNotificationSettings(db *gorm.DB) (*NotificationSettings, error) {
	var settings NotificationSettings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		defaults := &NotificationSettings{Enabled: false, PollSeconds: 300}
		if err := db.Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func UpdateNotificationSettings(db *gorm.DB, settings *NotificationSettings) error {
	current, err := GetNotificationSettings(db)
	if err != nil {
		return err
	}
	settings.ID = current.ID
	settings.CreatedAt = current.CreatedAt
	return db.Save(settings).Error
}

func GetDB() *gorm.DB {
	return DB
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
