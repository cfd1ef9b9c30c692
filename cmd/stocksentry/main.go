package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/api"
	"github.com/stocksentry/stocksentry/internal/config"
	"github.com/stocksentry/stocksentry/internal/database"
	"github.com/stocksentry/stocksentry/internal/handlers"
	"github.com/stocksentry/stocksentry/internal/jobs"
	"github.com/stocksentry/stocksentry/internal/middleware"
	"github.com/stocksentry/stocksentry/internal/services"
)

const version = "1.0.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting StockSentry %s...", version)

	if cfg.IsProduction() {
		api.SetExposeErrors(false)
	}

	if cfg.AdminPassword == "" {
		log.Fatalf("ADMIN_PASSWORD is not set")
	}
	passwordHash, err := middleware.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	jwtAuthMiddleware := middleware.NewJWTAuthMiddleware(&middleware.JWTAuthConfig{
		Enabled:           true,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: passwordHash,
		JWTSecret:         cfg.JWTSecret,
		JWTExpiryHours:    cfg.JWTExpiryHours,
		SkipPaths: []string{
			"/health",
			"/auth/login",
		},
	})
	log.Printf("JWT authentication enabled for user: %s", cfg.AdminUsername)

	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.InitializeDefaults(database.DB, alertDefaultsFromConfig(cfg)); err != nil {
		log.Fatalf("Failed to initialize database defaults: %v", err)
	}

	db := database.GetDB()
	alertService := services.NewAlertService(db)
	resolutionService := services.NewResolutionService(db)
	inventoryService := services.NewInventoryService(db)

	// Set up HTTP server routes
	mux := http.NewServeMux()
	handlers.NewHealthHandler(version).SetupRoutes(mux)
	handlers.NewAuthHandler(jwtAuthMiddleware).SetupRoutes(mux)
	handlers.NewAlertHandler(alertService, resolutionService).SetupRoutes(mux)
	handlers.NewInventoryHandler(inventoryService).SetupRoutes(mux)
	handlers.NewSettingsHandler(db).SetupRoutes(mux)
	handlers.NewAlertStreamHandler(alertService, 30*time.Second).SetupRoutes(mux)

	// CORS first, then request id, then JWT authentication
	corsMiddleware := middleware.NewCORSMiddleware() // Allow all origins
	handler := corsMiddleware.Wrap(middleware.RequestIDMiddleware(jwtAuthMiddleware.Wrap(mux)))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Start the notification monitor
	stopMonitor := make(chan struct{})
	monitor := jobs.NewAlertMonitor(db, alertService)
	go monitor.Start(monitorInterval(db), stopMonitor)
	log.Printf("Alert monitor started")


	log.Printf("Alert API: http://localhost:%d/alerts", cfg.HTTPPort)
	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, cleaning up...")
	close(stopMonitor)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	log.Println("Shutdown complete")
}

// alertDefaultsFromConfig converts optional config overrides into the seed
// row for alert settings. Returns nil when nothing is overridden, letting the
// built-in defaults apply.
func alertDefaultsFromConfig(cfg *config.Config) *database.AlertSettings {
	d := cfg.AlertDefaults
	if d.LowStockThreshold == nil && d.ExpiryWindowDays == nil && d.CheckWindowDays == nil {
		return nil
	}
	settings := database.NewDefaultAlertSettings()
	if d.LowStockThreshold != nil {
		settings.LowStockThreshold = decimal.NewFromFloat(*d.LowStockThreshold)
	}
	if d.ExpiryWindowDays != nil {
		settings.ExpiryWindowDays = *d.ExpiryWindowDays
	}
	if d.CheckWindowDays != nil {
		settings.CheckWindowDays = *d.CheckWindowDays
	}
	return settings
}

// monitorInterval reads the configured poll interval once at startup.
func monitorInterval(db *gorm.DB) time.Duration {
	settings, err := database.GetNotificationSettings(db)
	if err != nil || settings.PollSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(settings.PollSeconds) * time.Second
}
