package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 3000 {
		t.Errorf("port = %d, want 3000", cfg.HTTPPort)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.IsProduction() {
		t.Error("development reported as production")
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("admin username = %q", cfg.AdminUsername)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("jwt secret = %q", cfg.JWTSecret)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("port = %d", cfg.HTTPPort)
	}
	if !cfg.IsProduction() {
		t.Error("production not detected")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stocksentry.yaml")
	content := "alerts:\n  low_stock_threshold: 25\n  expiry_window_days: 14\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AlertDefaults.LowStockThreshold == nil || *cfg.AlertDefaults.LowStockThreshold != 25 {
		t.Errorf("low_stock_threshold = %v", cfg.AlertDefaults.LowStockThreshold)
	}
	if cfg.AlertDefaults.ExpiryWindowDays == nil || *cfg.AlertDefaults.ExpiryWindowDays != 14 {
		t.Errorf("expiry_window_days = %v", cfg.AlertDefaults.ExpiryWindowDays)
	}
	if cfg.AlertDefaults.CheckWindowDays != nil {
		t.Errorf("check_window_days = %v, want nil", cfg.AlertDefaults.CheckWindowDays)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestJWTSecretPersisted(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("CONFIG_FILE", "")

	first, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first.JWTSecret == "" {
		t.Fatal("no secret generated")
	}

	second, err := Load()
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if second.JWTSecret != first.JWTSecret {
		t.Error("generated secret not persisted across loads")
	}
}
