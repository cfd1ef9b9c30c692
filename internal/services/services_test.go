package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedLowStock(t *testing.T, db *gorm.DB) *database.InventoryBatch {
	t.Helper()
	product := &database.Product{SKU: "FLR-1", Name: "Flour", Unit: "kg"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	batch := &database.InventoryBatch{
		ProductID: product.ID,
		BatchNo:   "B-001",
		Quantity:  decimal.NewFromInt(5),
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("failed to create batch: %v", err)
	}
	return batch
}

func TestAlertServiceAggregate(t *testing.T) {
	db := setupTestDB(t)
	batch := seedLowStock(t, db)

	svc := NewAlertService(db)
	got, err := svc.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d alerts, want 1", len(got))
	}
	if got[0].ID != alerts.AlertID(alerts.CategoryLowStock, batch.ID) {
		t.Errorf("id = %q", got[0].ID)
	}
	if got[0].IsResolved {
		t.Error("freshly generated alert marked resolved")
	}
}

func TestAlertServiceStatsMatchesAggregate(t *testing.T) {
	db := setupTestDB(t)
	seedLowStock(t, db)
	expiry := time.Now().AddDate(0, 0, -2)
	product := &database.Product{SKU: "MLK-1", Name: "Milk", Unit: "l"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	if err := db.Create(&database.InventoryBatch{
		ProductID:  product.ID,
		BatchNo:    "B-002",
		Quantity:   decimal.NewFromInt(100),
		ExpiryDate: &expiry,
	}).Error; err != nil {
		t.Fatalf("failed to create batch: %v", err)
	}

	svc := NewAlertService(db)
	list, err := svc.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != len(list) {
		t.Errorf("stats total = %d, aggregate length = %d", stats.Total, len(list))
	}
	if stats.Expired != 1 || stats.LowStock != 1 {
		t.Errorf("unexpected breakdown: %+v", stats)
	}
}

func TestAlertServiceUsesUpdatedThreshold(t *testing.T) {
	db := setupTestDB(t)
	seedLowStock(t, db)

	svc := NewAlertService(db)
	got, err := svc.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d alerts, want 1", len(got))
	}

	settings, err := database.GetOrCreateAlertSettings(db)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	settings.LowStockThreshold = decimal.NewFromInt(2)
	if err := database.UpdateAlertSettings(db, settings); err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}

	got, err = svc.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d alerts after lowering threshold, want 0", len(got))
	}
}

func TestResolve(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResolutionService(db)

	entry, err := svc.Resolve("lowstock_42", "LowStock", "alice", "restocked")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("entry not persisted")
	}
	if entry.ResolvedAt.IsZero() {
		t.Error("resolved_at not set")
	}

	list, err := svc.ListResolutions()
	if err != nil {
		t.Fatalf("ListResolutions failed: %v", err)
	}
	if len(list) != 1 || list[0].AlertID != "lowstock_42" {
		t.Errorf("unexpected ledger: %+v", list)
	}
}

func TestResolveEmptyAlertID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResolutionService(db)

	for _, id := range []string{"", "   "} {
		_, err := svc.Resolve(id, "LowStock", "alice", "restocked")
		var valErr *alerts.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("Resolve(%q): expected ValidationError, got %v", id, err)
		}
	}

	list, err := svc.ListResolutions()
	if err != nil {
		t.Fatalf("ListResolutions failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("rejected resolutions were persisted: %+v", list)
	}
}

func TestResolveDuplicatesAllowed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewResolutionService(db)

	if _, err := svc.Resolve("expiry_7", "Expiry", "alice", "checked"); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	if _, err := svc.Resolve("expiry_7", "Expiry", "bob", "checked again"); err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	list, err := svc.ListResolutions()
	if err != nil {
		t.Fatalf("ListResolutions failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	if list[0].ResolvedBy != "bob" {
		t.Errorf("expected newest first, got %+v", list)
	}
}

func TestResolveDoesNotChangeAggregate(t *testing.T) {
	db := setupTestDB(t)
	batch := seedLowStock(t, db)

	alertSvc := NewAlertService(db)
	resSvc := NewResolutionService(db)

	alertID := alerts.AlertID(alerts.CategoryLowStock, batch.ID)
	if _, err := resSvc.Resolve(alertID, "LowStock", "alice", "noted"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	got, err := alertSvc.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d alerts, want 1: resolution must not suppress alerts", len(got))
	}
	if got[0].IsResolved {
		t.Error("alert marked resolved after ledger write")
	}
}

func TestInventoryServiceProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	product := &database.Product{SKU: "FLR-1", Name: "Flour", Unit: "kg"}
	if err := svc.CreateProduct(product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	got, err := svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.SKU != "FLR-1" {
		t.Errorf("sku = %q", got.SKU)
	}

	product.Name = "Wheat Flour"
	if err := svc.UpdateProduct(product); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	got, err = svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Name != "Wheat Flour" {
		t.Errorf("name = %q", got.Name)
	}

	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := svc.GetProduct(product.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInventoryServiceBatchRequiresProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	batch := &database.InventoryBatch{ProductID: 999, BatchNo: "B-1", Quantity: decimal.NewFromInt(1)}
	if err := svc.CreateBatch(batch); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing product, got %v", err)
	}
}

func TestInventoryServiceListPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	for i := 0; i < 5; i++ {
		p := &database.Product{SKU: string(rune('A' + i)), Name: "P", Unit: "pcs"}
		if err := svc.CreateProduct(p); err != nil {
			t.Fatalf("CreateProduct failed: %v", err)
		}
	}

	page, total, err := svc.ListProducts(2, 2)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}
}
