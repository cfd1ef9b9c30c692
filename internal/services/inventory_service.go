package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry/internal/database"
)

var ErrNotFound = errors.New("record not found")

// InventoryService manages the inventory rows the alert adapters read.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (s *InventoryService) ListProducts(offset, limit int) ([]database.Product, int64, error) {
	var total int64
	if err := s.db.Model(&database.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	products := []database.Product{}
	err := s.db.Order("id").Offset(offset).Limit(limit).Find(&products).Error
	return products, total, err
}

func (s *InventoryService) GetProduct(id uint) (*database.Product, error) {
	var product database.Product
	err := s.db.Preload("Batches").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *InventoryService) CreateProduct(product *database.Product) error {
	return s.db.Create(product).Error
}

func (s *InventoryService) UpdateProduct(product *database.Product) error {
	result := s.db.Model(&database.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"sku":  product.SKU,
			"name": product.Name,
			"unit": product.Unit,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.db.First(product, product.ID).Error
}

func (s *InventoryService) DeleteProduct(id uint) error {
	result := s.db.Delete(&database.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *InventoryService) ListBatches(offset, limit int) ([]database.InventoryBatch, int64, error) {
	var total int64
	if err := s.db.Model(&database.InventoryBatch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	batches := []database.InventoryBatch{}
	err := s.db.Preload("Product").Order("id").Offset(offset).Limit(limit).Find(&batches).Error
	return batches, total, err
}

func (s *InventoryService) CreateBatch(batch *database.InventoryBatch) error {
	var count int64
	if err := s.db.Model(&database.Product{}).Where("id = ?", batch.ProductID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return s.db.Create(batch).Error
}

func (s *InventoryService) UpdateBatch(batch *database.InventoryBatch) error {
	result := s.db.Model(&database.InventoryBatch{}).Where("id = ?", batch.ID).
		Updates(map[string]interface{}{
			"batch_no":    batch.BatchNo,
			"quantity":    batch.Quantity,
			"expiry_date": batch.ExpiryDate,
			"location":    batch.Location,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.db.Preload("Product").First(batch, batch.ID).Error
}

func (s *InventoryService) DeleteBatch(id uint) error {
	result := s.db.Delete(&database.InventoryBatch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *InventoryService) ListChecks(offset, limit int) ([]database.InventoryCheck, int64, error) {
	var total int64
	if err := s.db.Model(&database.InventoryCheck{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	checks := []database.InventoryCheck{}
	err := s.db.Order("check_date").Offset(offset).Limit(limit).Find(&checks).Error
	return checks, total, err
}

func (s *InventoryService) CreateCheck(check *database.InventoryCheck) error {
	if check.Status == "" {
		check.Status = database.CheckStatusPending
	}
	return s.db.Create(check).Error
}

func (s *InventoryService) UpdateCheck(check *database.InventoryCheck) error {
	result := s.db.Model(&database.InventoryCheck{}).Where("id = ?", check.ID).
		Updates(map[string]interface{}{
			"status":     check.Status,
			"check_date": check.CheckDate,
			"notes":      check.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.db.First(check, check.ID).Error
}
