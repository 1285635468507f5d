package repositories

import (
	"fmt"

	"bakery/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// Migrate creates or updates the catalog tables.
func (r *GORMCatalogRepository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Category{}, &models.Product{}, &models.InventoryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

// ListProducts retrieves all products ordered by category and name.
func (r *GORMCatalogRepository) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("category_id, name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *GORMCatalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListInventory retrieves the opening stock levels.
func (r *GORMCatalogRepository) ListInventory() ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	if err := r.db.Order("product_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return records, nil
}

// Seed upserts categories, products and opening stock in one transaction.
func (r *GORMCatalogRepository) Seed(categories []models.Category, products []models.Product, stock []models.InventoryRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(categories) > 0 {
			if err := upsert.Create(&categories).Error; err != nil {
				return fmt.Errorf("failed to seed categories: %w", err)
			}
		}
		if len(products) > 0 {
			if err := upsert.Create(&products).Error; err != nil {
				return fmt.Errorf("failed to seed products: %w", err)
			}
		}
		if len(stock) > 0 {
			if err := upsert.Create(&stock).Error; err != nil {
				return fmt.Errorf("failed to seed inventory: %w", err)
			}
		}
		return nil
	})
}
