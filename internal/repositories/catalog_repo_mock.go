package repositories

import (
	"sort"
	"sync"

	"bakery/internal/models"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
type MockCatalogRepository struct {
	products   []models.Product
	categories []models.Category
	inventory  []models.InventoryRecord
	mu         sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository(categories []models.Category, products []models.Product, inventory []models.InventoryRecord) *MockCatalogRepository {
	return &MockCatalogRepository{
		products:   append([]models.Product(nil), products...),
		categories: append([]models.Category(nil), categories...),
		inventory:  append([]models.InventoryRecord(nil), inventory...),
	}
}

// ListProducts returns all products.
func (r *MockCatalogRepository) ListProducts() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product(nil), r.products...), nil
}

// ListCategories returns all categories sorted by name.
func (r *MockCatalogRepository) ListCategories() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := append([]models.Category(nil), r.categories...)
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// ListInventory returns the opening stock levels.
func (r *MockCatalogRepository) ListInventory() ([]models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.InventoryRecord(nil), r.inventory...), nil
}
