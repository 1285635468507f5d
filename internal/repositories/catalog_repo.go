package repositories

import (
	"bakery/internal/models"
)

// CatalogRepository is the catalog provider. The terminal reads it once at
// session start and treats the result as an immutable snapshot.
type CatalogRepository interface {
	ListProducts() ([]models.Product, error)
	ListCategories() ([]models.Category, error)
	// ListInventory returns the opening stock levels of stock-managed products.
	ListInventory() ([]models.InventoryRecord, error)
}
