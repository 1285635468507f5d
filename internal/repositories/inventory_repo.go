package repositories

import (
	"sort"
	"sync"

	"bakery/internal/models"
	pkgerrors "bakery/pkg/errors"
)

// InventoryRepository defines access to the live stock levels.
type InventoryRepository interface {
	GetAll() ([]models.InventoryRecord, error)
	GetByProductID(productID string) (*models.InventoryRecord, error)
	Save(record models.InventoryRecord) error
}

// MemoryInventoryRepository keeps stock levels in process memory.
type MemoryInventoryRepository struct {
	records map[string]models.InventoryRecord
	mu      sync.RWMutex
}

// NewMemoryInventoryRepository creates a repository holding the given records.
func NewMemoryInventoryRepository(records []models.InventoryRecord) *MemoryInventoryRepository {
	r := &MemoryInventoryRepository{
		records: make(map[string]models.InventoryRecord, len(records)),
	}
	for _, rec := range records {
		r.records[rec.ProductID] = rec
	}
	return r
}

// GetAll returns every record sorted by product ID.
func (r *MemoryInventoryRepository) GetAll() ([]models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.InventoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

// GetByProductID returns the record of a product.
func (r *MemoryInventoryRepository) GetByProductID(productID string) (*models.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[productID]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "inventory for product %s not found", productID)
	}
	return &rec, nil
}

// Save inserts or replaces a record.
func (r *MemoryInventoryRepository) Save(record models.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ProductID] = record
	return nil
}
