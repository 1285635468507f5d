package repositories

import (
	"sync"

	"bakery/internal/models"
	pkgerrors "bakery/pkg/errors"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders []models.Order // oldest first
	index  map[string]int
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new, empty ledger.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		index: make(map[string]int),
	}
}

// GetAll returns all orders, most recent first.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		orderList = append(orderList, copyOrder(r.orders[i]))
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "order with ID %s not found", id)
	}
	order := copyOrder(r.orders[i])
	return &order, nil
}

// Append adds an order to the ledger. IDs must be unique.
func (r *MemoryOrderRepository) Append(order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[order.ID]; exists {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "order with ID %s already recorded", order.ID)
	}
	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, copyOrder(order))
	return nil
}

// Count returns the number of orders in the ledger.
func (r *MemoryOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// copyOrder detaches the item slice so callers cannot mutate the ledger.
func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}
