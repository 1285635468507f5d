package repositories

import (
	"bakery/internal/models"
)

// OrderRepository is the append-only order ledger.
type OrderRepository interface {
	// GetAll returns orders most recent first.
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Append(order models.Order) error
	// Count is the ledger length. It only ever grows.
	Count() int
}
