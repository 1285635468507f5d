package repositories

import (
	"sync"

	"bakery/internal/models"
	pkgerrors "bakery/pkg/errors"
)

// RestockRepository defines access to factory restock requests.
type RestockRepository interface {
	// GetAll returns requests most recent first.
	GetAll() ([]models.RestockRequest, error)
	GetByID(id string) (*models.RestockRequest, error)
	Create(req models.RestockRequest) error
	Update(req models.RestockRequest) error
}

// MemoryRestockRepository is an in-memory implementation of RestockRepository.
type MemoryRestockRepository struct {
	requests []models.RestockRequest // oldest first
	mu       sync.RWMutex
}

// NewMemoryRestockRepository creates an empty repository.
func NewMemoryRestockRepository() *MemoryRestockRepository {
	return &MemoryRestockRepository{}
}

// GetAll returns all requests, most recent first.
func (r *MemoryRestockRepository) GetAll() ([]models.RestockRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.RestockRequest, 0, len(r.requests))
	for i := len(r.requests) - 1; i >= 0; i-- {
		list = append(list, r.requests[i])
	}
	return list, nil
}

// GetByID returns a request by its ID.
func (r *MemoryRestockRepository) GetByID(id string) (*models.RestockRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			found := req
			return &found, nil
		}
	}
	return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "restock request with ID %s not found", id)
}

// Create adds a new request.
func (r *MemoryRestockRepository) Create(req models.RestockRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
	return nil
}

// Update replaces an existing request.
func (r *MemoryRestockRepository) Update(req models.RestockRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			r.requests[i] = req
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "restock request with ID %s not found for update", req.ID)
}
