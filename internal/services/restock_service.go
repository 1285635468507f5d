package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"bakery/internal/clock"
	"bakery/internal/models"
	"bakery/internal/repositories"
	pkgerrors "bakery/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultRestockLead is the ETA used when none is given: the factory is a
// five minute walk away.
const DefaultRestockLead = 5 * time.Minute

// RestockService manages factory restock requests.
type RestockService struct {
	mu        sync.Mutex // serialises status transitions
	repo      repositories.RestockRepository
	catalog   *CatalogService
	inventory *InventoryService
	clock     *clock.Clock
	publisher EventPublisher
	log       zerolog.Logger
}

// NewRestockService creates a new RestockService.
func NewRestockService(repo repositories.RestockRepository, catalog *CatalogService, inventory *InventoryService, clk *clock.Clock, publisher EventPublisher, log zerolog.Logger) *RestockService {
	return &RestockService{
		repo:      repo,
		catalog:   catalog,
		inventory: inventory,
		clock:     clk,
		publisher: publisher,
		log:       log.With().Str("component", "restock").Logger(),
	}
}

// CreateRequest opens a PENDING request. Quantities below 1 are raised to 1
// and a zero eta defaults to DefaultRestockLead from now.
func (s *RestockService) CreateRequest(productID string, quantity int, eta time.Time, note string) (*models.RestockRequest, error) {
	product, err := s.catalog.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.StockManaged() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "product %s is not stock-managed", productID)
	}

	now := s.clock.Now()
	if eta.IsZero() {
		eta = now.Add(DefaultRestockLead)
	}
	req := models.RestockRequest{
		ID:          "FR-" + uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    max(1, quantity),
		CreatedAt:   now,
		ETA:         eta,
		Note:        strings.TrimSpace(note),
		Status:      models.RestockStatusPending,
	}
	if err := s.repo.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create restock request: %w", err)
	}

	s.log.Info().Str("request_id", req.ID).Str("product_id", req.ProductID).Int("quantity", req.Quantity).Msg("restock requested")
	publishEvent(s.log, s.publisher, EventRestockRequested, req)
	return &req, nil
}

// Cancel closes a PENDING request without touching stock.
func (s *RestockService) Cancel(id string) (*models.RestockRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.transition(id, models.RestockStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("request_id", id).Msg("restock cancelled")
	publishEvent(s.log, s.publisher, EventRestockCancelled, req)
	return req, nil
}

// ConfirmDelivery closes a PENDING request and adds its quantity to the stock
// as it stands now, not as it was when the request was created.
func (s *RestockService) ConfirmDelivery(id string) (*models.RestockRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(req.Status, models.RestockStatusDelivered) {
		return nil, invalidTransition(req, models.RestockStatusDelivered)
	}
	if _, err := s.inventory.Increment(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	req, err = s.transition(id, models.RestockStatusDelivered)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("request_id", id).Int("quantity", req.Quantity).Msg("restock delivered")
	publishEvent(s.log, s.publisher, EventRestockDelivered, req)
	return req, nil
}

// List returns all requests, most recent first.
func (s *RestockService) List() ([]models.RestockRequest, error) {
	return s.repo.GetAll()
}

// PendingCount returns the number of open requests.
func (s *RestockService) PendingCount() (int, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range all {
		if r.Status == models.RestockStatusPending {
			n++
		}
	}
	return n, nil
}

// RecommendedQuantity suggests max(1, 2*threshold - stock).
func (s *RestockService) RecommendedQuantity(productID string) (int, error) {
	views, err := s.inventory.List()
	if err != nil {
		return 0, err
	}
	for _, v := range views {
		if v.Product.ID == productID {
			return max(1, v.Record.MinThreshold*2-v.Record.CurrentQuantity), nil
		}
	}
	if _, err := s.catalog.GetProductByID(productID); err != nil {
		return 0, err
	}
	return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "product %s is not stock-managed", productID)
}

func (s *RestockService) transition(id string, to models.RestockStatus) (*models.RestockRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(req.Status, to) {
		return nil, invalidTransition(req, to)
	}
	req.Status = to
	if err := s.repo.Update(*req); err != nil {
		return nil, fmt.Errorf("failed to update restock request %s: %w", id, err)
	}
	return req, nil
}

func invalidTransition(req *models.RestockRequest, to models.RestockStatus) error {
	return pkgerrors.Newf(pkgerrors.CodeStateConflict, "restock request %s is %s and cannot become %s", req.ID, req.Status, to).
		WithDetails(map[string]string{"status": string(req.Status)})
}
