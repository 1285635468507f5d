package services

import (
	"fmt"
	"sync"

	"bakery/internal/clock"
	"bakery/internal/metrics"
	"bakery/internal/models"
	"bakery/internal/repositories"
	pkgerrors "bakery/pkg/errors"

	"github.com/rs/zerolog"
)

// Stock movement sources.
const (
	StockSourceManual  = "manual"
	StockSourceOrder   = "order"
	StockSourceRestock = "restock"
)

// Availability is what the ledger knows about a product's stock.
type Availability struct {
	ProductID string `json:"product_id"`
	// Tracked is false for drinks and alcohol, which are always available.
	Tracked bool `json:"tracked"`
	// Exists is false when a tracked product has no inventory record.
	Exists   bool `json:"exists"`
	Quantity int  `json:"quantity"`
}

// CanSell reports whether qty units can be in the cart at once.
func (a Availability) CanSell(qty int) bool {
	if !a.Tracked {
		return true
	}
	return a.Exists && qty <= a.Quantity
}

// StockView joins a stock-managed product with its inventory record.
type StockView struct {
	Product   models.Product         `json:"product"`
	Record    models.InventoryRecord `json:"inventory"`
	HasRecord bool                   `json:"has_record"`
	Low       bool                   `json:"low"`
}

// InventoryAdjustedEvent is published after every inventory mutation.
type InventoryAdjustedEvent struct {
	ProductID   string `json:"product_id"`
	Source      string `json:"source"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
}

// InventoryService is the inventory ledger.
type InventoryService struct {
	mu        sync.Mutex // serialises read-modify-write cycles
	repo      repositories.InventoryRepository
	catalog   *CatalogService
	clock     *clock.Clock
	publisher EventPublisher
	metrics   *metrics.POSMetrics
	log       zerolog.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.InventoryRepository, catalog *CatalogService, clk *clock.Clock, publisher EventPublisher, m *metrics.POSMetrics, log zerolog.Logger) *InventoryService {
	return &InventoryService{
		repo:      repo,
		catalog:   catalog,
		clock:     clk,
		publisher: publisher,
		metrics:   m,
		log:       log.With().Str("component", "inventory").Logger(),
	}
}

// Availability reports the stock of a product.
func (s *InventoryService) Availability(productID string) (Availability, error) {
	product, err := s.catalog.GetProductByID(productID)
	if err != nil {
		return Availability{}, err
	}
	return s.availabilityOf(product)
}

func (s *InventoryService) availabilityOf(product models.Product) (Availability, error) {
	a := Availability{ProductID: product.ID, Tracked: product.StockManaged()}
	if !a.Tracked {
		return a, nil
	}
	rec, err := s.lookup(product.ID)
	if err != nil {
		return Availability{}, err
	}
	if rec != nil {
		a.Exists = true
		a.Quantity = rec.CurrentQuantity
	}
	return a, nil
}

// Adjust overrides the quantity of a stock-managed product. Negative values
// are accepted so drift can be corrected either way.
func (s *InventoryService) Adjust(productID string, newQuantity int) (*models.InventoryRecord, error) {
	product, err := s.catalog.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.StockManaged() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "product %s is not stock-managed", productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.repo.GetByProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.write(*rec, newQuantity, StockSourceManual)
}

// Decrement removes sold units. Sufficiency is not re-checked here; the cart
// validated quantities when they were built. Untracked products and products
// without a record are left alone.
func (s *InventoryService) Decrement(product models.Product, amount int) error {
	if !product.StockManaged() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup(product.ID)
	if err != nil {
		return err
	}
	if rec == nil {
		s.log.Warn().Str("product_id", product.ID).Msg("sold product has no inventory record")
		return nil
	}
	next := rec.CurrentQuantity - amount
	if next < 0 {
		s.log.Warn().Str("product_id", product.ID).Int("quantity", next).Msg("stock went negative")
	}
	_, err = s.write(*rec, next, StockSourceOrder)
	return err
}

// Increment adds delivered units to whatever the stock is at the moment of
// the call. A stock-managed product without a record gets one.
func (s *InventoryService) Increment(productID string, amount int) (*models.InventoryRecord, error) {
	product, err := s.catalog.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.StockManaged() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "product %s is not stock-managed", productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup(productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &models.InventoryRecord{ProductID: productID}
	}
	return s.write(*rec, rec.CurrentQuantity+amount, StockSourceRestock)
}

// List returns every stock-managed product with its stock, in catalog order.
func (s *InventoryService) List() ([]StockView, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	byProduct := make(map[string]models.InventoryRecord, len(records))
	for _, r := range records {
		byProduct[r.ProductID] = r
	}

	var views []StockView
	for _, p := range s.catalog.GetAllProducts() {
		if !p.StockManaged() {
			continue
		}
		rec, ok := byProduct[p.ID]
		views = append(views, StockView{
			Product:   p,
			Record:    rec,
			HasRecord: ok,
			Low:       ok && rec.IsLow(),
		})
	}
	return views, nil
}

// LowStock returns stock-managed products at or below their threshold.
func (s *InventoryService) LowStock() ([]StockView, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	low := make([]StockView, 0)
	for _, v := range all {
		if v.Low {
			low = append(low, v)
		}
	}
	return low, nil
}

// lookup returns nil, nil when the product has no record.
func (s *InventoryService) lookup(productID string) (*models.InventoryRecord, error) {
	rec, err := s.repo.GetByProductID(productID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read inventory for %s: %w", productID, err)
	}
	return rec, nil
}

// write must be called with s.mu held.
func (s *InventoryService) write(rec models.InventoryRecord, quantity int, source string) (*models.InventoryRecord, error) {
	old := rec.CurrentQuantity
	rec.CurrentQuantity = quantity
	rec.LastUpdated = s.clock.Now()
	if err := s.repo.Save(rec); err != nil {
		return nil, fmt.Errorf("failed to save inventory for %s: %w", rec.ProductID, err)
	}

	s.metrics.IncStockMovement(source)
	s.log.Info().
		Str("product_id", rec.ProductID).
		Str("source", source).
		Int("old_quantity", old).
		Int("new_quantity", quantity).
		Msg("inventory updated")
	publishEvent(s.log, s.publisher, EventInventoryAdjusted, InventoryAdjustedEvent{
		ProductID:   rec.ProductID,
		Source:      source,
		OldQuantity: old,
		NewQuantity: quantity,
	})
	return &rec, nil
}
