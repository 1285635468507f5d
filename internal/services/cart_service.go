package services

import (
	"sync"

	"bakery/internal/clock"
	"bakery/internal/metrics"
	"bakery/internal/models"
	"bakery/internal/policy"
	pkgerrors "bakery/pkg/errors"

	"github.com/rs/zerolog"
)

// Cart rejection reasons, used as metric labels.
const (
	rejectPolicy   = "policy_violation"
	rejectStock    = "stock_exhausted"
	rejectQuantity = "invalid_quantity"
)

// CartService is the cart of the current customer. Lines keep insertion order
// and there is at most one line per product.
type CartService struct {
	mu        sync.Mutex
	lines     []models.CartLine
	catalog   *CatalogService
	inventory *InventoryService
	clock     *clock.Clock
	gates     policy.Gates
	metrics   *metrics.POSMetrics
	log       zerolog.Logger
}

// NewCartService creates an empty cart.
func NewCartService(catalog *CatalogService, inventory *InventoryService, clk *clock.Clock, gates policy.Gates, m *metrics.POSMetrics, log zerolog.Logger) *CartService {
	return &CartService{
		catalog:   catalog,
		inventory: inventory,
		clock:     clk,
		gates:     gates,
		metrics:   m,
		log:       log.With().Str("component", "cart").Logger(),
	}
}

// AddSelection puts one more unit of a product in the cart.
func (s *CartService) AddSelection(productID string) (models.CartLine, error) {
	product, err := s.catalog.GetProductByID(productID)
	if err != nil {
		return models.CartLine{}, err
	}

	if product.IsAlcoholic && !s.gates.AlcoholAllowed(s.clock.Now()) {
		return models.CartLine{}, s.reject(rejectPolicy, pkgerrors.Newf(pkgerrors.CodePolicyViolation,
			"alcohol can only be sold from %s", s.gates.AlcoholFrom).
			WithDetails(map[string]string{"product_id": productID, "allowed_from": s.gates.AlcoholFrom.String()}))
	}

	avail, err := s.inventory.Availability(productID)
	if err != nil {
		return models.CartLine{}, err
	}
	if avail.Tracked && (!avail.Exists || avail.Quantity <= 0) {
		return models.CartLine{}, s.reject(rejectStock, stockExhausted(product, avail, 1))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		want := s.lines[i].Quantity + 1
		if !avail.CanSell(want) {
			return models.CartLine{}, s.reject(rejectStock, stockExhausted(product, avail, want))
		}
		s.lines[i].Quantity = want
		return s.lines[i], nil
	}

	line := models.CartLine{Product: product, Quantity: 1}
	s.lines = append(s.lines, line)
	return line, nil
}

// ChangeQuantity adds delta to a line. A result below 1 is rejected and the
// line is kept; removing a line is only done by RemoveSelection.
func (s *CartService) ChangeQuantity(productID string, delta int) (models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return models.CartLine{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s is not in the cart", productID)
	}
	line := s.lines[i]
	want := line.Quantity + delta
	if want <= 0 {
		return line, s.reject(rejectQuantity, pkgerrors.Newf(pkgerrors.CodeInvalidQuantity,
			"quantity of %s cannot go below 1", line.Product.Name).
			WithDetails(map[string]int{"quantity": line.Quantity, "delta": delta}))
	}

	if line.Product.StockManaged() {
		avail, err := s.inventory.Availability(productID)
		if err != nil {
			return line, err
		}
		if !avail.CanSell(want) {
			return line, s.reject(rejectStock, stockExhausted(line.Product, avail, want))
		}
	}

	s.lines[i].Quantity = want
	return s.lines[i], nil
}

// RemoveSelection deletes a line. Removing an absent product does nothing.
func (s *CartService) RemoveSelection(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a copy of the cart in insertion order.
func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLine{}, s.lines...)
}

// Total is the sum of price times quantity.
func (s *CartService) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.lines)
}

// ItemCount is the sum of quantities.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Checkout runs commit with the current lines while holding the cart. The
// cart is emptied only when commit succeeds. An empty cart is refused without
// calling commit.
func (s *CartService) Checkout(commit func(lines []models.CartLine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	if err := commit(append([]models.CartLine(nil), s.lines...)); err != nil {
		return err
	}
	s.lines = nil
	return nil
}

func (s *CartService) indexOf(productID string) int {
	for i, l := range s.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *CartService) reject(reason string, err *pkgerrors.Error) error {
	s.metrics.IncCartRejection(reason)
	s.log.Debug().Str("reason", reason).Msg(err.Message())
	return err
}

func totalOf(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

func stockExhausted(p models.Product, avail Availability, requested int) *pkgerrors.Error {
	return pkgerrors.Newf(pkgerrors.CodeStockExhausted, "%s is out of stock", p.Name).
		WithDetails(map[string]any{
			"product_id": p.ID,
			"available":  avail.Quantity,
			"requested":  requested,
		})
}
