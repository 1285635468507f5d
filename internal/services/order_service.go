package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"bakery/internal/clock"
	"bakery/internal/metrics"
	"bakery/internal/models"
	"bakery/internal/repositories"
	pkgerrors "bakery/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderService finalizes carts into orders.
type OrderService struct {
	orderRepo     repositories.OrderRepository
	cart          *CartService
	inventory     *InventoryService
	clock         *clock.Clock
	publisher     EventPublisher
	metrics       *metrics.POSMetrics
	log           zerolog.Logger
	checkoutDelay time.Duration
	processing    atomic.Bool
	sleep         func(time.Duration)
}

// NewOrderService creates a new OrderService. checkoutDelay is an artificial
// pause before the order is committed, mimicking a card terminal round trip.
func NewOrderService(orderRepo repositories.OrderRepository, cart *CartService, inventory *InventoryService, clk *clock.Clock, publisher EventPublisher, m *metrics.POSMetrics, checkoutDelay time.Duration, log zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cart:          cart,
		inventory:     inventory,
		clock:         clk,
		publisher:     publisher,
		metrics:       m,
		log:           log.With().Str("component", "orders").Logger(),
		checkoutDelay: checkoutDelay,
		sleep:         time.Sleep,
	}
}

// GetAllOrders returns the ledger, most recent first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// Processing reports whether a checkout is in flight.
func (s *OrderService) Processing() bool {
	return s.processing.Load()
}

// PlaceOrder turns the cart into an order paid with received. The change may
// be negative; underpayment is not checked.
func (s *OrderService) PlaceOrder(orderType models.OrderType, method models.PaymentMethod, received int64) (*models.Order, error) {
	return s.placeOrder(orderType, method, func(int64) int64 { return received })
}

// PlaceExactCashOrder places a cash order where the amount received equals the total.
func (s *OrderService) PlaceExactCashOrder(orderType models.OrderType) (*models.Order, error) {
	return s.placeOrder(orderType, models.PaymentMethodCash, func(total int64) int64 { return total })
}

func (s *OrderService) placeOrder(orderType models.OrderType, method models.PaymentMethod, receivedFor func(total int64) int64) (*models.Order, error) {
	if orderType != models.OrderTypeEatIn && orderType != models.OrderTypeTakeaway {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown order type %q", orderType)
	}
	if method != models.PaymentMethodCash {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported payment method %q", method)
	}
	if !s.processing.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeCheckoutInProgress, "another checkout is being processed")
	}
	defer s.processing.Store(false)

	started := time.Now()
	if s.checkoutDelay > 0 {
		s.sleep(s.checkoutDelay)
	}

	var order models.Order
	err := s.cart.Checkout(func(lines []models.CartLine) error {
		total := totalOf(lines)
		received := receivedFor(total)
		order = models.Order{
			ID:              "ORD-" + uuid.New().String(),
			OrderTime:       s.clock.Now(),
			OrderType:       orderType,
			Items:           make([]models.OrderItem, 0, len(lines)),
			TotalAmount:     total,
			PaymentMethod:   method,
			PaymentReceived: received,
			ChangeAmount:    received - total,
		}
		for _, l := range lines {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: l.Product.ID,
				Name:      l.Product.Name,
				Quantity:  l.Quantity,
				UnitPrice: l.Product.Price,
			})
		}

		for _, l := range lines {
			if err := s.inventory.Decrement(l.Product, l.Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock for %s: %w", l.Product.ID, err)
			}
		}
		if err := s.orderRepo.Append(order); err != nil {
			return fmt.Errorf("failed to record order: %w", err)
		}
		return nil
	})
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeEmptyCart) {
			s.log.Debug().Msg("checkout refused: cart is empty")
		} else {
			s.log.Error().Err(err).Msg("checkout failed")
		}
		return nil, err
	}

	s.metrics.ObserveOrder(string(order.OrderType), order.TotalAmount, time.Since(started))
	s.log.Info().
		Str("order_id", order.ID).
		Str("order_type", string(order.OrderType)).
		Int64("total", order.TotalAmount).
		Int("items", len(order.Items)).
		Time("order_time", order.OrderTime).
		Msg("order committed")
	publishEvent(s.log, s.publisher, EventOrderPlaced, order)

	return &order, nil
}
