package handlers

import (
	"bakery/internal/models"
	"bakery/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and the order ledger.
type OrderHandler struct {
	service  *services.OrderService
	session  *services.SessionService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, session *services.SessionService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		session:  session,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the checkout and order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// CheckoutRequest finalizes the cart. Without Received the customer is
// assumed to pay the exact amount.
type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"omitempty,oneof=cash"`
	Received      *int64               `json:"received" validate:"omitempty,gte=0"`
}

// HandleCheckout turns the cart into an order using the selected order type.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if len(c.Body()) > 0 {
		if err := bind(c, h.validate, &req); err != nil {
			return writeError(c, h.log, err)
		}
	}

	orderType := h.session.OrderType()
	var (
		order *models.Order
		err   error
	)
	if req.Received == nil {
		order, err = h.service.PlaceExactCashOrder(orderType)
	} else {
		method := req.PaymentMethod
		if method == "" {
			method = models.PaymentMethodCash
		}
		order, err = h.service.PlaceOrder(orderType, method, *req.Received)
	}
	if err != nil {
		return writeError(c, h.log, err)
	}

	staffID, _ := c.Locals("staff_id").(string)
	h.log.Info().Str("order_id", order.ID).Str("staff_id", staffID).Msg("checkout completed")
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders returns the ledger, most recent first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(order)
}
