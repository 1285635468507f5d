package handlers

import (
	"bakery/internal/models"
	"bakery/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// CartView is the cart as returned by every cart endpoint.
type CartView struct {
	Lines     []models.CartLine `json:"lines"`
	Total     int64             `json:"total"`
	ItemCount int               `json:"item_count"`
}

// CartHandler handles HTTP requests for the current cart.
type CartHandler struct {
	cart     *services.CartService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService, log zerolog.Logger) *CartHandler {
	return &CartHandler{cart: cart, validate: validator.New(), log: log}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleChangeQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
}

// AddItemRequest selects one more unit of a product.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ChangeQuantityRequest adjusts a line by Delta.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// HandleGetCart returns the cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.view())
}

// HandleAddItem adds one unit of a product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.log, err)
	}
	if _, err := h.cart.AddSelection(req.ProductID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.view())
}

// HandleChangeQuantity changes the quantity of a line.
func (h *CartHandler) HandleChangeQuantity(c *fiber.Ctx) error {
	var req ChangeQuantityRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.log, err)
	}
	if _, err := h.cart.ChangeQuantity(c.Params("productId"), req.Delta); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view())
}

// HandleRemoveItem removes a line. Removing an absent product succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	h.cart.RemoveSelection(c.Params("productId"))
	return c.JSON(h.view())
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.JSON(h.view())
}

func (h *CartHandler) view() CartView {
	lines := h.cart.Lines()
	v := CartView{Lines: lines}
	for _, l := range lines {
		v.Total += l.Subtotal()
		v.ItemCount += l.Quantity
	}
	return v
}
