package handlers

import (
	"bakery/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// InventoryHandler handles HTTP requests for the inventory ledger.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{service: service, validate: validator.New(), log: log}
}

// RegisterRoutes registers the inventory routes.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/", h.HandleList)
	inventoryRoutes.Get("/low", h.HandleLowStock)
	inventoryRoutes.Get("/:productId/availability", h.HandleAvailability)
	inventoryRoutes.Put("/:productId", h.HandleAdjust)
}

// AdjustRequest overrides the stock of a product.
type AdjustRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// HandleList returns every stock-managed product with its stock.
func (h *InventoryHandler) HandleList(c *fiber.Ctx) error {
	views, err := h.service.List()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(views)
}

// HandleLowStock returns products at or below their threshold.
func (h *InventoryHandler) HandleLowStock(c *fiber.Ctx) error {
	views, err := h.service.LowStock()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(views)
}

// HandleAvailability reports whether a product can be sold.
func (h *InventoryHandler) HandleAvailability(c *fiber.Ctx) error {
	avail, err := h.service.Availability(c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(avail)
}

// HandleAdjust sets the stock of a product to an absolute value.
func (h *InventoryHandler) HandleAdjust(c *fiber.Ctx) error {
	var req AdjustRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.log, err)
	}
	rec, err := h.service.Adjust(c.Params("productId"), *req.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(rec)
}
