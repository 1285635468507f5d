package handlers

import (
	"time"

	"bakery/internal/models"
	"bakery/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RestockHandler handles factory restock requests.
type RestockHandler struct {
	service  *services.RestockService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewRestockHandler creates a new RestockHandler.
func NewRestockHandler(service *services.RestockService, log zerolog.Logger) *RestockHandler {
	return &RestockHandler{service: service, validate: validator.New(), log: log}
}

// RegisterRoutes registers the restock routes.
func (h *RestockHandler) RegisterRoutes(router fiber.Router) {
	restockRoutes := router.Group("/restock")
	restockRoutes.Get("/", h.HandleList)
	restockRoutes.Post("/", h.HandleCreate)
	restockRoutes.Get("/recommendation/:productId", h.HandleRecommendation)
	restockRoutes.Post("/:id/cancel", h.HandleCancel)
	restockRoutes.Post("/:id/deliver", h.HandleDeliver)
}

// CreateRestockRequest asks the factory for more of a product. A zero
// quantity is raised to 1; a missing ETA defaults to a few minutes from now.
type CreateRestockRequest struct {
	ProductID string     `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity"`
	ETA       *time.Time `json:"eta_at"`
	Note      string     `json:"note" validate:"max=200"`
}

// RestockList is the response of the list endpoint.
type RestockList struct {
	Requests []models.RestockRequest `json:"requests"`
	Pending  int                     `json:"pending"`
}

// HandleList returns all requests, most recent first.
func (h *RestockHandler) HandleList(c *fiber.Ctx) error {
	requests, err := h.service.List()
	if err != nil {
		return writeError(c, h.log, err)
	}
	pending, err := h.service.PendingCount()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(RestockList{Requests: requests, Pending: pending})
}

// HandleCreate opens a new PENDING request.
func (h *RestockHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRestockRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.log, err)
	}
	var eta time.Time
	if req.ETA != nil {
		eta = *req.ETA
	}
	created, err := h.service.CreateRequest(req.ProductID, req.Quantity, eta, req.Note)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleCancel cancels a PENDING request.
func (h *RestockHandler) HandleCancel(c *fiber.Ctx) error {
	req, err := h.service.Cancel(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(req)
}

// HandleDeliver confirms a delivery and adds the quantity to stock.
func (h *RestockHandler) HandleDeliver(c *fiber.Ctx) error {
	req, err := h.service.ConfirmDelivery(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(req)
}

// HandleRecommendation suggests how many units to order.
func (h *RestockHandler) HandleRecommendation(c *fiber.Ctx) error {
	productID := c.Params("productId")
	qty, err := h.service.RecommendedQuantity(productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"product_id": productID, "quantity": qty})
}
