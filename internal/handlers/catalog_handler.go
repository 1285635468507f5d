package handlers

import (
	"bakery/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// CatalogHandler serves the product catalog.
type CatalogHandler struct {
	service *services.CatalogService
	log     zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
	router.Get("/categories", h.HandleGetCategories)
}

// HandleGetProducts lists products, optionally filtered by ?search= and ?category=.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Filter(c.Query("search"), c.Query("category")))
}

// HandleGetProductByID returns a single product.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleGetCategories lists all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.GetCategories())
}
