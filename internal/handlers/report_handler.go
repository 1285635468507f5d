package handlers

import (
	"bakery/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ReportHandler serves sales projections.
type ReportHandler struct {
	service *services.ReportService
	log     zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// RegisterRoutes registers the report routes.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/daily", h.HandleDaily)
	reportRoutes.Get("/products", h.HandleProducts)
	reportRoutes.Get("/dashboard", h.HandleDashboard)
}

// HandleDaily returns per-day totals.
func (h *ReportHandler) HandleDaily(c *fiber.Ctx) error {
	daily, err := h.service.DailySummary()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(daily)
}

// HandleProducts returns per-product totals.
func (h *ReportHandler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.service.ProductAnalysis()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleDashboard returns today's overview.
func (h *ReportHandler) HandleDashboard(c *fiber.Ctx) error {
	dash, err := h.service.Dashboard()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dash)
}
