package handlers

import (
	"time"

	"bakery/internal/clock"
	"bakery/internal/models"
	"bakery/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// SessionHandler exposes the order type selection, the time gates and the
// terminal clock.
type SessionHandler struct {
	session  *services.SessionService
	clock    *clock.Clock
	validate *validator.Validate
	log      zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(session *services.SessionService, clk *clock.Clock, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{session: session, clock: clk, validate: validator.New(), log: log}
}

// RegisterRoutes registers the session and clock routes.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/session", h.HandleGetStatus)
	router.Put("/session/order-type", h.HandleSelectOrderType)

	clockRoutes := router.Group("/clock")
	clockRoutes.Get("/", h.HandleGetClock)
	clockRoutes.Put("/simulate", h.HandleSimulate)
	clockRoutes.Delete("/simulate", h.HandleReset)
}

// OrderTypeRequest selects eat-in or takeaway.
type OrderTypeRequest struct {
	OrderType models.OrderType `json:"order_type" validate:"required"`
}

// SimulateRequest pins the clock to HH:MM today.
type SimulateRequest struct {
	Hour   *int `json:"hour" validate:"required,min=0,max=23"`
	Minute *int `json:"minute" validate:"required,min=0,max=59"`
}

// ClockView is the terminal clock state.
type ClockView struct {
	Now       time.Time `json:"now"`
	Simulated bool      `json:"simulated"`
	Location  string    `json:"location"`
}

// HandleGetStatus returns the gates and the selected order type.
func (h *SessionHandler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.session.Status())
}

// HandleSelectOrderType switches between eat-in and takeaway.
func (h *SessionHandler) HandleSelectOrderType(c *fiber.Ctx) error {
	var req OrderTypeRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.session.SelectOrderType(req.OrderType); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.session.Status())
}

// HandleGetClock returns the current instant.
func (h *SessionHandler) HandleGetClock(c *fiber.Ctx) error {
	return c.JSON(h.clockView())
}

// HandleSimulate pins the clock.
func (h *SessionHandler) HandleSimulate(c *fiber.Ctx) error {
	var req SimulateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.clock.Simulate(*req.Hour, *req.Minute); err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Int("hour", *req.Hour).Int("minute", *req.Minute).Msg("clock simulated")
	return c.JSON(h.clockView())
}

// HandleReset returns the clock to live mode.
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	h.clock.Reset()
	h.log.Info().Msg("clock reset to live mode")
	return c.JSON(h.clockView())
}

func (h *SessionHandler) clockView() ClockView {
	return ClockView{
		Now:       h.clock.Now(),
		Simulated: h.clock.IsSimulated(),
		Location:  h.clock.Location().String(),
	}
}
