package services

import (
	"sync"
	"time"

	"bakery/internal/clock"
	"bakery/internal/models"
	"bakery/internal/policy"
	pkgerrors "bakery/pkg/errors"

	"github.com/rs/zerolog"
)

// GateStatus is the state of the time gates at an instant.
type GateStatus struct {
	Now            time.Time        `json:"now"`
	Simulated      bool             `json:"simulated"`
	AlcoholAllowed bool             `json:"alcohol_allowed"`
	EatInAllowed   bool             `json:"eat_in_allowed"`
	OrderType      models.OrderType `json:"order_type"`
}

// SessionService tracks the order type selected on the terminal and keeps it
// consistent with the eat-in gate as the clock moves.
type SessionService struct {
	mu        sync.Mutex
	orderType models.OrderType
	clock     *clock.Clock
	gates     policy.Gates
	log       zerolog.Logger
}

// NewSessionService starts a session in takeaway mode and subscribes to clk.
func NewSessionService(clk *clock.Clock, gates policy.Gates, log zerolog.Logger) *SessionService {
	s := &SessionService{
		orderType: models.OrderTypeTakeaway,
		clock:     clk,
		gates:     gates,
		log:       log.With().Str("component", "session").Logger(),
	}
	clk.Subscribe(s.onClockChange)
	return s
}

// OrderType returns the active order type.
func (s *SessionService) OrderType() models.OrderType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderType
}

// SelectOrderType switches the active order type. Eat-in is refused once the
// eat-in gate has closed.
func (s *SessionService) SelectOrderType(t models.OrderType) error {
	if t != models.OrderTypeEatIn && t != models.OrderTypeTakeaway {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown order type %q", t)
	}
	if t == models.OrderTypeEatIn && !s.gates.EatInAllowed(s.clock.Now()) {
		return pkgerrors.Newf(pkgerrors.CodePolicyViolation, "eat-in closes at %s", s.gates.EatInUntil).
			WithDetails(map[string]string{"allowed_until": s.gates.EatInUntil.String()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderType = t
	return nil
}

// Status evaluates both gates against the current instant.
func (s *SessionService) Status() GateStatus {
	now := s.clock.Now()
	return GateStatus{
		Now:            now,
		Simulated:      s.clock.IsSimulated(),
		AlcoholAllowed: s.gates.AlcoholAllowed(now),
		EatInAllowed:   s.gates.EatInAllowed(now),
		OrderType:      s.OrderType(),
	}
}

func (s *SessionService) onClockChange(now time.Time) {
	if s.gates.EatInAllowed(now) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orderType == models.OrderTypeEatIn {
		s.orderType = models.OrderTypeTakeaway
		s.log.Info().Time("now", now).Msg("eat-in closed, switched order type to takeaway")
	}
}
