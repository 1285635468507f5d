// Package policy holds the time-of-day sales restrictions of the shop.
package policy

import (
	"time"

	"bakery/internal/config"
)

// Gates evaluates the alcohol and eat-in restrictions for an instant.
// Nothing is cached: every call derives the answer from the given time.
type Gates struct {
	AlcoholFrom config.TimeOfDay
	EatInUntil  config.TimeOfDay
}

// DefaultGates returns the shop's standard hours: alcohol from 17:00 and
// eat-in until 20:30.
func DefaultGates() Gates {
	return Gates{
		AlcoholFrom: config.TimeOfDay{Hour: 17},
		EatInUntil:  config.TimeOfDay{Hour: 20, Minute: 30},
	}
}

// AlcoholAllowed reports whether alcoholic products may be sold at now.
func (g Gates) AlcoholAllowed(now time.Time) bool {
	return !before(now, g.AlcoholFrom)
}

// EatInAllowed reports whether eat-in orders may be taken at now. The gate
// closes at the cutoff minute sharp.
func (g Gates) EatInAllowed(now time.Time) bool {
	return before(now, g.EatInUntil)
}

func before(now time.Time, tod config.TimeOfDay) bool {
	return now.Hour() < tod.Hour || (now.Hour() == tod.Hour && now.Minute() < tod.Minute)
}
