package services

import (
	"github.com/rs/zerolog"
)

// Event types published to the message broker.
const (
	EventOrderPlaced       = "order.placed"
	EventInventoryAdjusted = "inventory.adjusted"
	EventRestockRequested  = "restock.requested"
	EventRestockDelivered  = "restock.delivered"
	EventRestockCancelled  = "restock.cancelled"
)

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(eventType string, payload any) error
}

// publishEvent is best effort: a broker outage never fails a sale.
func publishEvent(log zerolog.Logger, pub EventPublisher, eventType string, payload any) {
	if pub == nil {
		log.Debug().Str("event", eventType).Msg("event publisher not configured, skipping")
		return
	}
	if err := pub.Publish(eventType, payload); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
