package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// DefaultQueue is the durable queue POS events are published to.
const DefaultQueue = "pos_events"

// Envelope wraps every event published by the terminal.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into an envelope stamped with at.
func NewEnvelope(eventType string, payload any, at time.Time) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		OccurredAt: at.UTC(),
		Payload:    body,
	}, nil
}

// channel is the subset of *amqp.Channel used by Client.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel channel
	queue   string
	mu      sync.Mutex // guards channel publishes
	log     zerolog.Logger
	now     func() time.Time
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c, err := newClient(ch, cfg.Queue, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func newClient(ch channel, queue string, log zerolog.Logger) (*Client, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
	}

	log = log.With().Str("component", "rabbitmq").Str("queue", queue).Logger()
	log.Info().Msg("RabbitMQ client connected and queue declared")
	return &Client{
		channel: ch,
		queue:   queue,
		log:     log,
		now:     time.Now,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON envelope to the event queue. The AMQP type
// property carries eventType so consumers can route without decoding.
func (c *Client) Publish(eventType string, payload any) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	env, err := NewEnvelope(eventType, payload, c.now())
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // exchange: default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.EventID,
			Type:         eventType,
			Timestamp:    env.OccurredAt,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	c.log.Debug().Str("event", eventType).Str("event_id", env.EventID).Msg("event published")
	return nil
}

// ConsumeEvents decodes envelopes from the event queue and hands them to
// handler on a background goroutine. Messages that fail to decode are
// dropped; handler errors requeue the message.
func (c *Client) ConsumeEvents(handler func(Envelope) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.handle(msg, handler)
		}
	}()
	return nil
}

func (c *Client) handle(msg amqp.Delivery, handler func(Envelope) error) {
	var env Envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		c.log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("dropping undecodable message")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.log.Error().Err(nackErr).Msg("failed to nack message")
		}
		return
	}

	if err := handler(env); err != nil {
		c.log.Error().Err(err).Str("event_id", env.EventID).Msg("error processing event, requeueing")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			c.log.Error().Err(nackErr).Msg("failed to nack message")
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.log.Error().Err(ackErr).Msg("failed to ack message")
	}
}
