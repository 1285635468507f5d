package rabbitmq

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	published  []amqp.Publishing
	keys       []string
	deliveries chan amqp.Delivery
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type ackResult struct {
	acked   bool
	requeue bool
}

type fakeAcknowledger struct {
	results chan ackResult
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.results <- ackResult{acked: true}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.results <- ackResult{requeue: requeue}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.results <- ackResult{requeue: requeue}
	return nil
}

func TestNewClient_DeclaresDefaultQueue(t *testing.T) {
	ch := &fakeChannel{}
	c, err := newClient(ch, "", zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{DefaultQueue}, ch.declared)
	require.NoError(t, c.Close())
	assert.True(t, ch.closed)
}

func TestClient_Publish(t *testing.T) {
	ch := &fakeChannel{}
	c, err := newClient(ch, "bakery_events", zerolog.Nop())
	require.NoError(t, err)
	fixed := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	err = c.Publish("order.placed", map[string]any{"order_id": "ORD-1", "total_amount": 600})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "bakery_events", ch.keys[0])
	assert.Equal(t, "order.placed", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Body, &env))
	assert.Equal(t, "order.placed", env.EventType)
	assert.Equal(t, msg.MessageId, env.EventID)
	assert.True(t, fixed.Equal(env.OccurredAt))
	assert.JSONEq(t, `{"order_id":"ORD-1","total_amount":600}`, string(env.Payload))
}

func TestClient_Publish_Errors(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	c, err := newClient(ch, "", zerolog.Nop())
	require.NoError(t, err)

	err = c.Publish("order.placed", map[string]any{})
	assert.ErrorContains(t, err, "channel closed")

	err = c.Publish("order.placed", func() {})
	assert.ErrorContains(t, err, "failed to marshal")
}

func TestClient_ConsumeEvents(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 3)}
	c, err := newClient(ch, "", zerolog.Nop())
	require.NoError(t, err)

	ack := &fakeAcknowledger{results: make(chan ackResult, 3)}
	env, err := NewEnvelope("restock.delivered", map[string]int{"quantity": 10}, time.Now())
	require.NoError(t, err)
	good, err := json.Marshal(env)
	require.NoError(t, err)
	failing, err := NewEnvelope("fail", nil, time.Now())
	require.NoError(t, err)
	bad, err := json.Marshal(failing)
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []string
	require.NoError(t, c.ConsumeEvents(func(e Envelope) error {
		mu.Lock()
		seen = append(seen, e.EventType)
		mu.Unlock()
		if e.EventType == "fail" {
			return errors.New("handler failed")
		}
		return nil
	}))

	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: good}
	assert.Equal(t, ackResult{acked: true}, <-ack.results)

	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: bad}
	assert.Equal(t, ackResult{requeue: true}, <-ack.results)

	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("{not json")}
	assert.Equal(t, ackResult{requeue: false}, <-ack.results)
	close(ch.deliveries)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"restock.delivered", "fail"}, seen)
}
