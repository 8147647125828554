package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/traceid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type declaredExchange struct {
	name    string
	kind    string
	durable bool
}

type sentMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declareErr error
	publishErr error
	declared   []declaredExchange
	sent       []sentMessage
	closed     int
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	c.declared = append(c.declared, declaredExchange{name: name, kind: kind, durable: durable})
	return c.declareErr
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.sent = append(c.sent, sentMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed++
	return nil
}

type fakeChannelSource struct {
	ch      *fakeChannel
	openErr error
	opened  int
}

func (s *fakeChannelSource) Channel() (Channel, error) {
	s.opened++
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.ch, nil
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func sampleEvent() CustomerEvent {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return CustomerEvent{
		Timestamp: ts,
		Payload: CustomerEventPayload{
			CustomerID:     "65f1c0ffee",
			DocumentType:   "DNI",
			DocumentNumber: "12345678",
			FullName:       "Juan Perez",
			Email:          "juan.perez@email.com",
			CustomerType:   "PERSONAL",
			Status:         "ACTIVE",
			CreatedAt:      ts,
			UpdatedAt:      ts,
		},
	}
}

func TestNewRabbitMQEventPublisher(t *testing.T) {
	t.Run("nil connection", func(t *testing.T) {
		pub, err := NewRabbitMQEventPublisher(nil, "customers", discardLogger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
	})

	t.Run("empty exchange", func(t *testing.T) {
		src := &fakeChannelSource{ch: &fakeChannel{}}
		pub, err := newPublisher(src, "", discardLogger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ exchange name cannot be empty")
		assert.Zero(t, src.opened)
	})

	t.Run("declares durable topic exchange", func(t *testing.T) {
		ch := &fakeChannel{}
		pub, err := newPublisher(&fakeChannelSource{ch: ch}, "customers", discardLogger)
		require.NoError(t, err)
		require.NotNil(t, pub)
		assert.Equal(t, []declaredExchange{{name: "customers", kind: amqp.ExchangeTopic, durable: true}}, ch.declared)
		assert.Equal(t, 1, ch.closed)
	})

	t.Run("declare failure", func(t *testing.T) {
		declareErr := errors.New("access refused")
		ch := &fakeChannel{declareErr: declareErr}
		pub, err := newPublisher(&fakeChannelSource{ch: ch}, "customers", discardLogger)
		assert.Nil(t, pub)
		assert.ErrorIs(t, err, declareErr)
		assert.Equal(t, 1, ch.closed)
	})

	t.Run("channel unavailable", func(t *testing.T) {
		openErr := errors.New("channel/connection is not open")
		pub, err := newPublisher(&fakeChannelSource{openErr: openErr}, "customers", discardLogger)
		assert.Nil(t, pub)
		assert.ErrorIs(t, err, openErr)
	})
}

func TestRabbitMQEventPublisherRoutesEachEventKind(t *testing.T) {
	ch := &fakeChannel{}
	pub, err := newPublisher(&fakeChannelSource{ch: ch}, "customers", discardLogger)
	require.NoError(t, err)

	ctx := traceid.NewContext(context.Background())
	evt := sampleEvent()
	require.NoError(t, pub.PublishCustomerCreated(ctx, evt))
	require.NoError(t, pub.PublishCustomerUpdated(ctx, evt))
	require.NoError(t, pub.PublishCustomerDeactivated(ctx, evt))

	require.Len(t, ch.sent, 3)
	keys := []string{ch.sent[0].key, ch.sent[1].key, ch.sent[2].key}
	assert.Equal(t, []string{"customer.created", "customer.updated", "customer.deactivated"}, keys)

	first := ch.sent[0]
	assert.Equal(t, "customers", first.exchange)
	assert.Equal(t, "application/json", first.msg.ContentType)
	assert.Equal(t, amqp.Persistent, first.msg.DeliveryMode)
	assert.Equal(t, "customer-service", first.msg.AppId)
	assert.Equal(t, "customer.created", first.msg.Type)
	assert.Equal(t, evt.Timestamp, first.msg.Timestamp)
	assert.Equal(t, traceid.FromContext(ctx), first.msg.CorrelationId)
	assert.NotEmpty(t, first.msg.MessageId)
	assert.NotEqual(t, first.msg.MessageId, ch.sent[1].msg.MessageId)

	var decoded CustomerEvent
	require.NoError(t, json.Unmarshal(first.msg.Body, &decoded))
	assert.Equal(t, evt, decoded)

	// one channel for the declaration plus one per publish
	assert.Equal(t, 4, ch.closed)
}

func TestRabbitMQEventPublisherWhenPublishFails(t *testing.T) {
	publishErr := errors.New("connection reset by peer")
	ch := &fakeChannel{}
	src := &fakeChannelSource{ch: ch}
	pub, err := newPublisher(src, "customers", discardLogger)
	require.NoError(t, err)

	ch.publishErr = publishErr
	err = pub.PublishCustomerUpdated(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, publishErr)
	assert.Contains(t, err.Error(), "customer.updated")
	assert.Equal(t, 2, ch.closed)
}

func TestRabbitMQEventPublisherWhenChannelCannotOpen(t *testing.T) {
	src := &fakeChannelSource{ch: &fakeChannel{}}
	pub, err := newPublisher(src, "customers", discardLogger)
	require.NoError(t, err)

	src.openErr = errors.New("channel/connection is not open")
	err = pub.PublishCustomerCreated(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, src.openErr)
	assert.Empty(t, src.ch.sent)
}

func TestNopPublisher(t *testing.T) {
	var pub Publisher = NopPublisher{}
	ctx := context.Background()
	evt := CustomerEvent{Timestamp: time.Now()}

	assert.NoError(t, pub.PublishCustomerCreated(ctx, evt))
	assert.NoError(t, pub.PublishCustomerUpdated(ctx, evt))
	assert.NoError(t, pub.PublishCustomerDeactivated(ctx, evt))
}

func TestCustomerEventJSON(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	evt := CustomerEvent{
		Timestamp: ts,
		Payload: CustomerEventPayload{
			CustomerID:     "65f1c0ffee",
			DocumentType:   "DNI",
			DocumentNumber: "12345678",
			FullName:       "Juan Perez",
			Email:          "juan.perez@email.com",
			CustomerType:   "PERSONAL",
			Status:         "INACTIVE",
			CreatedAt:      ts,
			UpdatedAt:      ts,
		},
	}

	body, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	payload, ok := decoded["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "65f1c0ffee", payload["customerId"])
	assert.Equal(t, "INACTIVE", payload["status"])
	assert.NotContains(t, payload, "businessName")
}
