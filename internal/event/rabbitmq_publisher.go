package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/traceid"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "customer-service"

// Channel is the part of *amqp.Channel the publisher relies on.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// ChannelSource opens a fresh channel per publish.
type ChannelSource interface {
	Channel() (Channel, error)
}

type connectionSource struct {
	conn *amqp.Connection
}

func (s connectionSource) Channel() (Channel, error) {
	ch, err := s.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

type RabbitMQEventPublisher struct {
	channels ChannelSource
	exchange string
	logger   *slog.Logger
}

var _ Publisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, errors.New("RabbitMQ connection cannot be nil")
	}
	return newPublisher(connectionSource{conn: conn}, exchangeName, logger)
}

// newPublisher declares the durable topic exchange customer events are routed through.
func newPublisher(channels ChannelSource, exchange string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if exchange == "" {
		return nil, errors.New("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	ch, err := channels.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel for exchange %q: %w", exchange, err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	logger.Info("Customer events exchange declared", "exchange", exchange, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		channels: channels,
		exchange: exchange,
		logger:   logger.With("component", "CustomerEventPublisher", "exchange", exchange),
	}, nil
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, evt CustomerEvent) error {
	return p.publish(ctx, routingKeyCustomerCreated, evt)
}

func (p *RabbitMQEventPublisher) PublishCustomerUpdated(ctx context.Context, evt CustomerEvent) error {
	return p.publish(ctx, routingKeyCustomerUpdated, evt)
}

func (p *RabbitMQEventPublisher) PublishCustomerDeactivated(ctx context.Context, evt CustomerEvent) error {
	return p.publish(ctx, routingKeyCustomerDeactivated, evt)
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, evt CustomerEvent) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey), slog.String("customerID", evt.Payload.CustomerID))

	body, err := json.Marshal(evt)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to encode customer event", slog.Any("error", err))
		return fmt.Errorf("encode %s event: %w", routingKey, err)
	}

	ch, err := p.channels.Channel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: traceid.FromContext(ctx),
		Type:          routingKey,
		Timestamp:     evt.Timestamp,
		AppId:         publisherAppID,
		Body:          body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish customer event", slog.Any("error", err))
		return fmt.Errorf("publish %s event: %w", routingKey, err)
	}

	logCtx.DebugContext(ctx, "Customer event published", slog.String("messageID", msg.MessageId), slog.Int("bodySize", len(body)))
	return nil
}
