package event

import (
	"context"
	"time"
)

const (
	routingKeyCustomerCreated     = "customer.created"
	routingKeyCustomerUpdated     = "customer.updated"
	routingKeyCustomerDeactivated = "customer.deactivated"
)

type CustomerEventPayload struct {
	CustomerID     string    `json:"customerId"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	FullName       string    `json:"fullName"`
	BusinessName   string    `json:"businessName,omitempty"`
	Email          string    `json:"email"`
	CustomerType   string    `json:"customerType"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CustomerEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type Publisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerEvent) error
	PublishCustomerDeactivated(ctx context.Context, event CustomerEvent) error
}

// NopPublisher drops every event. It is used when the broker is disabled.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) PublishCustomerCreated(context.Context, CustomerEvent) error     { return nil }
func (NopPublisher) PublishCustomerUpdated(context.Context, CustomerEvent) error     { return nil }
func (NopPublisher) PublishCustomerDeactivated(context.Context, CustomerEvent) error { return nil }
