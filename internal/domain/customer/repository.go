package customer

import (
	"context"
	"errors"
)

// ErrNoRecord is returned by Repository lookups that match nothing.
var ErrNoRecord = errors.New("customer record not found")

type Repository interface {
	FindAll(ctx context.Context) ([]*Customer, error)

	FindByID(ctx context.Context, id string) (*Customer, error)

	FindByDocument(ctx context.Context, docType DocumentType, number string) (*Customer, error)

	FindByDocumentNumber(ctx context.Context, number string) (*Customer, error)

	// Save inserts when ID is empty and replaces otherwise. The returned
	// record carries the assigned ID.
	Save(ctx context.Context, customer *Customer) (*Customer, error)

	DeleteByID(ctx context.Context, id string) error
}
