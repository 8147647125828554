package customer

import (
	"errors"
	"fmt"

	"customer-service/internal/pkg/apperrors"
)

// Kind discriminates the failures the lifecycle service can report.
type Kind int

const (
	KindEmptyIdentifier Kind = iota + 1
	KindInvalidDocument
	KindNotFound
	KindAlreadyExists
	KindAlreadyInactive
	KindServiceFailure
)

func (k Kind) String() string {
	switch k {
	case KindEmptyIdentifier:
		return "EMPTY_IDENTIFIER"
	case KindInvalidDocument:
		return "INVALID_DOCUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindAlreadyInactive:
		return "ALREADY_INACTIVE"
	case KindServiceFailure:
		return "SERVICE_FAILURE"
	}
	return "UNKNOWN"
}

// Error is the single error type returned by the lifecycle service. The
// payload fields are populated according to Kind: DocumentType and
// DocumentNumber for KindAlreadyExists, CustomerID for KindAlreadyInactive,
// Cause for KindServiceFailure.
type Error struct {
	Kind           Kind
	Message        string
	CustomerID     string
	DocumentType   DocumentType
	DocumentNumber string
	Cause          error
}

// Sentinels for errors.Is; matching is by Kind only.
var (
	ErrEmptyIdentifier = &Error{Kind: KindEmptyIdentifier, Message: "empty customer identifier"}
	ErrInvalidDocument = &Error{Kind: KindInvalidDocument, Message: "invalid document"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "customer not found"}
	ErrAlreadyExists   = &Error{Kind: KindAlreadyExists, Message: "customer already exists"}
	ErrAlreadyInactive = &Error{Kind: KindAlreadyInactive, Message: "customer already inactive"}
	ErrServiceFailure  = &Error{Kind: KindServiceFailure, Message: "customer service failure"}
)

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	switch e.Kind {
	case KindEmptyIdentifier, KindInvalidDocument:
		return target == apperrors.ErrInvalidArgument
	case KindNotFound:
		return target == apperrors.ErrNotFound
	case KindAlreadyExists:
		return target == apperrors.ErrAlreadyExists || target == apperrors.ErrConflict
	case KindAlreadyInactive:
		return target == apperrors.ErrConflict
	case KindServiceFailure:
		return target == apperrors.ErrInternalServer
	}
	return false
}

// Classified reports whether err carries a business kind that must reach the
// caller unchanged.
func Classified(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind != KindServiceFailure
}

// KindOf returns the Kind carried by err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func NewEmptyIdentifierError(message string) error {
	return &Error{Kind: KindEmptyIdentifier, Message: message}
}

func NewInvalidDocumentError(message string) error {
	return &Error{Kind: KindInvalidDocument, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewAlreadyExistsError(docType DocumentType, number string) error {
	return &Error{
		Kind:           KindAlreadyExists,
		Message:        fmt.Sprintf("customer already exists with document %s: %s", docType, number),
		DocumentType:   docType,
		DocumentNumber: number,
	}
}

func NewAlreadyInactiveError(id string) error {
	return &Error{
		Kind:       KindAlreadyInactive,
		Message:    fmt.Sprintf("customer with id %s is already inactive", id),
		CustomerID: id,
	}
}

func NewServiceFailure(message string, cause error) error {
	return &Error{Kind: KindServiceFailure, Message: message, Cause: cause}
}
