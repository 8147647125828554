package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"customer-service/internal/event"
	"customer-service/internal/infrastructure/monitoring"
)

// Service is the inbound port of the customer lifecycle.
type Service interface {
	FindAll(ctx context.Context) (ListResponse, error)
	FindByID(ctx context.Context, id string) (ListResponse, error)
	Save(ctx context.Context, req Request) (OperationResponse, error)
	Update(ctx context.Context, req Request) (OperationResponse, error)
	Deactivate(ctx context.Context, id string) (OperationResponse, error)
	FindByDocumentTypeAndNumber(ctx context.Context, docType DocumentType, number string) (ListResponse, error)
	FindByDocumentNumber(ctx context.Context, number string) (ListResponse, error)
}

var _ Service = (*customerService)(nil)

type Option func(*customerService)

// WithClock replaces the time source used to stamp createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *customerService) {
		if now != nil {
			s.now = now
		}
	}
}

type customerService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewCustomerService(repo Repository, pub event.Publisher, logger *slog.Logger, opts ...Option) Service {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if pub == nil {
		pub = event.NopPublisher{}
	}

	s := &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
		now:    defaultClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stored timestamps keep millisecond precision, so stamps are truncated to
// survive a store round trip unchanged.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *customerService) FindAll(ctx context.Context) (ListResponse, error) {
	s.logger.DebugContext(ctx, "Attempting to list active customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		s.observe(opFindAll, err)
		return ListResponse{}, fmt.Errorf("failed to list customers: %w", err)
	}

	active := make([]*Customer, 0, len(customers))
	for _, c := range customers {
		if c != nil && c.IsActive() {
			active = append(active, c)
		}
	}

	s.logger.DebugContext(ctx, "Active customers found", slog.Int("count", len(active)), slog.Int("scanned", len(customers)))
	s.observe(opFindAll, nil)
	return ToListResponse(active), nil
}

func (s *customerService) FindByID(ctx context.Context, id string) (ListResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s.logger.WarnContext(ctx, "Validation failed: customer id is empty")
		err := NewEmptyIdentifierError(message(opFindByID, outcomeEmptyID))
		s.observe(opFindByID, err)
		return ListResponse{}, err
	}
	logCtx := s.logger.With(slog.String("customerID", id))
	logCtx.DebugContext(ctx, "Looking up customer by id")

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			logCtx.WarnContext(ctx, "Customer not found by repository")
			err = NewNotFoundError(notFoundByID(id))
			s.observe(opFindByID, err)
			return ListResponse{}, err
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		s.observe(opFindByID, err)
		return ListResponse{}, fmt.Errorf("failed to get customer %s: %w", id, err)
	}

	logCtx.DebugContext(ctx, "Customer found")
	s.observe(opFindByID, nil)
	return ToSingleton(found), nil
}

func (s *customerService) Save(ctx context.Context, req Request) (OperationResponse, error) {
	logCtx := s.logger.With(
		slog.String("documentType", string(req.DocumentType)),
		slog.String("documentNumber", req.DocumentNumber),
	)
	logCtx.InfoContext(ctx, "Attempting to register new customer")

	_, err := s.repo.FindByDocument(ctx, req.DocumentType, req.DocumentNumber)
	switch {
	case err == nil:
		logCtx.WarnContext(ctx, "Customer already exists with this document")
		err = NewAlreadyExistsError(req.DocumentType, req.DocumentNumber)
		s.observe(opSave, err)
		return OperationResponse{}, err
	case !errors.Is(err, ErrNoRecord):
		return OperationResponse{}, s.fail(ctx, logCtx, opSave, "Repository error checking document uniqueness", err)
	}

	logCtx.DebugContext(ctx, "Document not registered, creating customer")
	saved, err := s.repo.Save(ctx, FromRequest(req, s.now()))
	if err != nil {
		return OperationResponse{}, s.fail(ctx, logCtx, opSave, "Repository failed to save new customer", err)
	}

	logCtx.InfoContext(ctx, "Customer registered", slog.String("customerID", saved.ID))
	s.publish(ctx, saved, s.pub.PublishCustomerCreated)
	s.observe(opSave, nil)
	return ToSuccess(saved.ID, message(opSave, outcomeSuccess)), nil
}

func (s *customerService) Update(ctx context.Context, req Request) (OperationResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		s.logger.WarnContext(ctx, "Validation failed: customer id is empty on update")
		err := NewEmptyIdentifierError(message(opUpdate, outcomeEmptyID))
		s.observe(opUpdate, err)
		return OperationResponse{}, err
	}
	logCtx := s.logger.With(slog.String("customerID", id))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			logCtx.WarnContext(ctx, "Customer not found by repository for update")
			err = NewNotFoundError(notFoundByID(id))
			s.observe(opUpdate, err)
			return OperationResponse{}, err
		}
		return OperationResponse{}, s.fail(ctx, logCtx, opUpdate, "Repository error finding customer for update", err)
	}

	saved, err := s.repo.Save(ctx, MergeForUpdate(existing, req, s.now()))
	if err != nil {
		return OperationResponse{}, s.fail(ctx, logCtx, opUpdate, "Repository failed to save updated customer", err)
	}

	logCtx.InfoContext(ctx, "Customer updated")
	s.publish(ctx, saved, s.pub.PublishCustomerUpdated)
	s.observe(opUpdate, nil)
	return ToSuccess(saved.ID, message(opUpdate, outcomeSuccess)), nil
}

func (s *customerService) Deactivate(ctx context.Context, id string) (OperationResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s.logger.WarnContext(ctx, "Validation failed: customer id is empty on deactivate")
		err := NewEmptyIdentifierError(message(opDeactivate, outcomeEmptyID))
		s.observe(opDeactivate, err)
		return OperationResponse{}, err
	}
	logCtx := s.logger.With(slog.String("customerID", id))
	logCtx.InfoContext(ctx, "Attempting to deactivate customer")

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			logCtx.WarnContext(ctx, "Customer not found by repository for deactivation")
			err = NewNotFoundError(notFoundByID(id))
			s.observe(opDeactivate, err)
			return OperationResponse{}, err
		}
		return OperationResponse{}, s.fail(ctx, logCtx, opDeactivate, "Repository error finding customer for deactivation", err)
	}

	if !existing.IsActive() {
		logCtx.WarnContext(ctx, "Business rule failed: customer is already inactive")
		err = NewAlreadyInactiveError(id)
		s.observe(opDeactivate, err)
		return OperationResponse{}, err
	}

	existing.Deactivate(s.now())
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return OperationResponse{}, s.fail(ctx, logCtx, opDeactivate, "Repository failed to save deactivated customer", err)
	}

	logCtx.InfoContext(ctx, "Customer deactivated")
	s.publish(ctx, saved, s.pub.PublishCustomerDeactivated)
	s.observe(opDeactivate, nil)
	return ToSuccess(saved.ID, message(opDeactivate, outcomeSuccess)), nil
}

func (s *customerService) FindByDocumentTypeAndNumber(ctx context.Context, docType DocumentType, number string) (ListResponse, error) {
	number = strings.TrimSpace(number)
	if !docType.Valid() || number == "" {
		s.logger.WarnContext(ctx, "Validation failed: invalid document type or number",
			slog.String("documentType", string(docType)), slog.String("documentNumber", number))
		err := NewInvalidDocumentError(message(opFindByDocument, outcomeInvalidDocument))
		s.observe(opFindByDocument, err)
		return ListResponse{}, err
	}
	logCtx := s.logger.With(slog.String("documentType", string(docType)), slog.String("documentNumber", number))

	found, err := s.repo.FindByDocument(ctx, docType, number)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			logCtx.WarnContext(ctx, "Customer not found by document")
			err = NewNotFoundError(notFoundByDocument(docType, number))
			s.observe(opFindByDocument, err)
			return ListResponse{}, err
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer by document", slog.Any("error", err))
		s.observe(opFindByDocument, err)
		return ListResponse{}, fmt.Errorf("failed to find customer by document %s %s: %w", docType, number, err)
	}

	s.observe(opFindByDocument, nil)
	return ToSingleton(found), nil
}

func (s *customerService) FindByDocumentNumber(ctx context.Context, number string) (ListResponse, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		s.logger.WarnContext(ctx, "Validation failed: document number is empty")
		err := NewInvalidDocumentError(message(opFindByDocumentNumber, outcomeInvalidDocument))
		s.observe(opFindByDocumentNumber, err)
		return ListResponse{}, err
	}
	logCtx := s.logger.With(slog.String("documentNumber", number))

	found, err := s.repo.FindByDocumentNumber(ctx, number)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			logCtx.WarnContext(ctx, "Customer not found by document number")
			err = NewNotFoundError(notFoundByDocumentNumber(number))
			s.observe(opFindByDocumentNumber, err)
			return ListResponse{}, err
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer by document number", slog.Any("error", err))
		s.observe(opFindByDocumentNumber, err)
		return ListResponse{}, fmt.Errorf("failed to find customer by document number %s: %w", number, err)
	}

	s.observe(opFindByDocumentNumber, nil)
	return ToSingleton(found), nil
}

// fail surfaces classified errors unchanged and wraps anything else into a
// ServiceFailure that keeps the cause.
func (s *customerService) fail(ctx context.Context, logCtx *slog.Logger, op operation, msg string, err error) error {
	if Classified(err) {
		s.observe(op, err)
		return err
	}
	logCtx.ErrorContext(ctx, msg, slog.Any("error", err))
	wrapped := NewServiceFailure(message(op, outcomeFailure), err)
	s.observe(op, wrapped)
	return wrapped
}

func (s *customerService) publish(ctx context.Context, c *Customer, send func(context.Context, event.CustomerEvent) error) {
	if c == nil {
		s.logger.ErrorContext(ctx, "Attempted to publish event for nil customer")
		return
	}
	evt := event.CustomerEvent{
		Timestamp: s.now(),
		Payload:   NewCustomerEventPayload(c),
	}
	if err := send(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Customer persisted, but FAILED to publish event",
			slog.String("customerID", c.ID), slog.Any("error", err))
	}
}

func (s *customerService) observe(op operation, err error) {
	monitoring.RecordCustomerOperation(string(op), outcomeLabel(err))
}

// outcomeLabel keeps metric label values lower snake case.
func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	if k := KindOf(err); k != 0 {
		return strings.ToLower(k.String())
	}
	return "store_error"
}

func NewCustomerEventPayload(c *Customer) event.CustomerEventPayload {
	if c == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:     c.ID,
		DocumentType:   string(c.DocumentType),
		DocumentNumber: c.DocumentNumber,
		FullName:       c.FullName,
		BusinessName:   c.BusinessName,
		Email:          c.Email,
		CustomerType:   string(c.CustomerType),
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
