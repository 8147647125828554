package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type customerDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	DocumentType   string             `bson:"documentType"`
	DocumentNumber string             `bson:"documentNumber"`
	FullName       string             `bson:"fullName"`
	BusinessName   string             `bson:"businessName,omitempty"`
	Email          string             `bson:"email"`
	PhoneNumber    string             `bson:"phoneNumber,omitempty"`
	Address        string             `bson:"address,omitempty"`
	CustomerType   string             `bson:"customerType"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toDocument(c *customer.Customer) (customerDocument, error) {
	doc := customerDocument{
		DocumentType:   string(c.DocumentType),
		DocumentNumber: c.DocumentNumber,
		FullName:       c.FullName,
		BusinessName:   c.BusinessName,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		Address:        c.Address,
		CustomerType:   string(c.CustomerType),
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt.UTC(),
		UpdatedAt:      c.UpdatedAt.UTC(),
	}
	if c.ID != "" {
		oid, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return customerDocument{}, fmt.Errorf("%w: customer id %q is not a valid object id", apperrors.ErrInvalidArgument, c.ID)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d customerDocument) toDomain() *customer.Customer {
	return &customer.Customer{
		ID:             d.ID.Hex(),
		DocumentType:   customer.DocumentType(d.DocumentType),
		DocumentNumber: d.DocumentNumber,
		FullName:       d.FullName,
		BusinessName:   d.BusinessName,
		Email:          d.Email,
		PhoneNumber:    d.PhoneNumber,
		Address:        d.Address,
		CustomerType:   customer.CustomerType(d.CustomerType),
		Status:         customer.Status(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

type CustomerRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(coll *mongo.Collection, timeout time.Duration, logger *slog.Logger) *CustomerRepository {
	if coll == nil {
		panic("mongo collection cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		coll:    coll,
		timeout: timeoutOrDefault(timeout),
		logger:  logger.With("component", "MongoCustomerRepository", "collection", coll.Name()),
	}
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	const op = "find_all"
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()

	r.logger.DebugContext(ctx, "Attempting to find all customers")

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to query customers", err)
	}
	defer cursor.Close(ctx)

	var docs []customerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, r.fail(ctx, op, start, "Failed to decode customer documents", err)
	}

	customers := make([]*customer.Customer, 0, len(docs))
	for _, d := range docs {
		customers = append(customers, d.toDomain())
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.DebugContext(ctx, "Customer id is not a valid object id", slog.String("customerID", id))
		return nil, customer.ErrNoRecord
	}
	return r.findOne(ctx, "find_by_id", bson.M{"_id": oid})
}

func (r *CustomerRepository) FindByDocument(ctx context.Context, docType customer.DocumentType, number string) (*customer.Customer, error) {
	return r.findOne(ctx, "find_by_document", bson.M{
		"documentType":   string(docType),
		"documentNumber": number,
	})
}

func (r *CustomerRepository) FindByDocumentNumber(ctx context.Context, number string) (*customer.Customer, error) {
	return r.findOne(ctx, "find_by_document_number", bson.M{"documentNumber": number})
}

func (r *CustomerRepository) findOne(ctx context.Context, op string, filter bson.M) (*customer.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()

	var doc customerDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			monitoring.RecordDBQuery(op, "not_found", time.Since(start))
			r.logger.DebugContext(ctx, "Customer not found", slog.String("operation", op))
			return nil, customer.ErrNoRecord
		}
		return nil, r.fail(ctx, op, start, "Failed to query customer", err)
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	return doc.toDomain(), nil
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	doc, err := toDocument(c)
	if err != nil {
		return nil, err
	}
	if doc.ID.IsZero() {
		return r.insert(ctx, doc)
	}
	return r.replace(ctx, doc)
}

func (r *CustomerRepository) insert(ctx context.Context, doc customerDocument) (*customer.Customer, error) {
	const op = "insert"
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()

	doc.ID = primitive.NewObjectID()
	logCtx := r.logger.With(slog.String("customerID", doc.ID.Hex()))
	logCtx.InfoContext(ctx, "Attempting to insert new customer", slog.String("documentNumber", doc.DocumentNumber))

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, r.fail(ctx, op, start, "Failed to insert customer", err)
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	logCtx.InfoContext(ctx, "Customer inserted successfully")
	return doc.toDomain(), nil
}

func (r *CustomerRepository) replace(ctx context.Context, doc customerDocument) (*customer.Customer, error) {
	const op = "replace"
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()

	logCtx := r.logger.With(slog.String("customerID", doc.ID.Hex()))
	logCtx.InfoContext(ctx, "Attempting to replace customer")

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to replace customer", err)
	}
	if res.MatchedCount == 0 {
		monitoring.RecordDBQuery(op, "not_found", time.Since(start))
		logCtx.WarnContext(ctx, "Replace matched zero documents, customer likely removed")
		return nil, customer.ErrNoRecord
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	logCtx.InfoContext(ctx, "Customer replaced successfully")
	return doc.toDomain(), nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id string) error {
	const op = "delete"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return customer.ErrNoRecord
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return r.fail(ctx, op, start, "Failed to delete customer", err)
	}
	if res.DeletedCount == 0 {
		monitoring.RecordDBQuery(op, "not_found", time.Since(start))
		return customer.ErrNoRecord
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	r.logger.InfoContext(ctx, "Customer deleted", slog.String("customerID", id))
	return nil
}

type statusCount struct {
	Status string `bson:"_id"`
	Count  int    `bson:"count"`
}

// CountByStatus groups stored customers by status.
func (r *CustomerRepository) CountByStatus(ctx context.Context) (map[customer.Status]int, error) {
	const op = "count_by_status"
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to aggregate customers by status", err)
	}
	defer cursor.Close(ctx)

	var rows []statusCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, r.fail(ctx, op, start, "Failed to decode status counts", err)
	}

	counts := make(map[customer.Status]int, len(rows))
	for _, row := range rows {
		counts[customer.Status(row.Status)] = row.Count
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	return counts, nil
}

func (r *CustomerRepository) fail(ctx context.Context, op string, start time.Time, msg string, err error) error {
	classified := translateMongoError(err, op)
	monitoring.RecordDBQuery(op, "error", time.Since(start))
	r.logger.ErrorContext(ctx, msg, slog.String("operation", op), slog.Any("error", err))
	return classified
}

func translateMongoError(err error, op string) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("mongo %s failed", op)
	switch {
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return apperrors.WrapStoreTimeout(err, msg)
	case mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return apperrors.WrapStoreUnavailable(err, msg)
	}
	return apperrors.WrapDatabaseError(err, msg)
}
