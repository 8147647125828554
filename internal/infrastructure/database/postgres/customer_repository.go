package postgres

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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

const customerColumns = `id, document_type, document_number, full_name, business_name, email, phone_number, address, customer_type, status, created_at, updated_at`

const schemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
    id              UUID PRIMARY KEY,
    document_type   VARCHAR(16)  NOT NULL,
    document_number VARCHAR(20)  NOT NULL,
    full_name       VARCHAR(100) NOT NULL,
    business_name   VARCHAR(100) NOT NULL DEFAULT '',
    email           VARCHAR(255) NOT NULL,
    phone_number    VARCHAR(32)  NOT NULL DEFAULT '',
    address         VARCHAR(255) NOT NULL DEFAULT '',
    customer_type   VARCHAR(16)  NOT NULL,
    status          VARCHAR(16)  NOT NULL,
    created_at      TIMESTAMPTZ  NOT NULL,
    updated_at      TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_customers_document ON customers (document_type, document_number);
CREATE INDEX IF NOT EXISTS idx_customers_document_number ON customers (document_number);
CREATE INDEX IF NOT EXISTS idx_customers_status ON customers (status);`

// EnsureSchema creates the customers table and its lookup indexes.
func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger.InfoContext(ctx, "Ensuring customers table exists")
	if _, err := db.Exec(ctx, schemaDDL); err != nil {
		logger.ErrorContext(ctx, "Failed to ensure customers schema", slog.Any("error", err))
		return fmt.Errorf("%w: failed to ensure schema: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

type CustomerRepository struct {
	db      DBPool
	timeout time.Duration
	logger  *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

// NewCustomerRepository bounds every store call by timeout; a non-positive
// value falls back to the connect default.
func NewCustomerRepository(db DBPool, timeout time.Duration, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:      db,
		timeout: timeoutOrDefault(timeout),
		logger:  logger.With("component", "PostgresCustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.ID == "" {
		return r.createCustomer(ctx, cust)
	}
	if _, err := uuid.Parse(cust.ID); err != nil {
		return nil, fmt.Errorf("%w: customer id %q is not a valid uuid", apperrors.ErrInvalidArgument, cust.ID)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	const op = "insert"
	start := time.Now()

	saved := *cust
	saved.ID = uuid.NewString()
	logCtx := r.logger.With(slog.String("customerID", saved.ID))
	logCtx.InfoContext(ctx, "Attempting to insert new customer", slog.String("documentNumber", saved.DocumentNumber))

	query := `
        INSERT INTO customers (` + customerColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx, query,
		saved.ID,
		string(saved.DocumentType),
		saved.DocumentNumber,
		saved.FullName,
		saved.BusinessName,
		saved.Email,
		saved.PhoneNumber,
		saved.Address,
		string(saved.CustomerType),
		string(saved.Status),
		saved.CreatedAt,
		saved.UpdatedAt,
	)
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to insert customer", err)
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	logCtx.InfoContext(ctx, "Customer inserted successfully")
	return &saved, nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	const op = "update"
	start := time.Now()
	logCtx := r.logger.With(slog.String("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	query := `
        UPDATE customers
        SET document_type = $2,
            document_number = $3,
            full_name = $4,
            business_name = $5,
            email = $6,
            phone_number = $7,
            address = $8,
            customer_type = $9,
            status = $10,
            created_at = $11,
            updated_at = $12
        WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, query,
		cust.ID,
		string(cust.DocumentType),
		cust.DocumentNumber,
		cust.FullName,
		cust.BusinessName,
		cust.Email,
		cust.PhoneNumber,
		cust.Address,
		string(cust.CustomerType),
		string(cust.Status),
		cust.CreatedAt,
		cust.UpdatedAt,
	)
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to update customer", err)
	}

	if cmdTag.RowsAffected() == 0 {
		monitoring.RecordDBQuery(op, "not_found", time.Since(start))
		logCtx.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return nil, customer.ErrNoRecord
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	logCtx.InfoContext(ctx, "Customer updated successfully")
	saved := *cust
	return &saved, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		r.logger.DebugContext(ctx, "Customer id is not a valid uuid", slog.String("customerID", id))
		return nil, customer.ErrNoRecord
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.findOne(ctx, "find_by_id", query, id)
}

func (r *CustomerRepository) FindByDocument(ctx context.Context, docType customer.DocumentType, number string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE document_type = $1 AND document_number = $2 LIMIT 1`
	return r.findOne(ctx, "find_by_document", query, string(docType), number)
}

func (r *CustomerRepository) FindByDocumentNumber(ctx context.Context, number string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE document_number = $1 LIMIT 1`
	return r.findOne(ctx, "find_by_document_number", query, number)
}

func (r *CustomerRepository) findOne(ctx context.Context, op, query string, args ...any) (*customer.Customer, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cust, err := scanCustomer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			monitoring.RecordDBQuery(op, "not_found", time.Since(start))
			r.logger.DebugContext(ctx, "Customer not found", slog.String("operation", op))
			return nil, customer.ErrNoRecord
		}
		return nil, r.fail(ctx, op, start, "Failed to query/scan customer", err)
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	return cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	const op = "find_all"
	start := time.Now()
	r.logger.DebugContext(ctx, "Attempting to find all customers")

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at ASC`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to query customers", err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			return nil, r.fail(ctx, op, start, "Failed to scan customer row", err)
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		return nil, r.fail(ctx, op, start, "Error iterating customer rows", err)
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id string) error {
	const op = "delete"
	if _, err := uuid.Parse(id); err != nil {
		return customer.ErrNoRecord
	}
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return r.fail(ctx, op, start, "Failed to execute delete customer", err)
	}

	if cmdTag.RowsAffected() == 0 {
		monitoring.RecordDBQuery(op, "not_found", time.Since(start))
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNoRecord
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	r.logger.InfoContext(ctx, "Customer deleted successfully", slog.String("customerID", id))
	return nil
}

// CountByStatus groups stored customers by status.
func (r *CustomerRepository) CountByStatus(ctx context.Context) (map[customer.Status]int, error) {
	const op = "count_by_status"
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM customers GROUP BY status`)
	if err != nil {
		return nil, r.fail(ctx, op, start, "Failed to count customers by status", err)
	}
	defer rows.Close()

	counts := make(map[customer.Status]int)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, r.fail(ctx, op, start, "Failed to scan status count", err)
		}
		counts[customer.Status(status)] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(ctx, op, start, "Error iterating status counts", err)
	}

	monitoring.RecordDBQuery(op, "ok", time.Since(start))
	return counts, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var (
		cust         customer.Customer
		documentType string
		customerType string
		status       string
	)
	err := row.Scan(
		&cust.ID,
		&documentType,
		&cust.DocumentNumber,
		&cust.FullName,
		&cust.BusinessName,
		&cust.Email,
		&cust.PhoneNumber,
		&cust.Address,
		&customerType,
		&status,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cust.DocumentType = customer.DocumentType(documentType)
	cust.CustomerType = customer.CustomerType(customerType)
	cust.Status = customer.Status(status)
	cust.CreatedAt = cust.CreatedAt.UTC()
	cust.UpdatedAt = cust.UpdatedAt.UTC()
	return &cust, nil
}

func (r *CustomerRepository) fail(ctx context.Context, op string, start time.Time, msg string, err error) error {
	monitoring.RecordDBQuery(op, "error", time.Since(start))
	r.logger.ErrorContext(ctx, msg, slog.String("operation", op), slog.Any("error", err))
	return translateDBError(err, op, r.logger)
}

func translateDBError(err error, op string, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("postgres %s failed", op)

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return apperrors.WrapStoreTimeout(err, msg)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperrors.WrapStoreUnavailable(err, msg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}
		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
	}

	return apperrors.WrapDatabaseError(err, msg)
}
