package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
)

// StatusCounter is implemented by both store adapters.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[customer.Status]int, error)
}

// CustomerStatsJob refreshes the customers-by-status gauge from the store.
type CustomerStatsJob struct {
	counter StatusCounter
	logger  *slog.Logger
}

func NewCustomerStatsJob(counter StatusCounter, logger *slog.Logger) *CustomerStatsJob {
	if counter == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		counter: counter,
		logger:  logger.With("job", "CustomerStats"),
	}
}

func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting customer stats refresh job.")

	counts, err := j.counter.CountByStatus(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers by status, gauges left unchanged.", slog.Any("error", err))
		return fmt.Errorf("cannot refresh customer stats: %w", err)
	}

	// Known statuses are always written so a status that drops to zero
	// does not keep its last value.
	for _, status := range []customer.Status{customer.StatusActive, customer.StatusInactive} {
		monitoring.SetCustomersByStatus(string(status), counts[status])
	}
	for status, n := range counts {
		if status != customer.StatusActive && status != customer.StatusInactive {
			j.logger.WarnContext(ctx, "Store holds customers with an unknown status", slog.String("status", string(status)), slog.Int("count", n))
		}
	}

	j.logger.InfoContext(ctx, "Customer stats refreshed.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("active", counts[customer.StatusActive]),
		slog.Int("inactive", counts[customer.StatusInactive]),
	)
	return nil
}
