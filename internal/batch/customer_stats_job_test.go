package batch_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"customer-service/internal/batch"
	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusCounter struct {
	mock.Mock
}

func (m *MockStatusCounter) CountByStatus(ctx context.Context) (map[customer.Status]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[customer.Status]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func gauge(status customer.Status) float64 {
	return testutil.ToFloat64(monitoring.Business.CustomersByStatus.WithLabelValues(string(status)))
}

func TestNewCustomerStatsJobPanics(t *testing.T) {
	assert.Panics(t, func() { batch.NewCustomerStatsJob(nil, newLogger()) })
	assert.Panics(t, func() { batch.NewCustomerStatsJob(new(MockStatusCounter), nil) })
}

func TestCustomerStatsJobRun(t *testing.T) {
	t.Run("sets gauges from counts", func(t *testing.T) {
		counter := new(MockStatusCounter)
		counter.On("CountByStatus", mock.Anything).
			Return(map[customer.Status]int{customer.StatusActive: 7, customer.StatusInactive: 2}, nil).Once()

		require.NoError(t, batch.NewCustomerStatsJob(counter, newLogger()).Run(context.Background()))

		assert.Equal(t, float64(7), gauge(customer.StatusActive))
		assert.Equal(t, float64(2), gauge(customer.StatusInactive))
		counter.AssertExpectations(t)
	})

	t.Run("missing status resets to zero", func(t *testing.T) {
		counter := new(MockStatusCounter)
		counter.On("CountByStatus", mock.Anything).
			Return(map[customer.Status]int{customer.StatusActive: 3}, nil).Once()

		require.NoError(t, batch.NewCustomerStatsJob(counter, newLogger()).Run(context.Background()))

		assert.Equal(t, float64(3), gauge(customer.StatusActive))
		assert.Equal(t, float64(0), gauge(customer.StatusInactive))
	})

	t.Run("store error leaves gauges unchanged", func(t *testing.T) {
		monitoring.SetCustomersByStatus(string(customer.StatusActive), 11)
		counter := new(MockStatusCounter)
		storeErr := errors.New("no reachable servers")
		counter.On("CountByStatus", mock.Anything).Return(nil, storeErr).Once()

		err := batch.NewCustomerStatsJob(counter, newLogger()).Run(context.Background())

		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, float64(11), gauge(customer.StatusActive))
	})
}
