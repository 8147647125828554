package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomerOperationsTotal *prometheus.CounterVec
	CustomersByStatus       *prometheus.GaugeVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_db_query_duration_seconds",
				Help:    "Histogram of customer store operation latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomerOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_operations_total",
				Help: "Total number of customer lifecycle operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		CustomersByStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "customers_by_status",
				Help: "Number of stored customers per status, refreshed by the stats job.",
			},
			[]string{"status"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerOperation(operation, outcome string) {
	Business.CustomerOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func SetCustomersByStatus(status string, count int) {
	Business.CustomersByStatus.WithLabelValues(status).Set(float64(count))
}
