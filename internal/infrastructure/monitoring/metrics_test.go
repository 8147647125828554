package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCustomerOperation(t *testing.T) {
	Business.CustomerOperationsTotal.Reset()

	RecordCustomerOperation("save", "success")
	RecordCustomerOperation("save", "success")
	RecordCustomerOperation("save", "already_exists")

	assert.Equal(t, 2.0, testutil.ToFloat64(Business.CustomerOperationsTotal.WithLabelValues("save", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(Business.CustomerOperationsTotal.WithLabelValues("save", "already_exists")))
}

func TestSetCustomersByStatus(t *testing.T) {
	Business.CustomersByStatus.Reset()

	SetCustomersByStatus("ACTIVE", 7)
	SetCustomersByStatus("ACTIVE", 5)

	assert.Equal(t, 5.0, testutil.ToFloat64(Business.CustomersByStatus.WithLabelValues("ACTIVE")))
}

func TestRecordDBQuery(t *testing.T) {
	DB.QueryDuration.Reset()

	RecordDBQuery("find_by_id", "ok", 12*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(DB.QueryDuration))
}
