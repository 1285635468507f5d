package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPOSMetricsRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPOSMetrics(reg)

	m.ObserveOrder("takeaway", 600, 10*time.Millisecond)
	m.ObserveOrder("takeaway", 400, 10*time.Millisecond)
	m.IncCartRejection("stock_exhausted")
	m.IncStockMovement("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues("takeaway")))
	assert.Equal(t, 1000.0, testutil.ToFloat64(m.salesAmount.WithLabelValues("takeaway")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartRejections.WithLabelValues("stock_exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockMovements.WithLabelValues("unknown")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *POSMetrics
	m.ObserveOrder("eat-in", 100, time.Second)
	m.IncCartRejection("x")
	m.IncStockMovement("x")

	empty := NewPOSMetrics(nil)
	empty.ObserveOrder("eat-in", 100, time.Second)
}
