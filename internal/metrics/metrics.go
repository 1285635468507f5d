package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records terminal activity. A nil *POSMetrics is valid and records nothing.
type POSMetrics struct {
	ordersPlaced     *prometheus.CounterVec
	salesAmount      *prometheus.CounterVec
	cartRejections   *prometheus.CounterVec
	stockMovements   *prometheus.CounterVec
	checkoutDuration prometheus.Histogram
}

// NewPOSMetrics registers the POS metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_orders_placed_total",
		Help: "Orders committed to the ledger.",
	}, []string{"order_type"})
	salesAmount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_yen_total",
		Help: "Sum of committed order totals in yen.",
	}, []string{"order_type"})
	cartRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_cart_rejections_total",
		Help: "Cart operations refused by policy or stock checks.",
	}, []string{"reason"})
	stockMovements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_movements_total",
		Help: "Inventory mutations by source.",
	}, []string{"source"})
	checkoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_duration_seconds",
		Help:    "Time taken to finalize an order, including the checkout delay.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(ordersPlaced, salesAmount, cartRejections, stockMovements, checkoutDuration)
	return &POSMetrics{
		ordersPlaced:     ordersPlaced,
		salesAmount:      salesAmount,
		cartRejections:   cartRejections,
		stockMovements:   stockMovements,
		checkoutDuration: checkoutDuration,
	}
}

// ObserveOrder records a committed order.
func (m *POSMetrics) ObserveOrder(orderType string, total int64, took time.Duration) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	label := normalizeLabel(orderType)
	m.ordersPlaced.WithLabelValues(label).Inc()
	m.salesAmount.WithLabelValues(label).Add(float64(total))
	m.checkoutDuration.Observe(took.Seconds())
}

// IncCartRejection counts a refused cart operation.
func (m *POSMetrics) IncCartRejection(reason string) {
	if m == nil || m.cartRejections == nil {
		return
	}
	m.cartRejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncStockMovement counts an inventory mutation.
func (m *POSMetrics) IncStockMovement(source string) {
	if m == nil || m.stockMovements == nil {
		return
	}
	m.stockMovements.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
