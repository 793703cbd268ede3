package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics counts order lifecycle outcomes. Registered once at
// startup against the default registry; tests pass their own.
type OrderMetrics struct {
	Placed         prometheus.Counter
	Cancelled      prometheus.Counter
	StockConflicts prometheus.Counter
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	m := &OrderMetrics{
		Placed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of successfully placed orders.",
		}),
		Cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Total number of cancelled orders.",
		}),
		StockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "order_stock_conflicts_total",
			Help: "Orders rejected because the requested quantity exceeded available stock.",
		}),
	}
	reg.MustRegister(m.Placed, m.Cancelled, m.StockConflicts)
	return m
}
