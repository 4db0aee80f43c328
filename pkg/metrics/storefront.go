package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// StorefrontMetrics tracks cart and order activity.
type StorefrontMetrics struct {
	cartMutations   *prometheus.CounterVec
	cartCorruptions prometheus.Counter
	eventDrops      prometheus.Counter
	ordersPlaced    *prometheus.CounterVec
	orderTotal      prometheus.Histogram
	inquiries       *prometheus.CounterVec
}

// NewStorefrontMetrics registers the domain metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweetslice_cart_mutations_total",
			Help: "Cart mutations, by kind.",
		}, []string{"kind"}),
		cartCorruptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweetslice_cart_corrupt_reads_total",
			Help: "Stored carts that failed to decode and were treated as empty.",
		}),
		eventDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweetslice_cart_event_drops_total",
			Help: "Cart change events dropped because a subscriber was not keeping up.",
		}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweetslice_orders_placed_total",
			Help: "Orders placed, by delivery method.",
		}, []string{"delivery_method"}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sweetslice_order_total_amount",
			Help:    "Order totals in dollars.",
			Buckets: []float64{10, 25, 50, 100, 200, 500},
		}),
		inquiries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweetslice_inquiries_total",
			Help: "Contact messages and custom cake requests received.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.cartMutations, m.cartCorruptions, m.eventDrops, m.ordersPlaced, m.orderTotal, m.inquiries)
	return m
}

func (m *StorefrontMetrics) CartMutation(kind string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *StorefrontMetrics) CartCorruption() {
	if m == nil || m.cartCorruptions == nil {
		return
	}
	m.cartCorruptions.Inc()
}

func (m *StorefrontMetrics) EventDropped() {
	if m == nil || m.eventDrops == nil {
		return
	}
	m.eventDrops.Inc()
}

// OrderPlaced counts the order and records its total.
func (m *StorefrontMetrics) OrderPlaced(method string, total decimal.Decimal) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(method)).Inc()
	m.orderTotal.Observe(total.InexactFloat64())
}

func (m *StorefrontMetrics) Inquiry(kind string) {
	if m == nil || m.inquiries == nil {
		return
	}
	m.inquiries.WithLabelValues(normalizeLabel(kind)).Inc()
}
