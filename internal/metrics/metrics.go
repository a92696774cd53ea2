package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SlotsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escape_booking",
		Name:      "slots_created_total",
		Help:      "Slots stored, by hand or from a schedule.",
	})

	SlotConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escape_booking",
		Name:      "slot_conflicts_total",
		Help:      "Slot writes rejected because they overlap another slot.",
	}, []string{"source"})

	CartItemsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escape_booking",
		Name:      "cart_items_expired_total",
		Help:      "Appointment items purged after their set-aside window.",
	})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escape_booking",
		Name:      "orders_created_total",
		Help:      "Carts checked out into orders.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escape_booking",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
)
