// Package monitoring exposes prometheus metrics for the sync client.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	eventsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maitred_channel_events_total",
			Help: "Order events received on the synchronization channel, by event name.",
		},
		[]string{"event"},
	)

	reconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maitred_channel_reconnects_total",
			Help: "Successful channel reconnections after a transport failure.",
		},
	)

	connected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "maitred_channel_connected",
			Help: "Whether the synchronization channel is currently connected.",
		},
	)

	refreshRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maitred_refresh_requests_total",
			Help: "Full-snapshot refresh requests sent to the backend.",
		},
	)

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maitred_order_submissions_total",
			Help: "Order submissions by outcome.",
		},
		[]string{"outcome"},
	)

	storedOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "maitred_orders",
			Help: "Orders currently held in the order store.",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsReceived, reconnects, connected, refreshRequests, submissions, storedOrders)
}

// EventReceived records one inbound channel event.
func EventReceived(event string) {
	eventsReceived.WithLabelValues(event).Inc()
}

// Reconnected records a successful reconnection.
func Reconnected() {
	reconnects.Inc()
}

// SetConnected records the channel connection state.
func SetConnected(up bool) {
	if up {
		connected.Set(1)
	} else {
		connected.Set(0)
	}
}

// RefreshRequested records an outbound refresh request.
func RefreshRequested() {
	refreshRequests.Inc()
}

// OrderSubmitted records a submission outcome.
func OrderSubmitted(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	submissions.WithLabelValues(outcome).Inc()
}

// SetOrderCount records the size of the order store.
func SetOrderCount(n int) {
	storedOrders.Set(float64(n))
}
