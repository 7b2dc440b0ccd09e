package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "equeue"
	subsystem = "bot"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_total",
			Help:      "Conversation events handled, by event name",
		},
		[]string{"event"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validation_failures_total",
			Help:      "Rejected field inputs, by field",
		},
		[]string{"field"},
	)

	rendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "renders_total",
			Help:      "Slip renders, by result",
		},
		[]string{"result"},
	)

	assetFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "asset_fallbacks_total",
			Help:      "Fonts or marks replaced by a built-in fallback",
		},
		[]string{"asset"},
	)

	cleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "artifact_cleanup_failures_total",
			Help:      "Delivered artifacts that could not be deleted",
		},
	)

	droppedMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dropped_messages_total",
			Help:      "Updates dropped because the user's queue was full",
		},
	)

	activeWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_workers",
			Help:      "Per-user dispatch workers currently running",
		},
	)
)

func IncEvent(event string) {
	eventsTotal.WithLabelValues(event).Inc()
}

func IncValidationFailure(field string) {
	validationFailures.WithLabelValues(field).Inc()
}

func IncRender(result string) {
	rendersTotal.WithLabelValues(result).Inc()
}

func IncAssetFallback(asset string) {
	assetFallbacks.WithLabelValues(asset).Inc()
}

func IncCleanupFailure() {
	cleanupFailures.Inc()
}

func IncDroppedMessage() {
	droppedMessages.Inc()
}

func WorkerStarted() {
	activeWorkers.Inc()
}

func WorkerStopped() {
	activeWorkers.Dec()
}
