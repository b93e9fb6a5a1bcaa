package consumer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "consumer",
		Name:      "events_processed_total",
		Help:      "Number of workout events appended to the audit log.",
	}, []string{"event_type"})

	handlerErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "consumer",
		Name:      "handler_errors_total",
		Help:      "Number of workout events the audit handler failed to store.",
	}, []string{"event_type"})

	decodeErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "consumer",
		Name:      "decode_errors_total",
		Help:      "Number of malformed records skipped per topic.",
	}, []string{"topic"})

	deliveryLag = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "workout_tracker",
		Subsystem: "consumer",
		Name:      "delivery_lag_seconds",
		Help:      "Delay between an event being produced and stored in the audit log.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(processedCounter, handlerErrorCounter, decodeErrorCounter, deliveryLag)
}

func recordProcessed(msg Message) {
	processedCounter.WithLabelValues(msg.EventType).Inc()
	if !msg.Timestamp.IsZero() {
		deliveryLag.Observe(time.Since(msg.Timestamp).Seconds())
	}
}

func recordHandlerError(msg Message) {
	handlerErrorCounter.WithLabelValues(msg.EventType).Inc()
}

func recordDecodeError(topic string) {
	decodeErrorCounter.WithLabelValues(topic).Inc()
}
