// Package observability holds the Prometheus collectors shared by the HTTP
// service and the domain layer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "last_workout_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout written to the store.",
	})
	workoutWritesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "workout_writes_total",
		Help:      "Number of successful workout writes, labeled by operation.",
	}, []string{"operation"})
	storeErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "store_errors_total",
		Help:      "Number of store failures surfaced to requests, labeled by operation.",
	}, []string{"operation"})
	validationFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "validation",
		Name:      "violations_total",
		Help:      "Number of rejected fields, labeled by field and violation kind.",
	}, []string{"field", "kind"})
	publishFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Number of workout events that could not be delivered.",
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(workoutPersistGauge, workoutWritesCounter, storeErrorCounter, validationFailureCounter, publishFailureCounter)
}

// RecordWorkoutPersisted counts a successful write and updates the persistence watermark.
func RecordWorkoutPersisted(operation string, ts time.Time) {
	workoutWritesCounter.WithLabelValues(operation).Inc()
	if ts.IsZero() {
		return
	}
	workoutPersistGauge.Set(float64(ts.Unix()))
}

// RecordStoreError counts a store failure for operation.
func RecordStoreError(operation string) {
	storeErrorCounter.WithLabelValues(operation).Inc()
}

// RecordViolation counts a rejected field.
func RecordViolation(field, kind string) {
	validationFailureCounter.WithLabelValues(field, kind).Inc()
}

// RecordPublishFailure counts an event that was not delivered.
func RecordPublishFailure(eventType string) {
	publishFailureCounter.WithLabelValues(eventType).Inc()
}
