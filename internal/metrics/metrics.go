// Package metrics holds the Prometheus collectors of the delivery service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_status_transitions_total",
			Help: "Total number of applied delivery status transitions.",
		},
		[]string{"from", "to", "trigger"},
	)

	TransitionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_transitions_rejected_total",
			Help: "Total number of rejected delivery status transitions.",
		},
		[]string{"operation"},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_events_published_total",
			Help: "Total number of events published by topic and result.",
		},
		[]string{"topic", "result"}, // result: ok, error
	)

	MessagesConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_messages_consumed_total",
			Help: "Total number of consumed messages by topic and outcome.",
		},
		[]string{"topic", "outcome"}, // outcome: ok, invalid, requeue, dlq
	)

	ProcessesInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "delivery_processes_in_flight",
			Help: "Number of delivery processes currently running.",
		},
	)

	ProcessDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_process_duration_seconds",
			Help:    "Time from packaged to the end of the delivery process.",
			Buckets: []float64{1, 5, 10, 15, 20, 30, 60, 120},
		},
	)

	PublicKeyRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_public_key_refresh_total",
			Help: "Total number of public key refresh attempts by result.",
		},
		[]string{"result"},
	)
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		StatusTransitionsTotal,
		TransitionsRejectedTotal,
		EventsPublishedTotal,
		MessagesConsumedTotal,
		ProcessesInFlight,
		ProcessDuration,
		PublicKeyRefreshTotal,
	)
}

func RecordTransition(from, to, trigger string) {
	StatusTransitionsTotal.WithLabelValues(from, to, trigger).Inc()
}

func RecordRejectedTransition(operation string) {
	TransitionsRejectedTotal.WithLabelValues(operation).Inc()
}

func RecordPublish(topic string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublishedTotal.WithLabelValues(topic, result).Inc()
}

func RecordConsumed(topic, outcome string) {
	MessagesConsumedTotal.WithLabelValues(topic, outcome).Inc()
}

func ProcessStarted() {
	ProcessesInFlight.Inc()
}

func ProcessFinished(elapsed time.Duration) {
	ProcessesInFlight.Dec()
	ProcessDuration.Observe(elapsed.Seconds())
}

func RecordKeyRefresh(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	PublicKeyRefreshTotal.WithLabelValues(result).Inc()
}
