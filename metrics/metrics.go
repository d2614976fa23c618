package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDiscarded = "discarded"
)

// Assistant widget metrics - using explicit registration
var (
	// WelcomeFetchesTotal counts welcome payload fetches by trigger and outcome.
	WelcomeFetchesTotal *prometheus.CounterVec

	// ExchangesTotal counts chat exchanges by outcome.
	ExchangesTotal *prometheus.CounterVec

	// ExchangeDuration observes the backend round trip of chat exchanges.
	ExchangeDuration *prometheus.HistogramVec

	// RejectedIntentsTotal counts ignored user intents.
	RejectedIntentsTotal *prometheus.CounterVec

	// ResetsTotal counts "new chat" resets.
	ResetsTotal prometheus.Counter
)

// init creates and registers all metrics with the default registry
func init() {
	WelcomeFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "widget",
			Name:      "welcome_fetches_total",
			Help:      "Total welcome payload fetches",
		},
		[]string{"trigger", "outcome"},
	)

	ExchangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "widget",
			Name:      "exchanges_total",
			Help:      "Total chat exchanges",
		},
		[]string{"outcome"},
	)

	ExchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assistant",
			Subsystem: "widget",
			Name:      "exchange_duration_seconds",
			Help:      "Backend round trip of chat exchanges",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"outcome"},
	)

	RejectedIntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "widget",
			Name:      "rejected_intents_total",
			Help:      "User intents ignored because the session could not accept them",
		},
		[]string{"intent", "reason"},
	)

	ResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "widget",
			Name:      "resets_total",
			Help:      "Total new chat resets",
		},
	)

	prometheus.MustRegister(
		WelcomeFetchesTotal,
		ExchangesTotal,
		ExchangeDuration,
		RejectedIntentsTotal,
		ResetsTotal,
	)
}
