// Package metrics holds the Prometheus instruments for the persona service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PersonasCreated prometheus.Counter
	PersonasDeleted prometheus.Counter
	EmailConflicts  prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PersonasCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persona_personas_created_total",
			Help: "Total number of personas created",
		}),
		PersonasDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persona_personas_deleted_total",
			Help: "Total number of personas deleted",
		}),
		EmailConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persona_email_conflicts_total",
			Help: "Total number of creations rejected because the email was already reserved",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "persona_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
