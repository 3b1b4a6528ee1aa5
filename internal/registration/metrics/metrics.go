// Package metrics exposes Prometheus metrics for the registration
// subsystem.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all registration metrics.
type Metrics struct {
	Registrations        *prometheus.CounterVec
	RegistrationDuration *prometheus.HistogramVec
	ProfilesCreated      prometheus.Counter
}

// New creates and registers the registration metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partnerhub_registrations_total",
			Help: "Registration attempts by profile kind and outcome",
		}, []string{"kind", "outcome"}),
		RegistrationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "partnerhub_registration_duration_seconds",
			Help:    "Registration latency by profile kind",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		ProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerhub_profiles_created_total",
			Help: "Provisional profiles created by the signup hook",
		}),
	}
}

// ObserveRegistration records one registration attempt.
func (m *Metrics) ObserveRegistration(kind, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(kind, outcome).Inc()
	m.RegistrationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// IncrementProfilesCreated counts a new provisional profile.
func (m *Metrics) IncrementProfilesCreated() {
	if m == nil {
		return
	}
	m.ProfilesCreated.Inc()
}
