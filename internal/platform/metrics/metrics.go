// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AuthOutcomes counts auth filter decisions by outcome (authenticated, anonymous, error).
	AuthOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yoga", Name: "auth_filter_outcomes_total", Help: "Number of requests by auth filter outcome."},
		[]string{"outcome"},
	)
	// LoginAttempts counts logins by result: success, failure (bad credentials) or error (500).
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yoga", Name: "login_attempts_total", Help: "Number of login attempts by result."},
		[]string{"result"},
	)
	// Registrations counts sign-ups by result: success, email_taken or error.
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "yoga", Name: "registrations_total", Help: "Number of registration attempts by result."},
		[]string{"result"},
	)
)

// RegisterCollectors registers every collector of this package with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthOutcomes)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(Registrations)
}
