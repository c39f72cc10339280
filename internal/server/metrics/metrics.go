// Package metrics exposes Prometheus instrumentation for the auth endpoints.
package metrics

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels.
const (
	OperationLogin     = "login"
	OperationRegister  = "register"
	OperationDemoLogin = "demo_login"
)

// Outcome labels.
const (
	OutcomeSuccess            = "success"
	OutcomeMissingCredentials = "missing_credentials"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeEmailExists        = "email_exists"
	OutcomeInternalFailure    = "internal_failure"
)

// Recorder counts auth operations by outcome and times them.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
// Panics if registration fails (following prometheus convention).
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_operations_total",
				Help: "Total number of auth operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auth_operation_duration_seconds",
				Help:    "Auth operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(r.operations, r.duration)
	return r
}

// Observe records one finished operation.
func (r *Recorder) Observe(operation, outcome string, d time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// OutcomeFor maps an operation error to its outcome label.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, common.ErrMissingCredentials):
		return OutcomeMissingCredentials
	case errors.Is(err, common.ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	case errors.Is(err, common.ErrEmailExists):
		return OutcomeEmailExists
	default:
		return OutcomeInternalFailure
	}
}
