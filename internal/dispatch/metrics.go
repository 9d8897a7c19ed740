// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package dispatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for dispatch metrics.
const (
	StatusSuccess   = "success"
	StatusRejected  = "rejected"
	StatusUnhandled = "unhandled"
	StatusError     = "error"
)

// DispatchTotal counts dispatch calls by verb, handling module, and
// outcome. Use RegisterMetrics to register this with a Prometheus
// registry.
var DispatchTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "strata_dispatch_total",
		Help: "Total number of dispatched actions",
	},
	[]string{"verb", "module", "status"},
)

// DispatchDuration is the histogram for dispatch duration.
var DispatchDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "strata_dispatch_duration_seconds",
		Help:    "Dispatch duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"verb"},
)

// DelegationsTotal counts explicit handler-to-handler delegations.
var DelegationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "strata_delegations_total",
		Help: "Total number of explicit delegations to deeper tiers",
	},
	[]string{"verb"},
)

// UpdateRejections counts state updates rejected by reactive functions.
var UpdateRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "strata_update_rejections_total",
		Help: "Total number of state updates rejected by entity reactions",
	},
	[]string{"verb"},
)

// RegisterMetrics registers dispatch package metrics with the given
// Prometheus registry. Panics if registration fails, following
// prometheus convention.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(DispatchTotal)
	reg.MustRegister(DispatchDuration)
	reg.MustRegister(DelegationsTotal)
	reg.MustRegister(UpdateRejections)
}

// RecordDispatch increments the dispatch counter.
func RecordDispatch(verb, module, status string) {
	DispatchTotal.WithLabelValues(verb, module, status).Inc()
}

// RecordDispatchDuration records how long a dispatch took.
func RecordDispatchDuration(verb string, duration time.Duration) {
	DispatchDuration.WithLabelValues(verb).Observe(duration.Seconds())
}

// RecordDelegation increments the delegation counter.
func RecordDelegation(verb string) {
	DelegationsTotal.WithLabelValues(verb).Inc()
}

// RecordUpdateRejection increments the update rejection counter.
func RecordUpdateRejection(verb string) {
	UpdateRejections.WithLabelValues(verb).Inc()
}
