// Package observability exposes Prometheus metrics for the feed service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conditional request outcomes.
const (
	OutcomeNotModified        = "not_modified"
	OutcomePreconditionFailed = "precondition_failed"
	OutcomeMatch              = "match"
)

var (
	// ConditionalRequests counts If-None-Match / If-Match evaluations by outcome.
	ConditionalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedsvc_conditional_requests_total",
		Help: "Total number of conditional request header evaluations by outcome",
	}, []string{"header", "outcome"})

	// StoreErrors counts unexpected relational store failures by operation.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedsvc_store_errors_total",
		Help: "Total number of unexpected store failures by operation",
	}, []string{"operation"})
)
