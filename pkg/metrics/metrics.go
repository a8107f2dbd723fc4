// Package metrics exposes the ambient prometheus counters/histograms this
// core emits around the payment operation pipeline and webhook intake,
// in the promauto package-level-collector idiom the examples use for
// operational metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	operationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_operation_total",
			Help: "Total operation pipeline executions by flow, connector and outcome.",
		},
		[]string{"flow", "connector", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "router_operation_duration_milliseconds",
			Help:    "Operation pipeline execution latency in milliseconds, by flow and connector.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"flow", "connector"},
	)

	connectorCallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_connector_call_total",
			Help: "Total calls dispatched to an acquirer adapter, by flow, connector and outcome.",
		},
		[]string{"flow", "connector", "outcome"},
	)

	connectorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "router_connector_call_duration_milliseconds",
			Help:    "Acquirer adapter round-trip latency in milliseconds, by flow and connector.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"flow", "connector"},
	)

	webhookVerificationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_webhook_verification_total",
			Help: "Total inbound webhook deliveries by adapter and verification outcome.",
		},
		[]string{"adapter", "outcome"},
	)

	webhookDeduplicatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_webhook_deduplicated_total",
			Help: "Total inbound webhook deliveries discarded as duplicates, by adapter.",
		},
		[]string{"adapter"},
	)
)

// Outcome labels shared by operation and connector-call metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Verification outcome labels for webhook metrics.
const (
	VerificationValid   = "valid"
	VerificationInvalid = "invalid"
)

// Handler serves the prometheus exposition format for a scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordOperation records one operation pipeline execution (spec §4.2):
// one Authorize/Capture/PSync/Void/Verify/RefundExecute/RefundSync call.
func RecordOperation(flow, connector string, durationMs float64, success bool) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeError
	}
	operationTotal.WithLabelValues(flow, connector, outcome).Inc()
	operationDuration.WithLabelValues(flow, connector).Observe(durationMs)
}

// RecordConnectorCall records one round trip through a FlowConnector
// adapter (spec §5), separate from RecordOperation since an operation can
// skip the connector call entirely (CallConnectorAction Avoid/StatusUpdate).
func RecordConnectorCall(flow, connector string, durationMs float64, success bool) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeError
	}
	connectorCallTotal.WithLabelValues(flow, connector, outcome).Inc()
	connectorCallDuration.WithLabelValues(flow, connector).Observe(durationMs)
}

// RecordWebhookVerification records one inbound webhook's signature
// verification outcome (spec §4.5).
func RecordWebhookVerification(adapter string, valid bool) {
	outcome := VerificationValid
	if !valid {
		outcome = VerificationInvalid
	}
	webhookVerificationTotal.WithLabelValues(adapter, outcome).Inc()
}

// RecordWebhookDeduplicated records one inbound webhook discarded because
// its event had already been processed (spec §4.5 idempotency).
func RecordWebhookDeduplicated(adapter string) {
	webhookDeduplicatedTotal.WithLabelValues(adapter).Inc()
}
