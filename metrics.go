package exampleaddon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Metrics collects the addon's Prometheus metrics on its own registry so
// multiple addons can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	endpointRequests *prometheus.CounterVec
	actionExecutions *prometheus.CounterVec
	eventsHandled    *prometheus.CounterVec
}

// NewMetrics creates and registers the addon's collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.endpointRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addon_example_endpoint_requests_total",
		Help: "REST endpoint requests handled by the example addon",
	}, []string{"endpoint"})

	m.actionExecutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addon_example_action_executions_total",
		Help: "UI action executions dispatched to the example addon",
	}, []string{"action"})

	m.eventsHandled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addon_example_events_handled_total",
		Help: "Event bus messages processed by the example addon",
	}, []string{"topic", "status"})

	m.registry.MustRegister(m.endpointRequests, m.actionExecutions, m.eventsHandled)
	return m
}

// RecordEndpointRequest counts one REST request.
func (m *Metrics) RecordEndpointRequest(endpoint string) {
	m.endpointRequests.WithLabelValues(endpoint).Inc()
}

// RecordAction counts one action execution.
func (m *Metrics) RecordAction(action string) {
	m.actionExecutions.WithLabelValues(action).Inc()
}

// RecordEvent counts one handled event with its outcome.
func (m *Metrics) RecordEvent(topic, status string) {
	m.eventsHandled.WithLabelValues(topic, status).Inc()
}

// Handler exposes the addon's registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather returns the current metric families, used in tests.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}
