// Package metrics exposes Prometheus collectors for the Payeer connector.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "payeer"

// Metrics groups the collectors of one process. All methods are safe on a nil receiver.
type Metrics struct {
	registry     *prometheus.Registry
	apiCalls     *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
	callbacks    *prometheus.CounterVec
	checkoutURLs *prometheus.CounterVec
}

// New creates the collectors on a private registry, together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "api", Name: "calls_total",
			Help: "Remote API calls by action and result.",
		}, []string{"action", "result"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "api", Name: "call_duration_seconds",
			Help:    "Remote API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "merchant", Name: "callbacks_total",
			Help: "Status callbacks by outcome.",
		}, []string{"outcome"}),
		checkoutURLs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "merchant", Name: "checkouts_total",
			Help: "Checkout links built by currency.",
		}, []string{"currency"}),
	}
	reg.MustRegister(
		m.apiCalls,
		m.apiDuration,
		m.callbacks,
		m.checkoutURLs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAPICall records one remote call. result is "ok", "api_error" or "transport_error".
func (m *Metrics) ObserveAPICall(action, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiCalls.WithLabelValues(action, result).Inc()
	m.apiDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// ObserveCallback records the outcome of one status callback.
func (m *Metrics) ObserveCallback(outcome string) {
	if m == nil {
		return
	}
	m.callbacks.WithLabelValues(outcome).Inc()
}

// ObserveCheckout records one built checkout link.
func (m *Metrics) ObserveCheckout(currency string) {
	if m == nil {
		return
	}
	m.checkoutURLs.WithLabelValues(currency).Inc()
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
