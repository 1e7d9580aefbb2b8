// Package metrics exports tool execution metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/tools"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jsonkit"

// Metrics records tool executions. It implements tools.Observer.
type Metrics struct {
	registry   *prometheus.Registry
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ tools.Observer = (*Metrics)(nil)

// New creates the collectors on a dedicated registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_executions_total",
			Help:      "Tool executions by tool, outcome and error code.",
		}, []string{"tool", "outcome", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_execution_duration_seconds",
			Help:      "Time spent executing a tool.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"tool"}),
	}
	m.registry.MustRegister(
		m.executions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveExecution records one execution.
func (m *Metrics) ObserveExecution(tool tools.ToolType, success bool, code errors.ErrorType, elapsed time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.executions.WithLabelValues(string(tool), outcome, string(code)).Inc()
	m.duration.WithLabelValues(string(tool)).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
