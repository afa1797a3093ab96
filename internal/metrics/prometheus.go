// Package metrics exports vector store activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hyperjump/vecmem/internal/vector"
)

const defaultNamespace = "vecmem"

// Prometheus implements vector.MetricsCollector on a private registry.
type Prometheus struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	requested  prometheus.Histogram
	returned   prometheus.Histogram
}

var _ vector.MetricsCollector = (*Prometheus)(nil)

// NewPrometheus creates collectors under namespace (default "vecmem") and registers them
// on a fresh registry, so several instances can coexist in one process.
func NewPrometheus(namespace string) *Prometheus {
	if namespace == "" {
		namespace = defaultNamespace
	}
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Store operations by type and outcome.",
		}, []string{"op", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of store operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
		requested: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_requested_k",
			Help:      "Number of results requested per query.",
			Buckets:   prometheus.LinearBuckets(0, 5, 6),
		}),
		returned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of results returned per query.",
			Buckets:   prometheus.LinearBuckets(0, 5, 6),
		}),
	}
	p.registry.MustRegister(p.operations, p.latency, p.requested, p.returned)
	return p
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordInsert counts an insert and observes its latency.
func (p *Prometheus) RecordInsert(d time.Duration, err error) {
	p.operations.WithLabelValues("insert", status(err)).Inc()
	p.latency.WithLabelValues("insert").Observe(d.Seconds())
}

// RecordQuery counts a query and observes its latency. Successful queries also observe
// the requested k and the result count.
func (p *Prometheus) RecordQuery(k, returned int, d time.Duration, err error) {
	p.operations.WithLabelValues("query", status(err)).Inc()
	p.latency.WithLabelValues("query").Observe(d.Seconds())
	if err == nil {
		p.requested.Observe(float64(k))
		p.returned.Observe(float64(returned))
	}
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteText writes every registered metric family to w in the Prometheus text format.
func (p *Prometheus) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
