// Package metrics exposes Prometheus counters for agenda operations.
package metrics

import (
	"agenda/errs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agenda"

// OutcomeOK labels operations that returned no error. Failed operations are
// labeled with their application error code.
const OutcomeOK = "ok"

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	created    *prometheus.CounterVec
}

// New registers the agenda collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of agenda operations by entity kind, operation and outcome",
			},
			[]string{"kind", "op", "outcome"},
		),
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_created_total",
				Help:      "Total number of records created by entity kind",
			},
			[]string{"kind"},
		),
	}

	m.registry.MustRegister(
		m.operations,
		m.created,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Observe counts one operation. A nil *Metrics is a no-op.
func (m *Metrics) Observe(kind, op string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = errs.ErrorCode(err)
	}
	m.operations.WithLabelValues(kind, op, outcome).Inc()
	if op == "create" && err == nil {
		m.created.WithLabelValues(kind).Inc()
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
