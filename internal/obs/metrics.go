// Package obs exposes the service's Prometheus metrics.
package obs

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeDenied   = "denied"
	OutcomeIllegal  = "illegal"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Metrics owns its registry so tests and multiple servers do not collide on the
// default one.
type Metrics struct {
	registry *prometheus.Registry

	transitions      *prometheus.CounterVec
	permissionDenied *prometheus.CounterVec
	ordersByStatus   *prometheus.GaugeVec

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_transitions_total",
				Help: "Order lifecycle transition attempts by action and outcome.",
			},
			[]string{"action", "outcome"},
		),
		permissionDenied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "permission_denied_total",
				Help: "Requests refused by the authorization policy.",
			},
			[]string{"action"},
		),
		ordersByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orders_by_status",
				Help: "Number of orders currently in each status.",
			},
			[]string{"status"},
		),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transitions,
		m.permissionDenied,
		m.ordersByStatus,
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveTransition counts one transition attempt, classifying err into an outcome.
func (m *Metrics) ObserveTransition(action order.Action, err error) {
	m.transitions.WithLabelValues(action.String(), TransitionOutcome(err)).Inc()
}

func (m *Metrics) ObservePermissionDenied(action string) {
	m.permissionDenied.WithLabelValues(action).Inc()
}

// SetStatusDistribution overwrites the gauge with a fresh count for every status.
func (m *Metrics) SetStatusDistribution(counts []queries.StatusCount) {
	for _, c := range counts {
		m.ordersByStatus.WithLabelValues(c.Status.String()).Set(float64(c.Count))
	}
}

// ObserveRequest records one finished HTTP request. route is the router template,
// not the raw path, to keep cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, route, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}

func (m *Metrics) RequestStarted() {
	m.httpInFlight.Inc()
}

func (m *Metrics) RequestFinished() {
	m.httpInFlight.Dec()
}

func TransitionOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, errs.ErrPermissionDenied):
		return OutcomeDenied
	case errors.Is(err, errs.ErrIllegalTransition):
		return OutcomeIllegal
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	default:
		return OutcomeFailed
	}
}
