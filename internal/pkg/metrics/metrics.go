// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"shipment/internal/core/domain/model/ledger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shipment"

// Metrics registers its collectors on its own registry, so several instances can
// live in one process.
type Metrics struct {
	registry *prometheus.Registry

	transactionsTotal   *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	blockHeight         prometheus.Gauge

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		transactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "transactions_total",
				Help:      "Ledger operations by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		transactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "transaction_duration_seconds",
				Help:      "Time from submission to confirmation or failure.",
				Buckets:   []float64{.005, .01, .05, .1, .5, 1, 5, 15, 30, 60, 120},
			},
			[]string{"method"},
		),
		blockHeight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "block_height",
				Help:      "Last block sealed by the local ledger.",
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of requests being served.",
			},
		),
	}
}

// Registry returns the registry to expose, typically through promhttp.HandlerFor.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordTransaction implements commands.TransactionRecorder.
func (m *Metrics) RecordTransaction(method ledger.Method, outcome string, elapsed time.Duration) {
	m.transactionsTotal.WithLabelValues(string(method), outcome).Inc()
	m.transactionDuration.WithLabelValues(string(method)).Observe(elapsed.Seconds())
}

// SetBlockHeight publishes the local ledger's head.
func (m *Metrics) SetBlockHeight(height uint64) {
	m.blockHeight.Set(float64(height))
}

// Middleware counts requests by route template rather than raw path, which keeps
// order codes out of label values.
func (m *Metrics) Middleware(skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip[c.Request().URL.Path] {
				return next(c)
			}

			m.requestsInFlight.Inc()
			defer m.requestsInFlight.Dec()

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
