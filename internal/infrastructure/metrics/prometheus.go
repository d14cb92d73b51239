package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP collectors. Each instance owns its registry so
// tests can create several without duplicate registration panics.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	savedCarToggles     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request durations.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint", "status"},
		),
		savedCarToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saved_car_toggles_total",
				Help: "Saved car toggles by resulting state.",
			},
			[]string{"saved"},
		),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.savedCarToggles,
		collectors.NewGoCollector(),
	)
	return m
}

// Middleware records count and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			method := c.Request().Method

			m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
			m.httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// RecordToggle counts a saved-car toggle outcome.
func (m *Metrics) RecordToggle(saved bool) {
	m.savedCarToggles.WithLabelValues(strconv.FormatBool(saved)).Inc()
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
