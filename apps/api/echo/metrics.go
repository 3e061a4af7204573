package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/phoebuz/core/study"
)

const metricsNamespace = "phoebuz"

// Metrics are the API's prometheus collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the API collectors on reg. workspaces, if not nil, is reported as
// the number of open workspaces.
func NewMetrics(reg prometheus.Registerer, workspaces *study.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latencies, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)

	if workspaces != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "open_workspaces",
			Help:      "Identities with a loaded workspace.",
		}, func() float64 { return float64(workspaces.Len()) }))
	}
	return m
}

func (m *Metrics) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err) // writes the response, so the status below is final
			}

			route := ctx.Path()
			method := ctx.Request().Method
			code := strconv.Itoa(ctx.Response().Status)
			m.requests.WithLabelValues(method, route, code).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
