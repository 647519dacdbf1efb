package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

// Metrics holds the HTTP and audit collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	reports  prometheus.Counter
	samples  *prometheus.CounterVec
	energy   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motor_audit_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "motor_audit_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "motor_audit_reports_total",
			Help: "Audit reports computed.",
		}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motor_audit_samples_total",
			Help: "Energy samples classified, by state.",
		}, []string{"state"}),
		energy: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motor_audit_energy_kwh_total",
			Help: "Energy (truncated kWh) attributed to each state.",
		}, []string{"state"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.latency, m.reports, m.samples, m.energy} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler records request count and latency per route template.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveReport records the per-state totals of one audit run.
func (m *Metrics) ObserveReport(res *audit.Result) {
	m.reports.Inc()
	for _, s := range model.AllStates {
		m.samples.WithLabelValues(string(s)).Add(float64(res.Counts[s]))
	}
	for _, s := range model.EnergyStates {
		m.energy.WithLabelValues(string(s)).Add(float64(res.Energy[s]))
	}
}
