package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SalesTotal          *prometheus.CounterVec
	TyresSoldTotal      *prometheus.CounterVec
	SaleRejections      *prometheus.CounterVec
}

// New registers every collector on a fresh registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		SalesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tyre_sales_total",
				Help: "Committed tyre sales",
			},
			[]string{"shop", "channel"},
		),
		TyresSoldTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tyre_units_sold_total",
				Help: "Tyre units sold",
			},
			[]string{"shop", "channel"},
		),
		SaleRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tyre_sale_rejections_total",
				Help: "Sale attempts that did not commit, by reason",
			},
			[]string{"reason"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SalesTotal,
		m.TyresSoldTotal,
		m.SaleRejections,
	)
	return m
}

func (m *Metrics) SaleRecorded(shop model.ShopCode, channel model.CustomerType, qty int) {
	m.SalesTotal.WithLabelValues(string(shop), string(channel)).Inc()
	m.TyresSoldTotal.WithLabelValues(string(shop), string(channel)).Add(float64(qty))
}

func (m *Metrics) SaleRejected(reason string) {
	m.SaleRejections.WithLabelValues(reason).Inc()
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration.Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
