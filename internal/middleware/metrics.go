package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "turismo",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "turismo",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	// PedidosCreados counts successful checkouts.
	PedidosCreados = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turismo",
		Name:      "pedidos_creados_total",
		Help:      "Orders created through checkout.",
	})

	// PagosConfirmados counts successfully charged orders.
	PagosConfirmados = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turismo",
		Name:      "pagos_confirmados_total",
		Help:      "Orders successfully charged.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpLatency, PedidosCreados, PagosConfirmados)
}

// Metrics records per-route request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		httpRequests.WithLabelValues(handler, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
