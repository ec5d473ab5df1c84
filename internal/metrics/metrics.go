package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "event_dispatch"

// Collector - метрики HTTP API и хаба сообщений в собственном реестре
type Collector struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	connections prometheus.Gauge
	messages    *prometheus.CounterVec
	dropped     prometheus.Counter
	skippedRows prometheus.Counter
}

// NewCollector создает коллектор; при reg == nil используется новый реестр
func NewCollector(reg *prometheus.Registry) (*Collector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{registry: reg}

	var err error
	if c.requestDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})); err != nil {
		return nil, err
	}
	if c.requestTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})); err != nil {
		return nil, err
	}
	if c.connections, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "connections",
		Help:      "Open hub connections.",
	})); err != nil {
		return nil, err
	}
	if c.messages, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "messages_total",
		Help:      "Messages persisted and fanned out, by content type.",
	}, []string{"content_type"})); err != nil {
		return nil, err
	}
	if c.dropped, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "dropped_clients_total",
		Help:      "Connections dropped because their send queue was full.",
	})); err != nil {
		return nil, err
	}
	if c.skippedRows, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "history_rows_skipped_total",
		Help:      "Stored messages skipped on replay because their content is invalid.",
	})); err != nil {
		return nil, err
	}
	return c, nil
}

// register переиспользует уже зарегистрированный коллектор с тем же описанием
func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return collector, nil
}

// Handler отдает метрики в формате Prometheus
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware записывает длительность и статус запросов gin.
// Путь берется из шаблона маршрута, чтобы идентификаторы не размножали серии.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		c.requestTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(ctx.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (c *Collector) ClientConnected()    { c.connections.Inc() }
func (c *Collector) ClientDisconnected() { c.connections.Dec() }
func (c *Collector) ClientDropped()      { c.dropped.Inc() }
func (c *Collector) HistoryRowSkipped()  { c.skippedRows.Inc() }

func (c *Collector) MessageSent(contentType string) {
	c.messages.WithLabelValues(contentType).Inc()
}
