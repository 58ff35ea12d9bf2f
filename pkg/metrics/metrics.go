package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pizzeria"

// ServerMetrics — HTTP-метрики и счётчики бизнес-событий сервиса.
type ServerMetrics struct {
	Requests     *prometheus.CounterVec
	LatencyMS    *prometheus.HistogramVec
	Orders       prometheus.Counter
	OrderTotal   prometheus.Counter
	Rejections   *prometheus.CounterVec
	Availability *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewServerMetrics регистрирует метрики в reg. nil — глобальный реестр prometheus.
func NewServerMetrics(reg *prometheus.Registry) *ServerMetrics {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	m := &ServerMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		Orders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Orders accepted for submission.",
		}),
		OrderTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_revenue_cents_total",
			Help:      "Sum of submitted order totals in cents.",
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Submissions rejected before reaching storage.",
		}, []string{"reason"}),
		Availability: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_checks_total",
			Help:      "Availability decisions by result.",
		}, []string{"open", "fallback"}),
		gatherer: gatherer,
	}

	registerer.MustRegister(m.Requests, m.LatencyMS, m.Orders, m.OrderTotal, m.Rejections, m.Availability)
	return m
}

// ObserveRequest учитывает обработанный HTTP-запрос.
func (m *ServerMetrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

func (m *ServerMetrics) OrderSubmitted(total int64) {
	m.Orders.Inc()
	m.OrderTotal.Add(float64(total))
}

func (m *ServerMetrics) OrderRejected(reason string) {
	m.Rejections.WithLabelValues(reason).Inc()
}

func (m *ServerMetrics) AvailabilityEvaluated(open bool, fallback bool) {
	m.Availability.WithLabelValues(strconv.FormatBool(open), strconv.FormatBool(fallback)).Inc()
}

// Handler отдаёт метрики в формате Prometheus.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
