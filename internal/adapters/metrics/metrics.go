package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"codeflix-catalog/internal/core/port"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

// HTTP holds the request collectors of the api
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registers the http collectors on reg
func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Observe records one served request. route is the matched pattern, not the raw path.
func (m *HTTP) Observe(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

type instrumentedMessageService struct {
	next     port.MessageService
	messages *prometheus.CounterVec
	duration prometheus.Histogram
}

// InstrumentMessageService counts and times every message handled by next
func InstrumentMessageService(next port.MessageService, reg prometheus.Registerer) port.MessageService {
	s := &instrumentedMessageService{
		next: next,
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consumer_messages_total",
			Help:      "Broker messages handled by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "consumer_message_duration_seconds",
			Help:      "Time spent handling one broker message.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(s.messages, s.duration)
	return s
}

func (s *instrumentedMessageService) HandleMessage(ctx context.Context, data []byte) error {
	start := time.Now()
	err := s.next.HandleMessage(ctx, data)
	s.duration.Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	s.messages.WithLabelValues(result).Inc()
	return err
}

// Handler exposes the collectors gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
