package metrics

import (
	"net/http"
	"strconv"
	"time"

	"room-reservation/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated registry; nothing is registered on the global default.
type Metrics struct {
	registry     *prometheus.Registry
	commands     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	mailboxDepth prometheus.Gauge
	httpRequests *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "engine",
			Name:      "commands_total",
			Help:      "Commands processed by the reservation engine, by command and reply status.",
		}, []string{"command", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "engine",
			Name:      "command_duration_seconds",
			Help:      "Time from dispatch to reply for engine commands.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 3},
		}, []string{"command"}),
		mailboxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "engine",
			Name:      "mailbox_depth",
			Help:      "Commands waiting in the engine mailbox.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route template and status.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.commands,
		m.duration,
		m.mailboxDepth,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CommandProcessed(kind string, status int, elapsed time.Duration) {
	m.commands.WithLabelValues(kind, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) MailboxDepth(depth int) {
	m.mailboxDepth.Set(float64(depth))
}

func (m *Metrics) HTTPRequest(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Nop discards everything; used when METRICS_ENABLED=false.
type Nop struct{}

func (Nop) CommandProcessed(string, int, time.Duration) {}
func (Nop) MailboxDepth(int)                            {}
func (Nop) HTTPRequest(string, string, int)             {}
