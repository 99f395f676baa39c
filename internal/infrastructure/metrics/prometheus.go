package metrics

import (
	"net/http"

	"simple-gifting/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exposes application counters to Prometheus
type PrometheusRecorder struct {
	registry      *prometheus.Registry
	compatibility *prometheus.CounterVec
	themeSteps    *prometheus.CounterVec
	webhooks      *prometheus.CounterVec
}

// NewPrometheusRecorder registers the counters on a fresh registry together
// with the Go runtime and process collectors
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		compatibility: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simple_gifting",
			Name:      "theme_compatibility_checks_total",
			Help:      "Theme compatibility checks by outcome.",
		}, []string{"outcome"}),
		themeSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simple_gifting",
			Name:      "theme_steps_total",
			Help:      "Theme injection and removal steps by result.",
		}, []string{"operation", "step", "result"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "simple_gifting",
			Name:      "webhooks_received_total",
			Help:      "Verified webhook deliveries by topic and status.",
		}, []string{"topic", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.compatibility,
		r.themeSteps,
		r.webhooks,
	)
	return r
}

var _ ports.MetricsRecorder = (*PrometheusRecorder)(nil)

func (r *PrometheusRecorder) CompatibilityChecked(outcome string) {
	r.compatibility.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) ThemeStep(operation, step, result string) {
	r.themeSteps.WithLabelValues(operation, step, result).Inc()
}

func (r *PrometheusRecorder) WebhookReceived(topic, status string) {
	r.webhooks.WithLabelValues(topic, status).Inc()
}

// Handler serves the registry in the Prometheus text format
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the registry, mainly for tests
func (r *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
