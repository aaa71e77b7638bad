package docserver

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPrefix = "asyncspec"

// Metrics records document generation in a private Prometheus registry.
type Metrics struct {
	registry      *prometheus.Registry
	generations   *prometheus.CounterVec
	duration      prometheus.Histogram
	documentBytes *prometheus.GaugeVec
	components    *prometheus.GaugeVec
	collisions    prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// NewMetrics creates the generation metrics with Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricsPrefix + "_generations_total",
				Help: "Total number of document generations by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricsPrefix + "_generation_duration_seconds",
			Help:    "Time taken to load the manifest and assemble the document",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		documentBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricsPrefix + "_document_bytes",
				Help: "Size of the current document by encoding",
			},
			[]string{"format"},
		),
		components: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricsPrefix + "_document_components",
				Help: "Number of entries in the current document by kind",
			},
			[]string{"kind"},
		),
		collisions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricsPrefix + "_document_collisions",
			Help: "Component name collisions in the current document",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricsPrefix + "_last_success_timestamp_seconds",
			Help: "Unix time of the last successful generation",
		}),
	}

	reg.MustRegister(
		m.generations,
		m.duration,
		m.documentBytes,
		m.components,
		m.collisions,
		m.lastSuccess,
	)
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) observe(d time.Duration, snap *Snapshot, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
	if err != nil || snap == nil {
		m.generations.WithLabelValues("failure").Inc()
		return
	}
	m.generations.WithLabelValues("success").Inc()
	m.lastSuccess.Set(float64(snap.Generated.Unix()))
	m.documentBytes.WithLabelValues("json").Set(float64(len(snap.JSON)))
	m.documentBytes.WithLabelValues("yaml").Set(float64(len(snap.YAML)))

	s := snap.Stats
	m.components.WithLabelValues("servers").Set(float64(s.Servers))
	m.components.WithLabelValues("channels").Set(float64(s.Channels))
	m.components.WithLabelValues("operations").Set(float64(s.Operations))
	m.components.WithLabelValues("messages").Set(float64(s.Messages))
	m.components.WithLabelValues("schemas").Set(float64(s.Schemas))
	m.collisions.Set(float64(len(snap.Warnings)))
}
