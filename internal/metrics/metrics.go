package metrics

import (
	"net/http"

	"github.com/NaiduBagana/cam2cart/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg          *prometheus.Registry
	Loads        *prometheus.CounterVec
	LoadFailures *prometheus.CounterVec
	LoadLatency  prometheus.Histogram
	Superseded   prometheus.Counter
	Generation   prometheus.Gauge
	JournalErrs  prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cam2cart_loads_total",
		Help: "Order loads by source of the resulting record.",
	}, []string{"source"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cam2cart_load_failures_total",
		Help: "Failed order loads by failure kind.",
	}, []string{"kind"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cam2cart_load_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	superseded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cam2cart_loads_superseded_total",
		Help: "Loads dropped because a later refresh was already displayed.",
	})
	generation := prometheus.NewGauge(prometheus.GaugeOpts{Name: "cam2cart_displayed_generation"})
	journalErrs := prometheus.NewCounter(prometheus.CounterOpts{Name: "cam2cart_journal_errors_total"})

	r.MustRegister(loads, failures, latency, superseded, generation, journalErrs)
	return &Registry{
		reg:          r,
		Loads:        loads,
		LoadFailures: failures,
		LoadLatency:  latency,
		Superseded:   superseded,
		Generation:   generation,
		JournalErrs:  journalErrs,
	}
}

func (r *Registry) ObserveLoad(source models.Source, failureKind string, seconds float64) {
	r.Loads.WithLabelValues(source.String()).Inc()
	if failureKind != "" {
		r.LoadFailures.WithLabelValues(failureKind).Inc()
	}
	r.LoadLatency.Observe(seconds)
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
