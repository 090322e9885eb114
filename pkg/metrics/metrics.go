// Package metrics exposes prometheus instrumentation for filter builds
// and graph traversal: probe counters, filter occupancy, and build
// timings. The graph core reports probes through a narrow observer
// interface and stays free of any prometheus dependency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles every collector the tools expose.
type Registry struct {
	registry *prometheus.Registry

	MembershipProbes  *prometheus.CounterVec
	ReadsProcessed    prometheus.Counter
	KmersInserted     prometheus.Counter
	WindowsSkipped    prometheus.Counter
	FilterOccupancy   prometheus.Gauge
	FilterEstimatedFP prometheus.Gauge
	BuildDuration     prometheus.Histogram
}

// NewRegistry creates a Registry with all collectors registered on a
// private prometheus registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.MembershipProbes = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloomdbg_membership_probes_total",
			Help: "Oracle membership probes by traversal direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	r.ReadsProcessed = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "bloomdbg_reads_processed_total",
			Help: "Sequencing reads consumed by the filter builder",
		},
	)

	r.KmersInserted = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "bloomdbg_kmers_inserted_total",
			Help: "K-mers inserted into the Bloom filter",
		},
	)

	r.WindowsSkipped = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "bloomdbg_windows_skipped_total",
			Help: "K-mer windows skipped for containing non-ACGT bases",
		},
	)

	r.FilterOccupancy = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "bloomdbg_filter_occupancy_ratio",
			Help: "Fraction of set bits in the Bloom filter",
		},
	)

	r.FilterEstimatedFP = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "bloomdbg_filter_estimated_false_positive_rate",
			Help: "Estimated false-positive rate at current occupancy",
		},
	)

	r.BuildDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bloomdbg_build_duration_seconds",
			Help:    "Wall-clock duration of filter builds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 1800, 3600},
		},
	)

	return r
}

// ObserveProbe implements the graph's probe observer.
func (r *Registry) ObserveProbe(direction string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.MembershipProbes.WithLabelValues(direction, outcome).Inc()
}

// RecordBuild records the totals of one completed filter build.
func (r *Registry) RecordBuild(reads, kmers, skipped uint64, duration time.Duration) {
	r.ReadsProcessed.Add(float64(reads))
	r.KmersInserted.Add(float64(kmers))
	r.WindowsSkipped.Add(float64(skipped))
	r.BuildDuration.Observe(duration.Seconds())
}

// UpdateFilter publishes the filter's occupancy and estimated
// false-positive rate.
func (r *Registry) UpdateFilter(occupancy, estimatedFP float64) {
	r.FilterOccupancy.Set(occupancy)
	r.FilterEstimatedFP.Set(estimatedFP)
}

// Handler returns an HTTP handler serving the registry in prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying registry for tests.
func (r *Registry) Gather() prometheus.Gatherer {
	return r.registry
}
