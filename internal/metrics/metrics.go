// Package metrics records Prometheus metrics for a calendar run.
//
// nar-calendar is a one-shot batch job, so metrics are not served over HTTP.
// Instead the registry can be written once at the end of a run in the text
// exposition format, for pickup by node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pfrederiksen/nar-calendar/internal/schedule"
)

const namespace = "narcal"

// Recorder owns a private registry and the collectors of one run.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	pagesFetched       *prometheus.CounterVec
	fetchDuration      prometheus.Histogram
	entriesParsed      *prometheus.CounterVec
	unrecognizedVenues prometheus.Counter
	entriesEmitted     prometheus.Gauge
	lastRunUnix        prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		pagesFetched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Monthly schedule pages fetched, by result.",
		}, []string{"result"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_fetch_duration_seconds",
			Help:      "Time to fetch and parse one monthly schedule page.",
			Buckets:   prometheus.DefBuckets,
		}),
		entriesParsed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_parsed_total",
			Help:      "Schedule entries parsed, by status.",
		}, []string{"status"}),
		unrecognizedVenues: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unrecognized_venues_total",
			Help:      "Schedule rows skipped because the venue name is not registered.",
		}),
		entriesEmitted: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries_emitted",
			Help:      "Entries written by the last run.",
		}),
		lastRunUnix: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
}

// ObserveFetch records one page fetch and its outcome.
func (r *Recorder) ObserveFetch(d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.pagesFetched.WithLabelValues(result).Inc()
	r.fetchDuration.Observe(d.Seconds())
}

// AddEntries counts parsed entries by status.
func (r *Recorder) AddEntries(entries []schedule.Entry) {
	if r == nil {
		return
	}
	for _, e := range entries {
		r.entriesParsed.WithLabelValues(e.Status.String()).Inc()
	}
}

// AddUnrecognizedVenues counts skipped rows.
func (r *Recorder) AddUnrecognizedVenues(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.unrecognizedVenues.Add(float64(n))
}

// Finish records the emitted entry count and the completion time.
func (r *Recorder) Finish(emitted int, now time.Time) {
	if r == nil {
		return
	}
	r.entriesEmitted.Set(float64(emitted))
	r.lastRunUnix.Set(float64(now.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
