package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spigell/bizfit/internal/matching"
)

// Metrics instruments match runs and cache lookups. A nil *Metrics is a
// no-op recorder.
type Metrics struct {
	registry prometheus.Gatherer

	MatchRuns          prometheus.Counter
	MatchDuration      prometheus.Histogram
	AnswerFallbacks    *prometheus.CounterVec
	SpacingAdjustments prometheus.Counter
	MatchCategories    *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
}

// New registers the collectors with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the collectors with reg. gatherer is used by
// WriteTextfile and may be nil when the registry is exported elsewhere.
func NewWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: gatherer,
		MatchRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizfit_match_runs_total",
			Help: "Total number of match runs",
		}),
		MatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bizfit_match_duration_seconds",
			Help:    "Duration of a match run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		AnswerFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizfit_answer_fallbacks_total",
			Help: "Answers that fell back to a default or were adjusted, by reason",
		}, []string{"reason"}),
		SpacingAdjustments: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizfit_spacing_adjustments_total",
			Help: "Scores lowered by the spacing stage",
		}),
		MatchCategories: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizfit_match_category_total",
			Help: "Ranked business models by category",
		}, []string{"category"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizfit_cache_lookups_total",
			Help: "Result cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveMatch records a finished match run.
func (m *Metrics) ObserveMatch(o *matching.Outcome) {
	if m == nil || o == nil {
		return
	}

	m.MatchRuns.Inc()
	m.MatchDuration.Observe(o.Duration.Seconds())
	for _, d := range o.Diagnostics {
		m.AnswerFallbacks.WithLabelValues(string(d.Reason)).Inc()
	}
	m.SpacingAdjustments.Add(float64(o.Adjusted()))
	for _, r := range o.Results {
		m.MatchCategories.WithLabelValues(string(r.Category)).Inc()
	}
}

// CacheLookup records the result of a cache lookup.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if m.registry == nil {
		return fmt.Errorf("metrics gatherer is not configured")
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
