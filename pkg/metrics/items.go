package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpdatePipelineMetrics records item update pipeline outcomes.
type UpdatePipelineMetrics struct {
	duration  *prometheus.HistogramVec
	updates   *prometheus.CounterVec
	revisions prometheus.Counter
	staleBids prometheus.Counter
}

// NewUpdatePipelineMetrics registers the pipeline metrics on the provided registerer.
func NewUpdatePipelineMetrics(reg prometheus.Registerer) *UpdatePipelineMetrics {
	if reg == nil {
		return &UpdatePipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "item_update_duration_seconds",
		Help:    "Duration of item update pipeline runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "item_updates_total",
		Help: "Item update pipeline runs by outcome.",
	}, []string{"outcome"})
	revisions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "item_revision_increments_total",
		Help: "Specification revision increments.",
	})
	staleBids := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "item_stale_bids_total",
		Help: "Bids flagged stale by revision increments.",
	})
	reg.MustRegister(duration, updates, revisions, staleBids)
	return &UpdatePipelineMetrics{
		duration:  duration,
		updates:   updates,
		revisions: revisions,
		staleBids: staleBids,
	}
}

// ObserveUpdate records one pipeline run with its outcome label.
func (m *UpdatePipelineMetrics) ObserveUpdate(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	label := normalizeLabel(outcome)
	m.duration.WithLabelValues(label).Observe(duration.Seconds())
	m.updates.WithLabelValues(label).Inc()
}

// IncRevision counts one revision increment.
func (m *UpdatePipelineMetrics) IncRevision() {
	if m == nil || m.revisions == nil {
		return
	}
	m.revisions.Inc()
}

// AddStaleBids counts bids flagged stale.
func (m *UpdatePipelineMetrics) AddStaleBids(count int) {
	if m == nil || m.staleBids == nil || count <= 0 {
		return
	}
	m.staleBids.Add(float64(count))
}
