package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vote and submission results used as label values.
const (
	ResultApplied     = "applied"
	ResultRateLimited = "rate_limited"
	ResultNotFound    = "not_found"

	ResultAccepted  = "accepted"
	ResultEmpty     = "empty"
	ResultProfane   = "profane"
	ResultDuplicate = "duplicate"
)

// VoteMetrics holds Prometheus metrics for votes and name submissions.
type VoteMetrics struct {
	VotesProcessed     *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
	NamesSubmitted     *prometheus.CounterVec
	NamesRegistered    prometheus.Gauge
}

// NewVoteMetrics creates and registers vote pipeline metrics on the given registry.
func NewVoteMetrics(reg prometheus.Registerer) *VoteMetrics {
	m := &VoteMetrics{
		VotesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_processed_total",
			Help:      "Total number of votes processed, by result.",
		}, []string{"result"}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vote_processing_duration_seconds",
			Help:      "Duration of vote processing in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		NamesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "names_submitted_total",
			Help:      "Total number of name suggestions, by admission result.",
		}, []string{"result"}),
		NamesRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "names_registered",
			Help:      "Number of names currently on the board.",
		}),
	}

	reg.MustRegister(m.VotesProcessed, m.ProcessingDuration, m.NamesSubmitted, m.NamesRegistered)
	return m
}
