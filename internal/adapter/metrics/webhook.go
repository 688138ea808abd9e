package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics counts leaderboard shares sent to the chat webhook.
type WebhookMetrics struct {
	SharesTotal  *prometheus.CounterVec
	SendDuration prometheus.Histogram
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		SharesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "shares_total",
			Help:      "Total number of leaderboard shares, by result.",
		}, []string{"result"}),
		SendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "send_duration_seconds",
			Help:      "Duration of webhook deliveries including retries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.SharesTotal, m.SendDuration)
	return m
}
