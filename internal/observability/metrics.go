package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposed on /metrics. Labels stay low-cardinality: status is one
// of sent/failed/skipped.
var (
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_messages_total",
		Help: "Campaign messages by delivery outcome",
	}, []string{"status"})

	CampaignsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_executions_total",
		Help: "Campaign executions by terminal status",
	}, []string{"status"})

	CampaignDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_execution_seconds",
		Help:    "Wall time of a full campaign execution",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
