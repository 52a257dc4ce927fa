package flood

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathflood_requests_received_total",
		Help: "Search requests received by a node",
	}, []string{"node"})

	requestsForwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathflood_requests_forwarded_total",
		Help: "Search requests forwarded by a node to its neighbours",
	}, []string{"node"})

	repliesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathflood_replies_sent_total",
		Help: "Replies sent by a node that recognized itself as the target",
	}, []string{"node"})

	messagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathflood_messages_dropped_total",
		Help: "Messages dropped by a node, by reason",
	}, []string{"node", "reason"})

	searchesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathflood_searches_total",
		Help: "Searches completed by an initiator, by outcome",
	}, []string{"node", "outcome"})

	pathsCollected = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathflood_paths_collected",
		Help:    "Number of replies collected in a single collection window",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// drop reasons
const (
	reasonMalformed   = "malformed"
	reasonSendFailed  = "send_failed"
	reasonLateReply   = "late_reply"
	reasonInvalidTag  = "invalid_tag"
	outcomeFound      = "found"
	outcomeNotFound   = "not_found"
	outcomeSelfSearch = "self"
)
