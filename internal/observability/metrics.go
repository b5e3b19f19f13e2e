// Package observability exposes Prometheus metrics for the feed service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveWebSockets is the gauge of currently connected feed subscribers.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feedline_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// FeedEventsPublished counts broadcast events by mutation action.
	FeedEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedline_feed_events_published_total",
		Help: "Total feed mutation events published by action",
	}, []string{"action"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedline_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// ImageArtifactRemovals counts best-effort image file deletions by outcome.
	ImageArtifactRemovals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedline_image_artifact_removals_total",
		Help: "Total image artifact removal attempts by outcome",
	}, []string{"outcome"})
)
