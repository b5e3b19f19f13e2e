package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"feedline/internal/middleware"
	"feedline/internal/observability"
)

// Feed mutation actions carried by broadcast events.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// FeedEvent is the wire shape of a feed mutation broadcast. Post carries the
// full post for create/update and the bare post ID for delete.
type FeedEvent struct {
	Channel string `json:"channel"`
	Action  string `json:"action"`
	Post    any    `json:"post"`
}

// Broadcaster is the explicitly constructed broadcast-channel handle injected
// into the server at startup. Publishing is fire-and-forget: failures are
// logged and never surfaced to the originating request.
type Broadcaster struct {
	hub      *Hub
	notifier *Notifier
	logger   *slog.Logger
}

// NewBroadcaster wires a hub and an optional Redis notifier into one handle.
func NewBroadcaster(hub *Hub, notifier *Notifier) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		notifier: notifier,
		logger:   middleware.Logger,
	}
}

// Hub exposes the local subscriber hub for connection registration.
func (b *Broadcaster) Hub() *Hub {
	return b.hub
}

// Publish emits exactly one feed event for a successful mutation. When Redis
// is wired, the event goes through the shared channel and the subscription
// echoes it back to the local hub, so each connected client sees it once
// regardless of which instance served the request. Without Redis the event
// fans out locally.
func (b *Broadcaster) Publish(ctx context.Context, action string, post any) {
	event := FeedEvent{Channel: "posts", Action: action, Post: post}
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to marshal feed event",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return
	}

	observability.FeedEventsPublished.WithLabelValues(action).Inc()

	if b.notifier.Enabled() {
		if err := b.notifier.PublishFeed(ctx, string(payload)); err != nil {
			b.logger.ErrorContext(ctx, "failed to publish feed event",
				slog.String("action", action),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	b.hub.BroadcastAll(string(payload))
}
