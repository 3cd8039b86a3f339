// Package notifications provides real-time notification delivery and management.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event is the wire form of a notification pushed to connected clients.
type Event struct {
	Type      string              `json:"type"`
	Actor     models.PublicAuthor `json:"actor"`
	MemeID    *uint               `json:"meme_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// EventOf builds the push payload for a stored notification.
func EventOf(n *models.Notification) Event {
	return Event{
		Type:      n.Type,
		Actor:     models.PublicAuthorOf(&n.Actor),
		MemeID:    n.MemeID,
		CreatedAt: n.CreatedAt,
	}
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification event to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, event Event) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}
	channel := fmt.Sprintf("notifications:user:%d", userID)
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return err
	}
	observability.NotificationsPublished.WithLabelValues(event.Type).Inc()
	return nil
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:broadcast")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
