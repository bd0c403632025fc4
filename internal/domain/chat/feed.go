// internal/domain/chat/feed.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Feed delivers inbound conversation messages over Redis pub/sub. One
// subscription per open thread; messages arrive in publish order.
type Feed struct {
	redisClient   *redis.Client
	channelPrefix string
}

// NewFeed creates a message feed over the given Redis client
func NewFeed(redisClient *redis.Client, channelPrefix string) *Feed {
	return &Feed{
		redisClient:   redisClient,
		channelPrefix: channelPrefix,
	}
}

// Publish broadcasts a persisted message to the conversation's channel
func (f *Feed) Publish(ctx context.Context, message *Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message for feed: %w", err)
	}

	channel := f.channelFor(message.ConversationID)
	if err := f.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish message to feed: %w", err)
	}
	return nil
}

// Subscribe opens a cancellable subscription for one conversation. The
// returned handle yields messages in arrival order until Close is called or
// the context is cancelled; it never restarts on its own.
func (f *Feed) Subscribe(ctx context.Context, conversationID uint) (*Subscription, error) {
	pubsub := f.redisClient.Subscribe(ctx, f.channelFor(conversationID))

	// Confirm the subscription before handing the feed out
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to conversation %d: %w", conversationID, err)
	}

	sub := &Subscription{
		ConversationID: conversationID,
		pubsub:         pubsub,
		events:         make(chan Message),
	}
	go sub.pump(ctx, pubsub.Channel())

	return sub, nil
}

func (f *Feed) channelFor(conversationID uint) string {
	return fmt.Sprintf("%s%d", f.channelPrefix, conversationID)
}

// Subscription is a live feed of one conversation's inbound messages
type Subscription struct {
	ConversationID uint

	pubsub *redis.PubSub
	events chan Message
}

// Events returns the message stream. The channel closes when the
// subscription is closed or its context ends.
func (s *Subscription) Events() <-chan Message {
	return s.events
}

// Close releases the feed. Safe to call after the context has ended.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

func (s *Subscription) pump(ctx context.Context, ch <-chan *redis.Message) {
	defer close(s.events)

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-ch:
			if !ok {
				return
			}

			var message Message
			if err := json.Unmarshal([]byte(raw.Payload), &message); err != nil {
				logrus.WithError(err).Warn("Discarding undecodable chat feed payload")
				continue
			}

			select {
			case s.events <- message:
			case <-ctx.Done():
				return
			}
		}
	}
}
