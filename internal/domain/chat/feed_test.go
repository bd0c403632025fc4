// internal/domain/chat/feed_test.go
package chat

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription(conversationID uint) (*Subscription, chan *redis.Message) {
	sub := &Subscription{
		ConversationID: conversationID,
		events:         make(chan Message),
	}
	return sub, make(chan *redis.Message, 4)
}

func publish(t *testing.T, ch chan *redis.Message, message Message) {
	t.Helper()

	payload, err := json.Marshal(message)
	require.NoError(t, err)
	ch <- &redis.Message{Payload: string(payload)}
}

func TestSubscriptionForwardsMessagesInOrder(t *testing.T) {
	sub, ch := newTestSubscription(1)
	go sub.pump(context.Background(), ch)

	publish(t, ch, Message{ID: 1, ConversationID: 1, SenderID: 7, Body: "hello"})
	publish(t, ch, Message{ID: 2, ConversationID: 1, SenderID: 99, FromSupport: true, Body: "hi there"})
	close(ch)

	first := <-sub.Events()
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, "hello", first.Body)

	second := <-sub.Events()
	assert.Equal(t, uint(2), second.ID)
	assert.True(t, second.FromSupport)

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestSubscriptionSkipsUndecodablePayloads(t *testing.T) {
	sub, ch := newTestSubscription(1)
	go sub.pump(context.Background(), ch)

	ch <- &redis.Message{Payload: "{not json"}
	publish(t, ch, Message{ID: 3, ConversationID: 1, Body: "still here"})
	close(ch)

	got := <-sub.Events()
	assert.Equal(t, uint(3), got.ID)

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestSubscriptionStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub, ch := newTestSubscription(1)
	go sub.pump(ctx, ch)

	cancel()

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestChannelNaming(t *testing.T) {
	feed := NewFeed(nil, "chat:conversation:")

	assert.Equal(t, "chat:conversation:42", feed.channelFor(42))
}
