// internal/domain/chat/service_test.go
package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Conversation{}, &Message{}))
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	return NewService(newTestDB(t), cfg, nil)
}

func TestOpenConversationReusesOpenThread(t *testing.T) {
	service := newTestService(t)

	first, err := service.OpenConversation(7)
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	assert.Equal(t, ConversationStatusOpen, first.Status)

	second, err := service.OpenConversation(7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestOpenConversationAfterCloseCreatesNewThread(t *testing.T) {
	service := newTestService(t)

	first, err := service.OpenConversation(7)
	require.NoError(t, err)
	require.NoError(t, service.CloseConversation(7, first.ID))

	second, err := service.OpenConversation(7)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestOpenConversationsArePerUser(t *testing.T) {
	service := newTestService(t)

	mine, err := service.OpenConversation(1)
	require.NoError(t, err)
	theirs, err := service.OpenConversation(2)
	require.NoError(t, err)

	assert.NotEqual(t, mine.ID, theirs.ID)
}

func TestSendMessageAppendsInOrder(t *testing.T) {
	service := newTestService(t)

	conversation, err := service.OpenConversation(1)
	require.NoError(t, err)

	_, err = service.SendMessage(1, conversation.ID, "hello")
	require.NoError(t, err)
	_, err = service.SupportReply(99, conversation.ID, "hi, how can we help?")
	require.NoError(t, err)
	_, err = service.SendMessage(1, conversation.ID, "my order is late")
	require.NoError(t, err)

	messages, err := service.GetMessages(1, conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, "hello", messages[0].Body)
	assert.False(t, messages[0].FromSupport)
	assert.Equal(t, "hi, how can we help?", messages[1].Body)
	assert.True(t, messages[1].FromSupport)
	assert.Equal(t, uint(99), messages[1].SenderID)
	assert.Equal(t, "my order is late", messages[2].Body)

	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt.Add(-time.Second)))
	}
}

func TestSendMessageRejectsBlankBody(t *testing.T) {
	service := newTestService(t)

	conversation, err := service.OpenConversation(1)
	require.NoError(t, err)

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := service.SendMessage(1, conversation.ID, body)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}

	messages, err := service.GetMessages(1, conversation.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSendMessageToClosedConversationFails(t *testing.T) {
	service := newTestService(t)

	conversation, err := service.OpenConversation(1)
	require.NoError(t, err)
	require.NoError(t, service.CloseConversation(1, conversation.ID))

	_, err = service.SendMessage(1, conversation.ID, "anyone there?")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.SupportReply(99, conversation.ID, "ticket resolved")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestConversationAccessIsScopedToOwner(t *testing.T) {
	service := newTestService(t)

	conversation, err := service.OpenConversation(1)
	require.NoError(t, err)

	_, err = service.GetMessages(2, conversation.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = service.SendMessage(2, conversation.ID, "not my thread")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, service.CloseConversation(2, conversation.ID), apperrors.ErrNotFound)
}

func TestCloseConversationTwiceFails(t *testing.T) {
	service := newTestService(t)

	conversation, err := service.OpenConversation(1)
	require.NoError(t, err)

	require.NoError(t, service.CloseConversation(1, conversation.ID))
	assert.ErrorIs(t, service.CloseConversation(1, conversation.ID), apperrors.ErrNotFound)
}
