// internal/domain/chat/service.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles support chat business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	feed   *Feed
}

// NewService creates a new chat service. The feed may be nil when no
// realtime delivery is wired, e.g. in tests; sends then persist only.
func NewService(db *gorm.DB, cfg *config.Config, feed *Feed) *Service {
	return &Service{
		db:     db,
		config: cfg,
		feed:   feed,
	}
}

// OpenConversation returns the user's open thread, creating one only when
// none exists. This lookup-before-create keeps at most one open thread per
// user.
func (s *Service) OpenConversation(userID uint) (*Conversation, error) {
	var conversation Conversation
	result := s.db.Where("user_id = ? AND status = ?", userID, ConversationStatusOpen).
		First(&conversation)
	if result.Error == nil {
		return &conversation, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: failed to look up conversation: %v", apperrors.ErrRemoteService, result.Error)
	}

	conversation = Conversation{
		UserID: userID,
		Status: ConversationStatusOpen,
	}
	if err := s.db.Create(&conversation).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to create conversation: %v", apperrors.ErrRemoteService, err)
	}
	return &conversation, nil
}

// CloseConversation marks the user's thread closed
func (s *Service) CloseConversation(userID, conversationID uint) error {
	result := s.db.Model(&Conversation{}).
		Where("id = ? AND user_id = ? AND status = ?", conversationID, userID, ConversationStatusOpen).
		Update("status", ConversationStatusClosed)
	if result.Error != nil {
		return fmt.Errorf("%w: failed to close conversation: %v", apperrors.ErrRemoteService, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: open conversation %d", apperrors.ErrNotFound, conversationID)
	}
	return nil
}

// GetMessages retrieves a conversation's messages in creation order
func (s *Service) GetMessages(userID, conversationID uint) ([]Message, error) {
	if _, err := s.getUserConversation(userID, conversationID); err != nil {
		return nil, err
	}

	query := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC")
	if s.config.Chat.HistoryPageSize > 0 {
		query = query.Limit(s.config.Chat.HistoryPageSize)
	}

	var messages []Message
	err := query.Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve messages: %v", apperrors.ErrRemoteService, err)
	}
	return messages, nil
}

// SendMessage appends a message to a conversation. The row is persisted
// first; feed delivery is best effort on top of the durable write.
func (s *Service) SendMessage(userID, conversationID uint, body string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is required", apperrors.ErrValidation)
	}

	conversation, err := s.getUserConversation(userID, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Status != ConversationStatusOpen {
		return nil, fmt.Errorf("%w: conversation %d is closed", apperrors.ErrValidation, conversationID)
	}

	return s.append(conversation, userID, false, body)
}

// SupportReply appends an agent message to any open conversation
func (s *Service) SupportReply(agentID, conversationID uint, body string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is required", apperrors.ErrValidation)
	}

	var conversation Conversation
	result := s.db.Where("id = ?", conversationID).First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation %d", apperrors.ErrNotFound, conversationID)
		}
		return nil, fmt.Errorf("%w: failed to load conversation: %v", apperrors.ErrRemoteService, result.Error)
	}
	if conversation.Status != ConversationStatusOpen {
		return nil, fmt.Errorf("%w: conversation %d is closed", apperrors.ErrValidation, conversationID)
	}

	return s.append(&conversation, agentID, true, body)
}

func (s *Service) append(conversation *Conversation, senderID uint, fromSupport bool, body string) (*Message, error) {
	message := Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		FromSupport:    fromSupport,
		Body:           body,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to store message: %v", apperrors.ErrRemoteService, err)
	}

	if s.feed != nil {
		if err := s.feed.Publish(context.Background(), &message); err != nil {
			logrus.WithError(err).WithField("conversation_id", conversation.ID).
				Warn("Message stored but feed publish failed")
		}
	}

	return &message, nil
}

// Subscribe opens the realtime feed for one of the user's conversations
func (s *Service) Subscribe(ctx context.Context, userID, conversationID uint) (*Subscription, error) {
	if s.feed == nil {
		return nil, fmt.Errorf("%w: realtime feed is not configured", apperrors.ErrRemoteService)
	}

	if _, err := s.getUserConversation(userID, conversationID); err != nil {
		return nil, err
	}

	return s.feed.Subscribe(ctx, conversationID)
}

func (s *Service) getUserConversation(userID, conversationID uint) (*Conversation, error) {
	var conversation Conversation
	result := s.db.Where("id = ? AND user_id = ?", conversationID, userID).First(&conversation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation %d", apperrors.ErrNotFound, conversationID)
		}
		return nil, fmt.Errorf("%w: failed to load conversation: %v", apperrors.ErrRemoteService, result.Error)
	}
	return &conversation, nil
}
