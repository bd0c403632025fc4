// internal/interfaces/http/handlers/chat.go
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/chat"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ChatHandler handles support chat endpoints
type ChatHandler struct {
	chatService *chat.Service
	config      *config.Config
}

// NewChatHandler creates a new chat handler
func NewChatHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ChatHandler {
	feed := chat.NewFeed(redisClient, cfg.Chat.ChannelPrefix)

	return &ChatHandler{
		chatService: chat.NewService(db, cfg, feed),
		config:      cfg,
	}
}

// SendMessageRequest carries a new chat message body
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// OpenConversation handles POST /chat/conversations
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	conversation, err := h.chatService.OpenConversation(userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": "Failed to open conversation",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation opened successfully",
		"data":    conversation,
	})
}

// CloseConversation handles POST /chat/conversations/:id/close
func (h *ChatHandler) CloseConversation(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid conversation ID",
		})
		return
	}

	if err := h.chatService.CloseConversation(userID, uint(conversationID)); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation closed successfully",
	})
}

// GetMessages handles GET /chat/conversations/:id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid conversation ID",
		})
		return
	}

	messages, err := h.chatService.GetMessages(userID, uint(conversationID))
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages retrieved successfully",
		"data":    messages,
	})
}

// SendMessage handles POST /chat/conversations/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid conversation ID",
		})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	message, err := h.chatService.SendMessage(userID, uint(conversationID), req.Body)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// StreamFeed handles GET /chat/conversations/:id/feed as server-sent events
func (h *ChatHandler) StreamFeed(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid conversation ID",
		})
		return
	}

	subscription, err := h.chatService.Subscribe(c.Request.Context(), userID, uint(conversationID))
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}
	defer subscription.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Stream until the client disconnects or the subscription closes
	c.Stream(func(w io.Writer) bool {
		message, ok := <-subscription.Events()
		if !ok {
			return false
		}

		c.SSEvent("message", message)
		return true
	})
}
