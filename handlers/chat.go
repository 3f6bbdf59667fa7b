package handlers

import (
	"io"
	"net/http"

	"distrigestion/config"
	"distrigestion/middleware"
	"distrigestion/models"
	"distrigestion/notify"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler serves staff messaging. New messages are persisted and then
// pushed through the hub to every connected session.
type ChatHandler struct {
	Hub *notify.Hub
}

// GetPrivateMessages returns the conversation between the caller and another
// user, oldest first.
func (h *ChatHandler) GetPrivateMessages(c *gin.Context) {
	me := middleware.GetUserID(c)
	other := c.Query("with")
	if other == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "with query parameter required"})
		return
	}

	var messages []models.ChatMessage
	err := config.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", me, other, other, me).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load messages"})
		return
	}

	// Fetching a conversation counts as reading it
	config.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", other, me, false).
		Update("is_read", true)

	c.JSON(http.StatusOK, gin.H{"count": len(messages), "messages": messages})
}

type privateMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendPrivateMessage stores a direct message and notifies subscribers.
func (h *ChatHandler) SendPrivateMessage(c *gin.Context) {
	var req privateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   middleware.GetUserID(c),
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.Hub.Publish(notify.Event{Kind: notify.EventPrivateMessage, Payload: msg})
	c.JSON(http.StatusCreated, gin.H{"message": "Sent", "chat_message": msg})
}

// GetGroupMessages returns the shared room history, oldest first.
func (h *ChatHandler) GetGroupMessages(c *gin.Context) {
	var messages []models.GroupMessage
	if err := config.DB.Order("created_at asc").Find(&messages).Error; err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(messages), "messages": messages})
}

type groupMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendGroupMessage stores a room message and notifies subscribers.
func (h *ChatHandler) SendGroupMessage(c *gin.Context) {
	var req groupMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.GroupMessage{
		ID:       uuid.NewString(),
		SenderID: middleware.GetUserID(c),
		Content:  req.Content,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.Hub.Publish(notify.Event{Kind: notify.EventGroupMessage, Payload: msg})
	c.JSON(http.StatusCreated, gin.H{"message": "Sent", "group_message": msg})
}

// Stream pushes realtime chat notifications over server-sent events until
// the client disconnects. Relevance is decided per event with the caller's
// identity in hand, not captured at subscribe time.
func (h *ChatHandler) Stream(c *gin.Context) {
	userID := middleware.GetUserID(c)

	sub := h.Hub.Subscribe(notify.EventPrivateMessage, notify.EventGroupMessage)
	defer sub.Cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			if !relevantTo(ev, userID) {
				return true
			}
			sse.Encode(w, sse.Event{
				Event: string(ev.Kind),
				Data:  ev.Payload,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// relevantTo keeps each session's stream to what its user should see:
// private messages addressed to them, group messages from anyone else.
func relevantTo(ev notify.Event, userID string) bool {
	switch ev.Kind {
	case notify.EventPrivateMessage:
		msg, ok := ev.Payload.(models.ChatMessage)
		return ok && msg.ReceiverID == userID
	case notify.EventGroupMessage:
		msg, ok := ev.Payload.(models.GroupMessage)
		return ok && msg.SenderID != userID
	}
	return false
}
