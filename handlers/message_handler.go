package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizhub/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *services.MessageService
	hub            *services.Hub
}

func NewMessageHandler(messageService *services.MessageService, hub *services.Hub) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		hub:            hub,
	}
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID := c.GetUint("user_id")

	messages, err := h.messageService.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.Send(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.hub.NotifyUser(message.RecipientID, services.EventNewMessage, message)

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) Conversation(c *gin.Context) {
	userID := c.GetUint("user_id")

	otherID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	messages, err := h.messageService.Conversation(userID, uint(otherID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if err := h.messageService.MarkRead(uint(messageID), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		case errors.Is(err, services.ErrNotRecipient):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the recipient can mark a message read"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
