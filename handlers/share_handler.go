package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizhub/services"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareService *services.ShareService
	hub          *services.Hub
}

func NewShareHandler(shareService *services.ShareService, hub *services.Hub) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		hub:          hub,
	}
}

func (h *ShareHandler) ListSent(c *gin.Context) {
	userID := c.GetUint("user_id")

	shares, err := h.shareService.ListSent(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, shares)
}

func (h *ShareHandler) ListReceived(c *gin.Context) {
	userID := c.GetUint("user_id")

	shares, err := h.shareService.ListReceived(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, shares)
}

func (h *ShareHandler) ShareQuiz(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.ShareQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := h.shareService.Share(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		case errors.Is(err, services.ErrDuplicateShare):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz already shared with this user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.hub.NotifyUser(share.RecipientID, services.EventNewQuizShare, share)

	c.JSON(http.StatusCreated, share)
}

func (h *ShareHandler) MarkViewed(c *gin.Context) {
	userID := c.GetUint("user_id")

	shareID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share ID"})
		return
	}

	if err := h.shareService.MarkViewed(uint(shareID), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrShareNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz share not found"})
		case errors.Is(err, services.ErrNotRecipient):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the recipient can mark a share viewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as viewed"})
}
