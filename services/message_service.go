package services

import (
	"errors"
	"time"

	"quizhub/models"

	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotRecipient    = errors.New("only the recipient can do that")
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID                uint      `json:"id"`
	SenderID          uint      `json:"sender_id"`
	SenderUsername    string    `json:"sender_username"`
	RecipientID       uint      `json:"recipient_id"`
	RecipientUsername string    `json:"recipient_username"`
	Content           string    `json:"content"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
}

func (s *MessageService) Send(senderID uint, req *SendMessageRequest) (*MessageResponse, error) {
	var recipient models.User
	if err := s.db.First(&recipient, req.RecipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	message := models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	return s.loadMessage(message.ID)
}

// ListForUser returns every message the user sent or received, newest first.
func (s *MessageService) ListForUser(userID uint) ([]MessageResponse, error) {
	var messages []models.Message
	err := s.db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Preload("Sender").
		Preload("Recipient").
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return toMessageResponses(messages), nil
}

// Conversation returns both directions of traffic between the user and one
// counterpart, oldest first, the order a chat view renders in.
func (s *MessageService) Conversation(userID, otherID uint) ([]MessageResponse, error) {
	var messages []models.Message
	err := s.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Preload("Sender").
		Preload("Recipient").
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return toMessageResponses(messages), nil
}

// MarkRead flips is_read once; there is no way back to unread.
func (s *MessageService) MarkRead(messageID, userID uint) error {
	var message models.Message
	err := s.db.First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMessageNotFound
	}
	if err != nil {
		return err
	}

	if message.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.db.Model(&message).Update("is_read", true).Error
}

func (s *MessageService) loadMessage(id uint) (*MessageResponse, error) {
	var message models.Message
	err := s.db.Preload("Sender").Preload("Recipient").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	resp := toMessageResponse(&message)
	return &resp, nil
}

func toMessageResponses(messages []models.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}
	return responses
}

func toMessageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		ID:                message.ID,
		SenderID:          message.SenderID,
		SenderUsername:    message.Sender.Username,
		RecipientID:       message.RecipientID,
		RecipientUsername: message.Recipient.Username,
		Content:           message.Content,
		IsRead:            message.IsRead,
		CreatedAt:         message.CreatedAt,
	}
}
