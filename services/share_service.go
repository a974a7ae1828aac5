package services

import (
	"errors"
	"time"

	"quizhub/models"

	"gorm.io/gorm"
)

var (
	ErrShareNotFound  = errors.New("quiz share not found")
	ErrDuplicateShare = errors.New("quiz already shared with this user")
)

type ShareService struct {
	db *gorm.DB
}

func NewShareService(db *gorm.DB) *ShareService {
	return &ShareService{db: db}
}

type ShareQuizRequest struct {
	QuizID      string `json:"quiz_id" binding:"required"`
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Message     string `json:"message"`
}

type ShareResponse struct {
	ID                uint        `json:"id"`
	Quiz              QuizSummary `json:"quiz"`
	SenderID          uint        `json:"sender_id"`
	SenderUsername    string      `json:"sender_username"`
	RecipientID       uint        `json:"recipient_id"`
	RecipientUsername string      `json:"recipient_username"`
	Message           string      `json:"message"`
	IsViewed          bool        `json:"is_viewed"`
	CreatedAt         time.Time   `json:"created_at"`
}

func (s *ShareService) Share(senderID uint, req *ShareQuizRequest) (*ShareResponse, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", req.QuizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var recipient models.User
	if err := s.db.First(&recipient, req.RecipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// One share per (quiz, sender, recipient). The table has a unique index
	// too, but checking first gives the caller a clean error instead of a
	// driver-specific constraint failure.
	var count int64
	err := s.db.Model(&models.QuizShare{}).
		Where("quiz_id = ? AND sender_id = ? AND recipient_id = ?", req.QuizID, senderID, req.RecipientID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateShare
	}

	share := models.QuizShare{
		QuizID:      req.QuizID,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Message:     req.Message,
	}

	if err := s.db.Create(&share).Error; err != nil {
		return nil, err
	}

	return s.loadShare(share.ID)
}

// ListSent returns shares the user sent, newest first.
func (s *ShareService) ListSent(userID uint) ([]ShareResponse, error) {
	return s.listShares("sender_id = ?", userID)
}

// ListReceived returns shares addressed to the user, newest first.
func (s *ShareService) ListReceived(userID uint) ([]ShareResponse, error) {
	return s.listShares("recipient_id = ?", userID)
}

func (s *ShareService) MarkViewed(shareID, userID uint) error {
	var share models.QuizShare
	err := s.db.First(&share, shareID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrShareNotFound
	}
	if err != nil {
		return err
	}

	if share.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.db.Model(&share).Update("is_viewed", true).Error
}

func (s *ShareService) listShares(query string, userID uint) ([]ShareResponse, error) {
	var shares []models.QuizShare
	err := s.db.
		Where(query, userID).
		Preload("Quiz").
		Preload("Quiz.Tags").
		Preload("Quiz.Questions").
		Preload("Sender").
		Preload("Recipient").
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}

	responses := make([]ShareResponse, 0, len(shares))
	for i := range shares {
		responses = append(responses, toShareResponse(&shares[i]))
	}
	return responses, nil
}

func (s *ShareService) loadShare(id uint) (*ShareResponse, error) {
	var share models.QuizShare
	err := s.db.
		Preload("Quiz").
		Preload("Quiz.Tags").
		Preload("Quiz.Questions").
		Preload("Sender").
		Preload("Recipient").
		First(&share, id).Error
	if err != nil {
		return nil, err
	}
	resp := toShareResponse(&share)
	return &resp, nil
}

func toShareResponse(share *models.QuizShare) ShareResponse {
	return ShareResponse{
		ID:                share.ID,
		Quiz:              summarizeQuiz(&share.Quiz),
		SenderID:          share.SenderID,
		SenderUsername:    share.Sender.Username,
		RecipientID:       share.RecipientID,
		RecipientUsername: share.Recipient.Username,
		Message:           share.Message,
		IsViewed:          share.IsViewed,
		CreatedAt:         share.CreatedAt,
	}
}
