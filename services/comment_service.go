package services

import (
	"errors"
	"time"

	"quizhub/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type PostCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	QuizID    string    `json:"quiz_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Post upserts the user's comment on a quiz: one comment per user per quiz,
// re-posting replaces the text.
func (s *CommentService) Post(userID uint, quizID string, req *PostCommentRequest) (*CommentResponse, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var comment models.Comment
	err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&comment).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		comment = models.Comment{QuizID: quizID, UserID: userID, Text: req.Text}
		if err := s.db.Create(&comment).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := s.db.Model(&comment).Update("text", req.Text).Error; err != nil {
			return nil, err
		}
		comment.Text = req.Text
	}

	return s.loadComment(comment.ID)
}

func (s *CommentService) ListForQuiz(quizID string) ([]CommentResponse, error) {
	var comments []models.Comment
	err := s.db.
		Where("quiz_id = ?", quizID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, toCommentResponse(&comments[i]))
	}
	return responses, nil
}

func (s *CommentService) loadComment(id uint) (*CommentResponse, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	resp := toCommentResponse(&comment)
	return &resp, nil
}

func toCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		QuizID:    comment.QuizID,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
