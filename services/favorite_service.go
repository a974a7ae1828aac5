package services

import (
	"errors"
	"time"

	"quizhub/models"

	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

type AddFavoriteRequest struct {
	QuizID string `json:"quiz_id" binding:"required"`
}

type FavoriteResponse struct {
	ID        uint        `json:"id"`
	Quiz      QuizSummary `json:"quiz"`
	CreatedAt time.Time   `json:"created_at"`
}

// Add is idempotent: favoriting a quiz twice keeps the original row.
func (s *FavoriteService) Add(userID uint, quizID string) (*FavoriteResponse, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var favorite models.Favorite
	err := s.db.Where(models.Favorite{UserID: userID, QuizID: quizID}).FirstOrCreate(&favorite).Error
	if err != nil {
		return nil, err
	}

	return s.loadFavorite(favorite.ID)
}

func (s *FavoriteService) List(userID uint) ([]FavoriteResponse, error) {
	var favorites []models.Favorite
	err := s.db.
		Where("user_id = ?", userID).
		Preload("Quiz").
		Preload("Quiz.Tags").
		Preload("Quiz.Questions").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	responses := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		responses = append(responses, toFavoriteResponse(&favorites[i]))
	}
	return responses, nil
}

func (s *FavoriteService) Remove(userID uint, quizID string) error {
	result := s.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *FavoriteService) loadFavorite(id uint) (*FavoriteResponse, error) {
	var favorite models.Favorite
	err := s.db.
		Preload("Quiz").
		Preload("Quiz.Tags").
		Preload("Quiz.Questions").
		First(&favorite, id).Error
	if err != nil {
		return nil, err
	}
	resp := toFavoriteResponse(&favorite)
	return &resp, nil
}

func toFavoriteResponse(favorite *models.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        favorite.ID,
		Quiz:      summarizeQuiz(&favorite.Quiz),
		CreatedAt: favorite.CreatedAt,
	}
}
