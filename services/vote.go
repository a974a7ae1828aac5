package services

import (
	"errors"

	"quizhub/models"

	"gorm.io/gorm"
)

// VoteRequest carries the client's previous and current vote state for one
// quiz. There is no per-user vote ledger on the server: the client is
// trusted to report what it voted before, so repeated or concurrent toggles
// can drift the counters. Known limitation, kept on purpose.
type VoteRequest struct {
	Previous *string `json:"previous"`
	Current  *string `json:"current"`
}

type VoteCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

const (
	voteLike    = "like"
	voteDislike = "dislike"
)

func (s *QuizService) ToggleLike(quizID string, req *VoteRequest) (*VoteCounts, error) {
	return s.applyVote(quizID, func(quiz *models.Quiz) {
		switch {
		case voteIs(req.Previous, voteLike) && req.Current == nil:
			quiz.Likes = max(quiz.Likes-1, 0)
		case voteIs(req.Previous, voteDislike) && voteIs(req.Current, voteLike):
			quiz.Dislikes = max(quiz.Dislikes-1, 0)
			quiz.Likes++
		case req.Previous == nil && voteIs(req.Current, voteLike):
			quiz.Likes++
		}
	})
}

func (s *QuizService) ToggleDislike(quizID string, req *VoteRequest) (*VoteCounts, error) {
	return s.applyVote(quizID, func(quiz *models.Quiz) {
		switch {
		case voteIs(req.Previous, voteDislike) && req.Current == nil:
			quiz.Dislikes = max(quiz.Dislikes-1, 0)
		case voteIs(req.Previous, voteLike) && voteIs(req.Current, voteDislike):
			quiz.Likes = max(quiz.Likes-1, 0)
			quiz.Dislikes++
		case req.Previous == nil && voteIs(req.Current, voteDislike):
			quiz.Dislikes++
		}
	})
}

func (s *QuizService) applyVote(quizID string, apply func(*models.Quiz)) (*VoteCounts, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	apply(&quiz)

	err := s.db.Model(&quiz).
		Select("likes", "dislikes").
		Updates(map[string]interface{}{"likes": quiz.Likes, "dislikes": quiz.Dislikes}).Error
	if err != nil {
		return nil, err
	}

	return &VoteCounts{Likes: quiz.Likes, Dislikes: quiz.Dislikes}, nil
}

func voteIs(v *string, want string) bool {
	return v != nil && *v == want
}
