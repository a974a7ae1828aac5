package services

import (
	"errors"
	"testing"

	"quizhub/models"
)

func TestFavoriteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	quizzes := NewQuizService(db)
	favorites := NewFavoriteService(db)

	user := createTestUser(t, db, "alice")
	quiz := createTestQuiz(t, quizzes, "bob", "Likeable")

	first, err := favorites.Add(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	second, err := favorites.Add(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("Second add failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Second favorite created a new row: %d != %d", second.ID, first.ID)
	}

	var count int64
	db.Model(&models.Favorite{}).Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 favorite row, got %d", count)
	}
}

func TestFavoriteListAndRemove(t *testing.T) {
	db := setupTestDB(t)
	quizzes := NewQuizService(db)
	favorites := NewFavoriteService(db)

	user := createTestUser(t, db, "alice")
	quiz := createTestQuiz(t, quizzes, "bob", "Likeable")

	if _, err := favorites.Add(user.ID, quiz.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	list, err := favorites.List(user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 favorite, got %d", len(list))
	}
	if list[0].Quiz.ID != quiz.ID || list[0].Quiz.Name != "Likeable" {
		t.Errorf("Favorite not joined with quiz summary: %+v", list[0].Quiz)
	}
	if list[0].Quiz.QuestionCount != 1 {
		t.Errorf("Quiz summary question count: got %d, want 1", list[0].Quiz.QuestionCount)
	}

	if err := favorites.Remove(user.ID, quiz.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if err := favorites.Remove(user.ID, quiz.ID); !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("Expected ErrFavoriteNotFound on second remove, got %v", err)
	}
}

func TestFavoriteUnknownQuiz(t *testing.T) {
	db := setupTestDB(t)
	favorites := NewFavoriteService(db)
	user := createTestUser(t, db, "alice")

	if _, err := favorites.Add(user.ID, "no-such-quiz"); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("Expected ErrQuizNotFound, got %v", err)
	}
}
