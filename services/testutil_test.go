package services

import (
	"fmt"
	"testing"

	"quizhub/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database per test. The DSN is
// named and cache=shared so every pooled connection sees the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Quiz{},
		&models.Question{},
		&models.Choice{},
		&models.Message{},
		&models.QuizShare{},
		&models.Favorite{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return &user
}

func createTestQuiz(t *testing.T, s *QuizService, author, name string) *QuizDetail {
	t.Helper()

	quiz, err := s.CreateQuiz(author, &CreateQuizRequest{
		Name: name,
		Questions: []CreateQuestionRequest{
			{
				Text: "2+2?",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "3", IsCorrect: false},
					{Index: 1, Text: "4", IsCorrect: true},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create test quiz %s: %v", name, err)
	}
	return quiz
}
