package models

import (
	"time"
)

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_quiz_favorite"`
	QuizID    string    `json:"quiz_id" gorm:"size:100;not null;uniqueIndex:idx_user_quiz_favorite"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Quiz Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
}
