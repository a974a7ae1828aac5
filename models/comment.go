package models

import (
	"time"
)

// Comment holds one comment per user per quiz; posting again replaces the
// existing text instead of adding a second row.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	QuizID    string    `json:"quiz_id" gorm:"size:100;not null;uniqueIndex:idx_quiz_user_comment"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_quiz_user_comment"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Quiz Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
