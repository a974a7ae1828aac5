package models

import (
	"time"
)

// QuizShare is a directed recommendation of a quiz from one user to another.
// A quiz can be shared to the same person by the same sender only once.
type QuizShare struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	QuizID      string    `json:"quiz_id" gorm:"size:100;not null;uniqueIndex:idx_share_triple"`
	SenderID    uint      `json:"sender_id" gorm:"not null;uniqueIndex:idx_share_triple"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;uniqueIndex:idx_share_triple"`
	Message     string    `json:"message"`
	IsViewed    bool      `json:"is_viewed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Quiz      Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Sender    User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Recipient User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}
