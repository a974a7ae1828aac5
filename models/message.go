package models

import (
	"time"
)

type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"not null;index"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index"`
	Content     string    `json:"content" gorm:"not null"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Sender    User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Recipient User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}
