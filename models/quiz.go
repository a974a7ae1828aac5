package models

import (
	"time"
)

// Quiz is keyed by a URL-safe slug rather than a numeric id so quiz links
// stay readable; the slug is generated from the name when the client does
// not supply one.
type Quiz struct {
	ID          string    `json:"id" gorm:"primaryKey;size:100"`
	Name        string    `json:"name" gorm:"not null"`
	Author      string    `json:"author" gorm:"not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Likes       int       `json:"likes" gorm:"not null;default:0"`
	Dislikes    int       `json:"dislikes" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Tags      []Tag       `json:"tags,omitempty" gorm:"many2many:quiz_tags"`
	Questions []Question  `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	Favorites []Favorite  `json:"favorites,omitempty" gorm:"foreignKey:QuizID"`
	Comments  []Comment   `json:"comments,omitempty" gorm:"foreignKey:QuizID"`
	Shares    []QuizShare `json:"shares,omitempty" gorm:"foreignKey:QuizID"`
}
