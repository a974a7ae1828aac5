package models

type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	// Relationships
	Quizzes []Quiz `json:"quizzes,omitempty" gorm:"many2many:quiz_tags"`
}
