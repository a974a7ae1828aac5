package models

// Choice is one answer candidate of a question. The index is the position
// the client assigned when authoring; it is unique within a question and is
// what correct_index/correct_indices report.
type Choice struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	QuestionID string `json:"question_id" gorm:"size:100;not null;uniqueIndex:idx_question_choice_index"`
	Index      int    `json:"index" gorm:"not null;uniqueIndex:idx_question_choice_index"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
	Image      string `json:"image"`

	// Relationships
	Question Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}
