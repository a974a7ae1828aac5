package models

// Question types. Gap questions encode their per-gap option groups into the
// flat option list on the client side; the backend stores them untouched.
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeFillInTheGap   = "FILL_IN_THE_GAP"
	QuestionTypeImage          = "IMAGE"
)

type Question struct {
	ID           string `json:"id" gorm:"primaryKey;size:100"`
	QuizID       string `json:"quiz_id" gorm:"size:100;not null;index"`
	Text         string `json:"text" gorm:"not null"`
	Order        int    `json:"order" gorm:"not null;default:0"`
	QuestionType string `json:"question_type" gorm:"size:20;not null;default:'MULTIPLE_CHOICE'"`
	Image        string `json:"image"`
	Explanation  string `json:"explanation"`

	// Relationships
	Quiz    Quiz     `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Options []Choice `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}
