package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeShortAnswer    = "short_answer"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeFillInBlank    = "fill_in_blank"
)

type Question struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	QuizID      uint             `json:"quiz_id" gorm:"not null;index"`
	Text        string           `json:"text" gorm:"type:text;not null"`
	Type        string           `json:"type" gorm:"not null"` // "multiple_choice", "short_answer", "true_false", "fill_in_blank"
	Points      int              `json:"points" gorm:"not null;default:1"`
	OrderInQuiz int              `json:"order" gorm:"not null"` // 1-based, unique within a quiz
	Options     []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ValidQuestionType reports whether t is one of the supported question types.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeShortAnswer, QuestionTypeTrueFalse, QuestionTypeFillInBlank:
		return true
	}
	return false
}
