package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionOption is part of the quiz answer key. IsCorrect must only reach
// owner-facing responses; public DTOs omit it.
type QuestionOption struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	QuestionID      uint           `json:"question_id" gorm:"not null;index"`
	Text            string         `json:"text" gorm:"type:text;not null"`
	IsCorrect       bool           `json:"is_correct" gorm:"not null;default:false"`
	OrderInQuestion int            `json:"order" gorm:"not null"` // 1-based
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
