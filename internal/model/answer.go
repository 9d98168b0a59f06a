package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAnswer records the taker's answer to one question, graded against the
// authoritative options. Exactly one row per (submission, question) is written
// during grading.
type QuizAnswer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SubmissionID uint           `json:"submission_id" gorm:"not null;index"`
	QuestionID   uint           `json:"question_id" gorm:"not null;index"`
	AnswerText   string         `json:"answer_text" gorm:"type:text"`
	IsCorrect    bool           `json:"is_correct" gorm:"not null;default:false"`
	PointsEarned int            `json:"points_earned" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
