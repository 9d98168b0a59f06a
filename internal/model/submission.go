package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubmissionStatusInProgress = "in_progress"
	SubmissionStatusSubmitted  = "submitted"
	SubmissionStatusGraded     = "graded"
)

// QuizSubmission is one attempt at a quiz. The status machine is linear:
// in_progress -> submitted -> graded. Submissions are never deleted by the
// normal flow, and nothing prevents a taker from starting several attempts.
type QuizSubmission struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	QuizID           uint           `json:"quiz_id" gorm:"not null;index"`
	Quiz             Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	SubmittedByName  string         `json:"submitted_by_name"`
	SubmittedByEmail string         `json:"submitted_by_email"`
	Status           string         `json:"status" gorm:"not null;default:'in_progress'"` // "in_progress", "submitted", "graded"
	Score            int            `json:"score" gorm:"not null;default:0"`
	TotalPoints      int            `json:"total_points" gorm:"not null;default:0"`
	SubmittedAt      *time.Time     `json:"submitted_at,omitempty"`
	Answers          []QuizAnswer   `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
