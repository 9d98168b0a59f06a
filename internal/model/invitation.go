package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
)

// QuizInvitation grants a specific email address access to a quiz. At most one
// pending invitation may exist per (quiz, invitee_email). InviteeID is bound
// once the email claims an account, either through an explicit response or the
// auto-accept step when that account starts a submission.
type QuizInvitation struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	QuizID       uint           `json:"quiz_id" gorm:"not null;index"`
	InviterID    uint           `json:"inviter_id" gorm:"not null"`
	InviteeEmail string         `json:"invitee_email" gorm:"not null;index"` // lowercase-normalized
	InviteeID    *uint          `json:"invitee_id,omitempty"`
	Status       string         `json:"status" gorm:"not null;default:'pending'"` // "pending", "accepted", "declined"
	InvitedAt    time.Time      `json:"invited_at" gorm:"autoCreateTime"`
	RespondedAt  *time.Time     `json:"responded_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *QuizInvitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}
