package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Quiz struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Slug             string         `json:"slug,omitempty" gorm:"uniqueIndex;size:160"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description,omitempty" gorm:"type:text"`
	CreatorID        uint           `json:"creator_id" gorm:"not null;index"`
	IsPublished      bool           `json:"is_published" gorm:"not null;default:false"`
	Visibility       string         `json:"visibility" gorm:"not null;default:'private'"` // "public", "private"
	TotalQuestions   int            `json:"total_questions" gorm:"not null;default:0"`
	Difficulty       string         `json:"difficulty,omitempty"`
	Category         string         `json:"category,omitempty"`
	TimeLimitMinutes *int           `json:"time_limit_minutes,omitempty"`
	ReleaseAt        *time.Time     `json:"release_at,omitempty"`
	OrganizerName    string         `json:"organizer_name,omitempty"`
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quiz) IsPublic() bool {
	return q.Visibility == VisibilityPublic
}
