package dto

import "time"

// QuizCreateRequest creates a new quiz owned by the calling principal.
type QuizCreateRequest struct {
	Title            string     `json:"title" binding:"required"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	Visibility       *string    `json:"visibility" binding:"omitempty,oneof=public private"`
	IsPublished      *bool      `json:"is_published"`
	Difficulty       string     `json:"difficulty"`
	Category         string     `json:"category"`
	TimeLimitMinutes *int       `json:"time_limit_minutes" binding:"omitempty,min=1"`
	ReleaseAt        *time.Time `json:"release_at"`
	OrganizerName    string     `json:"organizer_name"`
}

// QuizUpdateRequest is a partial update: only fields present in the body are
// applied. Omitting visibility must not reset it.
type QuizUpdateRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Visibility       *string    `json:"visibility" binding:"omitempty,oneof=public private"`
	IsPublished      *bool      `json:"is_published"`
	Difficulty       *string    `json:"difficulty"`
	Category         *string    `json:"category"`
	TimeLimitMinutes *int       `json:"time_limit_minutes" binding:"omitempty,min=1"`
	ReleaseAt        *time.Time `json:"release_at"`
	OrganizerName    *string    `json:"organizer_name"`
}

// OptionInput carries one option in a question create/update body. An ID is
// only meaningful on update, where it drives the reconciliation diff.
type OptionInput struct {
	ID        *uint  `json:"id"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionCreateRequest struct {
	Text    string        `json:"text" binding:"required"`
	Type    string        `json:"type" binding:"required,oneof=multiple_choice short_answer true_false fill_in_blank"`
	Points  *int          `json:"points" binding:"omitempty,min=1"`
	Options []OptionInput `json:"options" binding:"omitempty,dive"`
}

// QuestionUpdateRequest is a partial update. A nil Options slice leaves the
// option set untouched; a present slice is reconciled against it by id.
type QuestionUpdateRequest struct {
	Text    *string        `json:"text"`
	Type    *string        `json:"type" binding:"omitempty,oneof=multiple_choice short_answer true_false fill_in_blank"`
	Points  *int           `json:"points" binding:"omitempty,min=1"`
	Options *[]OptionInput `json:"options" binding:"omitempty,dive"`
}

type QuestionOrderInput struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"order" binding:"required,min=1"`
}

type ReorderQuestionsRequest struct {
	Orders []QuestionOrderInput `json:"orders" binding:"required,min=1,dive"`
}

type InvitationCreateRequest struct {
	QuizID       uint   `json:"quiz_id" binding:"required"`
	InviteeEmail string `json:"invitee_email" binding:"required,email"`
}

// InvitationRespondRequest carries the invitee's response. Status is validated
// in the service so the error message can name the invalid value.
type InvitationRespondRequest struct {
	Status string `json:"status" binding:"required"`
}

type AnswerInput struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

type SubmitAnswersRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}
