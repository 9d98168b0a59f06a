package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// OptionResponse is the taker-facing option shape. It never carries the answer
// key.
type OptionResponse struct {
	ID              uint   `json:"id"`
	Text            string `json:"text"`
	OrderInQuestion int    `json:"order"`
}

// OptionManageResponse is the owner-facing option shape, answer key included.
type OptionManageResponse struct {
	ID              uint   `json:"id"`
	Text            string `json:"text"`
	IsCorrect       bool   `json:"is_correct"`
	OrderInQuestion int    `json:"order"`
}

type QuestionResponse struct {
	ID          uint             `json:"id"`
	QuizID      uint             `json:"quiz_id"`
	Text        string           `json:"text"`
	Type        string           `json:"type"`
	Points      int              `json:"points"`
	OrderInQuiz int              `json:"order"`
	Options     []OptionResponse `json:"options,omitempty"`
}

type QuestionManageResponse struct {
	ID          uint                   `json:"id"`
	QuizID      uint                   `json:"quiz_id"`
	Text        string                 `json:"text"`
	Type        string                 `json:"type"`
	Points      int                    `json:"points"`
	OrderInQuiz int                    `json:"order"`
	Options     []OptionManageResponse `json:"options,omitempty"`
}

type QuizResponse struct {
	ID               uint       `json:"id"`
	Slug             string     `json:"slug,omitempty"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	CreatorID        uint       `json:"creator_id"`
	IsPublished      bool       `json:"is_published"`
	Visibility       string     `json:"visibility"`
	TotalQuestions   int        `json:"total_questions"`
	Difficulty       string     `json:"difficulty,omitempty"`
	Category         string     `json:"category,omitempty"`
	TimeLimitMinutes *int       `json:"time_limit_minutes,omitempty"`
	ReleaseAt        *time.Time `json:"release_at,omitempty"`
	OrganizerName    string     `json:"organizer_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QuizDetailResponse is the public quiz view: ordered questions without the
// answer key.
type QuizDetailResponse struct {
	QuizResponse
	Questions []QuestionResponse `json:"questions"`
}

// QuizManageDetailResponse is the creator's view of the same quiz, answer key
// included.
type QuizManageDetailResponse struct {
	QuizResponse
	Questions []QuestionManageResponse `json:"questions"`
}

type InvitationResponse struct {
	ID           uint       `json:"id"`
	QuizID       uint       `json:"quiz_id"`
	InviterID    uint       `json:"inviter_id"`
	InviteeEmail string     `json:"invitee_email"`
	InviteeID    *uint      `json:"invitee_id,omitempty"`
	Status       string     `json:"status"`
	InvitedAt    time.Time  `json:"invited_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

type AnswerResponse struct {
	ID           uint   `json:"id"`
	QuestionID   uint   `json:"question_id"`
	AnswerText   string `json:"answer_text"`
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
}

type SubmissionResponse struct {
	ID               uint             `json:"id"`
	QuizID           uint             `json:"quiz_id"`
	UserID           uint             `json:"user_id"`
	SubmittedByName  string           `json:"submitted_by_name"`
	SubmittedByEmail string           `json:"submitted_by_email"`
	Status           string           `json:"status"`
	Score            int              `json:"score"`
	TotalPoints      int              `json:"total_points"`
	SubmittedAt      *time.Time       `json:"submitted_at,omitempty"`
	Answers          []AnswerResponse `json:"answers,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// LeaderboardEntryResponse is the public, redacted leaderboard row.
type LeaderboardEntryResponse struct {
	SubmissionID uint       `json:"submission_id"`
	QuizID       uint       `json:"quiz_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Score        int        `json:"score"`
	TotalPoints  int        `json:"total_points"`
	ScorePercent float64    `json:"score_percent"`
	Rank         int        `json:"rank"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}
