package model

import "time"

// LeaderboardRow is the read-only projection produced by the ranking query over
// graded submissions. Rank orders by score descending, earlier submitted_at
// breaking ties. Not a table.
type LeaderboardRow struct {
	SubmissionID     uint       `json:"submission_id"`
	QuizID           uint       `json:"quiz_id"`
	SubmittedByName  string     `json:"submitted_by_name"`
	SubmittedByEmail string     `json:"submitted_by_email"`
	Score            int        `json:"score"`
	TotalPoints      int        `json:"total_points"`
	Rank             int        `json:"rank"`
	SubmittedAt      *time.Time `json:"submitted_at"`
}
