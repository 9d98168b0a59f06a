package repository

import (
	"github.com/lamngoc/quizforge/internal/model"
	"gorm.io/gorm"
)

type LeaderboardRepository interface {
	// TopByQuiz reads up to limit ranked rows over the quiz's graded
	// submissions: higher score first, earlier submitted_at breaking ties.
	TopByQuiz(quizID uint, limit int) ([]model.LeaderboardRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopByQuiz(quizID uint, limit int) ([]model.LeaderboardRow, error) {
	var rows []model.LeaderboardRow
	err := r.db.Raw(`
		SELECT
			id AS submission_id,
			quiz_id,
			submitted_by_name,
			submitted_by_email,
			score,
			total_points,
			submitted_at,
			RANK() OVER (ORDER BY score DESC, submitted_at ASC) AS rank
		FROM quiz_submissions
		WHERE quiz_id = ? AND status = ? AND deleted_at IS NULL
		ORDER BY rank ASC, submitted_at ASC
		LIMIT ?`,
		quizID, model.SubmissionStatusGraded, limit,
	).Scan(&rows).Error
	return rows, err
}
