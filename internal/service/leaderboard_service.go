package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

const defaultLeaderboardLimit = 100

type LeaderboardService interface {
	// PublicLeaderboard serves ranked, redacted entries for a public, published
	// quiz. There is no owner bypass: a private or unpublished quiz is 403 for
	// everyone, including the creator.
	PublicLeaderboard(ref string, limit int) ([]dto.LeaderboardEntryResponse, error)
}

type leaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	guard           AccessGuard
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository, guard AccessGuard) LeaderboardService {
	return &leaderboardService{leaderboardRepo: leaderboardRepo, guard: guard}
}

func (s *leaderboardService) PublicLeaderboard(ref string, limit int) ([]dto.LeaderboardEntryResponse, error) {
	quiz, err := s.guard.ResolveQuiz(ref)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublic() || !quiz.IsPublished {
		return nil, apperror.Forbidden("leaderboard is not public")
	}

	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	rows, err := s.leaderboardRepo.TopByQuiz(quiz.ID, limit)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to read leaderboard")
		return nil, fmt.Errorf("error fetching leaderboard: %w", err)
	}

	entries := make([]dto.LeaderboardEntryResponse, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.LeaderboardEntryResponse{
			SubmissionID: row.SubmissionID,
			QuizID:       row.QuizID,
			Name:         row.SubmittedByName,
			Email:        redactEmail(row.SubmittedByEmail),
			Score:        row.Score,
			TotalPoints:  row.TotalPoints,
			ScorePercent: scorePercent(row.Score, row.TotalPoints),
			Rank:         row.Rank,
			SubmittedAt:  row.SubmittedAt,
		})
	}
	return entries, nil
}

// redactEmail keeps the local part and obscures the domain. Mandatory on every
// public leaderboard read; the creator-only submissions list stays unredacted.
func redactEmail(email string) string {
	if email == "" {
		return "Anonymous"
	}
	local, _, _ := strings.Cut(email, "@")
	return local + "***"
}

func scorePercent(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*10000) / 100
}
