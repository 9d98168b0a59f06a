package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
	"github.com/lamngoc/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuizService interface {
	CreateQuiz(principal *auth.Principal, req dto.QuizCreateRequest) (*dto.QuizResponse, error)
	UpdateQuiz(ref string, principal *auth.Principal, req dto.QuizUpdateRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ref string, principal *auth.Principal) error
	// GetQuizDetail is public: questions ordered ascending, answer key stripped.
	GetQuizDetail(ref string) (*dto.QuizDetailResponse, error)
	// GetQuizManageDetail is the creator-only view including is_correct.
	GetQuizManageDetail(ref string, principal *auth.Principal) (*dto.QuizManageDetailResponse, error)
	ListPublicQuizzes() ([]dto.QuizResponse, error)
	ListMyQuizzes(principal *auth.Principal) ([]dto.QuizResponse, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
	guard    AccessGuard
}

func NewQuizService(quizRepo repository.QuizRepository, guard AccessGuard) QuizService {
	return &quizService{quizRepo: quizRepo, guard: guard}
}

func (s *quizService) CreateQuiz(principal *auth.Principal, req dto.QuizCreateRequest) (*dto.QuizResponse, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}

	quiz := model.Quiz{
		Title:            req.Title,
		Slug:             strings.TrimSpace(req.Slug),
		Description:      req.Description,
		CreatorID:        principal.ID,
		Visibility:       model.VisibilityPrivate,
		TotalQuestions:   0,
		Difficulty:       req.Difficulty,
		Category:         req.Category,
		TimeLimitMinutes: req.TimeLimitMinutes,
		ReleaseAt:        req.ReleaseAt,
		OrganizerName:    req.OrganizerName,
	}
	if req.Visibility != nil {
		quiz.Visibility = *req.Visibility
	}
	if req.IsPublished != nil {
		quiz.IsPublished = *req.IsPublished
	}
	if quiz.Slug == "" {
		quiz.Slug = generateSlug(req.Title)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create quiz")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	var resp dto.QuizResponse
	if err := copier.Copy(&resp, &quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}

func (s *quizService) UpdateQuiz(ref string, principal *auth.Principal, req dto.QuizUpdateRequest) (*dto.QuizResponse, error) {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return nil, err
	}

	// Partial update: only fields present in the body are applied. Visibility
	// in particular must survive a body that omits it.
	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Visibility != nil {
		quiz.Visibility = *req.Visibility
	}
	if req.IsPublished != nil {
		quiz.IsPublished = *req.IsPublished
	}
	if req.Difficulty != nil {
		quiz.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		quiz.Category = *req.Category
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = req.TimeLimitMinutes
	}
	if req.ReleaseAt != nil {
		quiz.ReleaseAt = req.ReleaseAt
	}
	if req.OrganizerName != nil {
		quiz.OrganizerName = *req.OrganizerName
	}

	if err := s.quizRepo.Update(quiz); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to update quiz")
		return nil, fmt.Errorf("database error updating quiz: %w", err)
	}

	var resp dto.QuizResponse
	if err := copier.Copy(&resp, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}

func (s *quizService) DeleteQuiz(ref string, principal *auth.Principal) error {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return err
	}
	if err := s.quizRepo.Delete(quiz.ID); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to delete quiz")
		return fmt.Errorf("database error deleting quiz: %w", err)
	}
	return nil
}

func (s *quizService) GetQuizDetail(ref string) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.FindBySlugOrIDWithQuestions(ref)
	if err != nil {
		return nil, err
	}

	var resp dto.QuizDetailResponse
	if err := copier.Copy(&resp.QuizResponse, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz detail response: %w", err)
	}

	resp.Questions = make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		var q dto.QuestionResponse
		// OptionResponse has no is_correct field, so the answer key never
		// reaches this surface.
		if err := copier.Copy(&q, &quiz.Questions[i]); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		resp.Questions = append(resp.Questions, q)
	}
	return &resp, nil
}

func (s *quizService) GetQuizManageDetail(ref string, principal *auth.Principal) (*dto.QuizManageDetailResponse, error) {
	if _, err := s.guard.AuthorizeOwner(ref, principal); err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.FindBySlugOrIDWithQuestions(ref)
	if err != nil {
		return nil, err
	}

	var resp dto.QuizManageDetailResponse
	if err := copier.Copy(&resp.QuizResponse, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz detail response: %w", err)
	}

	resp.Questions = make([]dto.QuestionManageResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		var q dto.QuestionManageResponse
		if err := copier.Copy(&q, &quiz.Questions[i]); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		resp.Questions = append(resp.Questions, q)
	}
	return &resp, nil
}

func (s *quizService) ListPublicQuizzes() ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.FindAllPublicPublished()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list public quizzes")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return quizResponses(quizzes)
}

func (s *quizService) ListMyQuizzes(principal *auth.Principal) ([]dto.QuizResponse, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}
	quizzes, err := s.quizRepo.FindAllByCreator(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint("creatorID", principal.ID).Msg("Failed to list creator quizzes")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}
	return quizResponses(quizzes)
}

func quizResponses(quizzes []model.Quiz) ([]dto.QuizResponse, error) {
	resps := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		var resp dto.QuizResponse
		if err := copier.Copy(&resp, &quizzes[i]); err != nil {
			return nil, fmt.Errorf("error preparing quiz response: %w", err)
		}
		resps = append(resps, resp)
	}
	return resps, nil
}

// generateSlug derives a URL-safe slug from the title with a short random
// suffix to keep the unique index happy across same-titled quizzes.
func generateSlug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	if slug == "" {
		return suffix
	}
	if len(slug) > 80 {
		slug = slug[:80]
	}
	return slug + "-" + suffix
}
