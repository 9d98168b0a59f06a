package service

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
	"github.com/lamngoc/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

// SubmissionService drives the attempt lifecycle: in_progress -> submitted ->
// graded, strictly forward.
type SubmissionService interface {
	// Start creates an in_progress submission. The invitation auto-accept
	// pre-step runs before the insert so a private quiz's access policy sees
	// the invite already claimed. Nothing prevents repeat attempts: each Start
	// creates an independent submission.
	Start(ref string, taker *auth.Principal) (*dto.SubmissionResponse, error)
	// SubmitAnswers grades the taker's answers against the authoritative
	// options and finalizes the submission.
	SubmitAnswers(ref string, submissionID uint, taker *auth.Principal, req dto.SubmitAnswersRequest) (*dto.SubmissionResponse, error)
	// ListForQuiz is the creator-only, unredacted submissions list.
	ListForQuiz(ref string, principal *auth.Principal) ([]dto.SubmissionResponse, error)
	Get(submissionID uint, principal *auth.Principal) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	quizRepo       repository.QuizRepository
	submissionRepo repository.SubmissionRepository
	invitationSvc  InvitationService
	guard          AccessGuard
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	submissionRepo repository.SubmissionRepository,
	invitationSvc InvitationService,
	guard AccessGuard,
) SubmissionService {
	return &submissionService{
		quizRepo:       quizRepo,
		submissionRepo: submissionRepo,
		invitationSvc:  invitationSvc,
		guard:          guard,
	}
}

func (s *submissionService) Start(ref string, taker *auth.Principal) (*dto.SubmissionResponse, error) {
	if taker == nil {
		return nil, apperror.ErrUnauthenticated
	}

	quiz, err := s.guard.ResolveQuiz(ref)
	if err != nil {
		return nil, err
	}

	// Auto-accept must run before the insert so that an email-only invite is
	// bound to the taker's account by the time the access policy evaluates.
	if taker.Email != "" {
		if err := s.invitationSvc.AutoAccept(quiz.ID, taker); err != nil {
			return nil, err
		}
	}

	submission := model.QuizSubmission{
		QuizID:           quiz.ID,
		UserID:           taker.ID,
		SubmittedByName:  taker.DisplayName(),
		SubmittedByEmail: taker.NormalizedEmail(),
		Status:           model.SubmissionStatusInProgress,
		Score:            0,
		TotalPoints:      0,
	}
	if err := s.submissionRepo.CreateWithAccessPolicy(&submission, quiz); err != nil {
		if apperror.Status(err) == 403 {
			log.Warn().Uint("quizID", quiz.ID).Uint("userID", taker.ID).Msg("Submission insert rejected by quiz access policy")
			return nil, err
		}
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to create submission")
		return nil, fmt.Errorf("database error creating submission: %w", err)
	}

	return submissionResponse(&submission)
}

func (s *submissionService) SubmitAnswers(ref string, submissionID uint, taker *auth.Principal, req dto.SubmitAnswersRequest) (*dto.SubmissionResponse, error) {
	if taker == nil {
		return nil, apperror.ErrUnauthenticated
	}

	quiz, err := s.quizRepo.FindBySlugOrIDWithQuestions(ref)
	if err != nil {
		return nil, err
	}
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission.QuizID != quiz.ID {
		return nil, apperror.NotFound("submission not found for this quiz")
	}
	if submission.UserID != taker.ID {
		return nil, apperror.Forbidden("only the taker may submit answers for this attempt")
	}
	if submission.Status != model.SubmissionStatusInProgress {
		return nil, apperror.Validation("submission has already been %s", submission.Status)
	}
	if len(quiz.Questions) == 0 {
		return nil, apperror.Validation("quiz has no questions, nothing to grade")
	}

	questionIDs := make(map[uint]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questionIDs[q.ID] = true
	}
	answerByQuestion := make(map[uint]string, len(req.Answers))
	for _, a := range req.Answers {
		if !questionIDs[a.QuestionID] {
			log.Warn().Uint("questionID", a.QuestionID).Uint("quizID", quiz.ID).Msg("Answer for a question not part of this quiz, skipping")
			continue
		}
		answerByQuestion[a.QuestionID] = a.Answer
	}

	// One answer row per question; unanswered questions earn zero.
	answers := make([]model.QuizAnswer, 0, len(quiz.Questions))
	score, total := 0, 0
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		total += question.Points

		text := answerByQuestion[question.ID]
		correct := gradeAnswer(question, text)
		earned := 0
		if correct {
			earned = question.Points
			score += earned
		}
		answers = append(answers, model.QuizAnswer{
			SubmissionID: submission.ID,
			QuestionID:   question.ID,
			AnswerText:   text,
			IsCorrect:    correct,
			PointsEarned: earned,
		})
	}

	submission.Score = score
	submission.TotalPoints = total
	if err := s.submissionRepo.FinalizeGrading(submission, answers); err != nil {
		log.Error().Err(err).Uint("submissionID", submission.ID).Msg("Failed to finalize grading")
		return nil, fmt.Errorf("database error grading submission: %w", err)
	}

	log.Info().Uint("submissionID", submission.ID).Int("score", score).Int("total", total).Msg("Submission graded")
	return submissionResponse(submission)
}

// gradeAnswer compares the taker's raw answer against the question's options.
// Choice types resolve the picked option and use its is_correct flag; text
// types match trimmed, case-insensitive against any correct option. No partial
// credit.
func gradeAnswer(question *model.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	switch question.Type {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse:
		for _, opt := range question.Options {
			if strings.EqualFold(strings.TrimSpace(opt.Text), answer) {
				return opt.IsCorrect
			}
		}
		return false
	default: // short_answer, fill_in_blank
		for _, opt := range question.Options {
			if opt.IsCorrect && strings.EqualFold(strings.TrimSpace(opt.Text), answer) {
				return true
			}
		}
		return false
	}
}

func (s *submissionService) ListForQuiz(ref string, principal *auth.Principal) ([]dto.SubmissionResponse, error) {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionRepo.FindAllByQuiz(quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}

	resps := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		resp, err := submissionResponse(&submissions[i])
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}

func (s *submissionService) Get(submissionID uint, principal *auth.Principal) (*dto.SubmissionResponse, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}
	submission, err := s.submissionRepo.FindByIDWithAnswers(submissionID)
	if err != nil {
		return nil, err
	}
	if submission.UserID != principal.ID {
		quiz, err := s.quizRepo.FindByID(submission.QuizID)
		if err != nil || quiz.CreatorID != principal.ID {
			return nil, apperror.ErrForbidden
		}
	}
	return submissionResponse(submission)
}

func submissionResponse(submission *model.QuizSubmission) (*dto.SubmissionResponse, error) {
	var resp dto.SubmissionResponse
	if err := copier.Copy(&resp, submission); err != nil {
		return nil, fmt.Errorf("error preparing submission response: %w", err)
	}
	return &resp, nil
}
