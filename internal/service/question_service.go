package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
	"github.com/lamngoc/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	AddQuestion(ref string, principal *auth.Principal, req dto.QuestionCreateRequest) (*dto.QuestionManageResponse, error)
	UpdateQuestion(ref string, questionID uint, principal *auth.Principal, req dto.QuestionUpdateRequest) (*dto.QuestionManageResponse, error)
	DeleteQuestion(ref string, questionID uint, principal *auth.Principal) error
	ReorderQuestions(ref string, principal *auth.Principal, req dto.ReorderQuestionsRequest) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	guard        AccessGuard
}

func NewQuestionService(questionRepo repository.QuestionRepository, guard AccessGuard) QuestionService {
	return &questionService{questionRepo: questionRepo, guard: guard}
}

func (s *questionService) AddQuestion(ref string, principal *auth.Principal, req dto.QuestionCreateRequest) (*dto.QuestionManageResponse, error) {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return nil, err
	}

	if !model.ValidQuestionType(req.Type) {
		return nil, apperror.Validation("invalid question type %q", req.Type)
	}
	points := 1
	if req.Points != nil {
		if *req.Points < 1 {
			return nil, apperror.Validation("points must be at least 1")
		}
		points = *req.Points
	}

	count, err := s.questionRepo.CountByQuiz(quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting questions: %w", err)
	}

	question := model.Question{
		QuizID: quiz.ID,
		Text:   req.Text,
		Type:   req.Type,
		Points: points,
		// Append-only: a deleted slot's number is never reused at creation time.
		OrderInQuiz: int(count) + 1,
	}
	for i, opt := range req.Options {
		question.Options = append(question.Options, model.QuestionOption{
			Text:            opt.Text,
			IsCorrect:       opt.IsCorrect,
			OrderInQuestion: i + 1,
		})
	}

	if err := s.questionRepo.CreateWithOptions(&question); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	var resp dto.QuestionManageResponse
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *questionService) UpdateQuestion(ref string, questionID uint, principal *auth.Principal, req dto.QuestionUpdateRequest) (*dto.QuestionManageResponse, error) {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(quiz.ID, questionID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Type != nil {
		if !model.ValidQuestionType(*req.Type) {
			return nil, apperror.Validation("invalid question type %q", *req.Type)
		}
		question.Type = *req.Type
	}
	if req.Points != nil {
		if *req.Points < 1 {
			return nil, apperror.Validation("points must be at least 1")
		}
		question.Points = *req.Points
	}

	var toInsert, toUpdate []model.QuestionOption
	var toDelete []uint
	if req.Options != nil {
		toInsert, toUpdate, toDelete = reconcileOptions(question, *req.Options)
	}

	if err := s.questionRepo.SaveWithOptionDiff(question, toInsert, toUpdate, toDelete); err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to update question")
		return nil, fmt.Errorf("database error updating question: %w", err)
	}

	updated, err := s.questionRepo.FindByID(quiz.ID, questionID)
	if err != nil {
		return nil, err
	}
	var resp dto.QuestionManageResponse
	if err := copier.Copy(&resp, updated); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

// reconcileOptions computes the three-way diff keyed by option id: inputs
// without an id (or with an unknown id) are inserts, existing options absent
// from the input are deletes, the rest are upserts keeping their id with the
// input sequence as the new order. Untouched options keep stable identity.
func reconcileOptions(question *model.Question, inputs []dto.OptionInput) (toInsert, toUpdate []model.QuestionOption, toDelete []uint) {
	existing := make(map[uint]model.QuestionOption, len(question.Options))
	for _, opt := range question.Options {
		existing[opt.ID] = opt
	}

	seen := make(map[uint]bool, len(inputs))
	for i, in := range inputs {
		order := i + 1
		if in.ID != nil {
			if current, ok := existing[*in.ID]; ok {
				current.Text = in.Text
				current.IsCorrect = in.IsCorrect
				current.OrderInQuestion = order
				toUpdate = append(toUpdate, current)
				seen[*in.ID] = true
				continue
			}
		}
		toInsert = append(toInsert, model.QuestionOption{
			QuestionID:      question.ID,
			Text:            in.Text,
			IsCorrect:       in.IsCorrect,
			OrderInQuestion: order,
		})
	}

	for id := range existing {
		if !seen[id] {
			toDelete = append(toDelete, id)
		}
	}
	return toInsert, toUpdate, toDelete
}

func (s *questionService) DeleteQuestion(ref string, questionID uint, principal *auth.Principal) error {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(quiz.ID, questionID); err != nil {
		if apperror.Status(err) == 404 {
			return err
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to delete question")
		return fmt.Errorf("database error deleting question: %w", err)
	}
	return nil
}

func (s *questionService) ReorderQuestions(ref string, principal *auth.Principal, req dto.ReorderQuestionsRequest) error {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return err
	}
	if len(req.Orders) == 0 {
		return apperror.Validation("reorder payload must contain at least one entry")
	}

	orders := make([]repository.QuestionOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		if o.Order < 1 {
			return apperror.Validation("order values must be 1-based, got %d", o.Order)
		}
		orders = append(orders, repository.QuestionOrder{ID: o.ID, Order: o.Order})
	}

	if err := s.questionRepo.Reorder(quiz.ID, orders); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to reorder questions")
		return fmt.Errorf("database error reordering questions: %w", err)
	}
	return nil
}
