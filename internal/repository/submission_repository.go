package repository

import (
	"errors"
	"time"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	// CreateWithAccessPolicy inserts the submission behind the store's access
	// rule: a private quiz only admits its creator or a taker whose email holds
	// an invitation. A rejection surfaces as a policy error, not a generic
	// failure, so callers can report 403 with the store's diagnostic.
	CreateWithAccessPolicy(submission *model.QuizSubmission, quiz *model.Quiz) error
	FindByID(id uint) (*model.QuizSubmission, error)
	FindByIDWithAnswers(id uint) (*model.QuizSubmission, error)
	FindAllByQuiz(quizID uint) ([]model.QuizSubmission, error)
	Update(submission *model.QuizSubmission) error
	// FinalizeGrading writes the answer rows and walks the submission through
	// submitted to graded in a single transaction.
	FinalizeGrading(submission *model.QuizSubmission, answers []model.QuizAnswer) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateWithAccessPolicy(submission *model.QuizSubmission, quiz *model.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if !quiz.IsPublic() && submission.UserID != quiz.CreatorID {
			var invited int64
			err := tx.Model(&model.QuizInvitation{}).
				Where("quiz_id = ? AND invitee_email = ? AND status IN ?",
					quiz.ID,
					submission.SubmittedByEmail,
					[]string{model.InvitationStatusPending, model.InvitationStatusAccepted}).
				Count(&invited).Error
			if err != nil {
				return err
			}
			if invited == 0 {
				return apperror.PolicyDenied("quiz %q is private: an invitation is required to take it", quiz.Title)
			}
		}
		return tx.Create(submission).Error
	})
}

func (r *submissionRepository) FindByID(id uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	if err := r.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("submission not found")
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindByIDWithAnswers(id uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.db.Preload("Answers").First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("submission not found")
		}
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindAllByQuiz(quizID uint) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := r.db.
		Where("quiz_id = ?", quizID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) Update(submission *model.QuizSubmission) error {
	return r.db.Omit("Answers", "Quiz").Save(submission).Error
}

func (r *submissionRepository) FinalizeGrading(submission *model.QuizSubmission, answers []model.QuizAnswer) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Model(&model.QuizSubmission{}).
			Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"status":       model.SubmissionStatusSubmitted,
				"submitted_at": now,
			}).Error
		if err != nil {
			return err
		}

		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}

		err = tx.Model(&model.QuizSubmission{}).
			Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"status":       model.SubmissionStatusGraded,
				"score":        submission.Score,
				"total_points": submission.TotalPoints,
			}).Error
		if err != nil {
			return err
		}

		submission.Status = model.SubmissionStatusGraded
		submission.SubmittedAt = &now
		return nil
	})
	if err != nil {
		return err
	}
	submission.Answers = answers
	return nil
}
