package repository

import (
	"errors"
	"strconv"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	// FindBySlugOrID tries slug equality first, then numeric-id fallback, for
	// quizzes created before slugs existed. Both lookups are attempted before
	// reporting not found.
	FindBySlugOrID(ref string) (*model.Quiz, error)
	FindBySlugOrIDWithQuestions(ref string) (*model.Quiz, error)
	FindAllPublicPublished() ([]model.Quiz, error)
	FindAllByCreator(creatorID uint) ([]model.Quiz, error)
	Update(quiz *model.Quiz) error
	Delete(quizID uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quiz not found")
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindBySlugOrID(ref string) (*model.Quiz, error) {
	return r.findByRef(ref, r.db)
}

func (r *quizRepository) FindBySlugOrIDWithQuestions(ref string) (*model.Quiz, error) {
	scope := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_quiz ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.order_in_question ASC")
		})
	return r.findByRef(ref, scope)
}

func (r *quizRepository) findByRef(ref string, scope *gorm.DB) (*model.Quiz, error) {
	// Each lookup runs on its own session: a chained *gorm.DB is one statement,
	// and the slug query's conditions would otherwise leak into the id fallback.
	var quiz model.Quiz
	err := scope.Session(&gorm.Session{}).Where("slug = ?", ref).First(&quiz).Error
	if err == nil {
		return &quiz, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, parseErr := strconv.ParseUint(ref, 10, 32)
	if parseErr != nil {
		return nil, apperror.NotFound("quiz %q not found", ref)
	}

	err = scope.Session(&gorm.Session{}).First(&quiz, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quiz %q not found", ref)
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindAllPublicPublished() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("visibility = ? AND is_published = ?", model.VisibilityPublic, true).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindAllByCreator(creatorID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Omit("Questions").Save(quiz).Error
}

// Delete removes the quiz and cascades its questions, options, invitations,
// submissions and answers in one transaction.
func (r *quizRepository) Delete(quizID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", quizID)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
			return err
		}

		submissionIDs := tx.Model(&model.QuizSubmission{}).Select("id").Where("quiz_id = ?", quizID)
		if err := tx.Where("submission_id IN (?)", submissionIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizSubmission{}).Error; err != nil {
			return err
		}

		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizInvitation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, quizID).Error
	})
}
