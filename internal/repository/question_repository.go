package repository

import (
	"errors"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionOrder is one (question id, new order) pair in a reorder batch.
type QuestionOrder struct {
	ID    uint
	Order int
}

type QuestionRepository interface {
	// CreateWithOptions inserts the question with its options and refreshes the
	// owning quiz's total_questions counter, all in one transaction.
	CreateWithOptions(question *model.Question) error
	FindByID(quizID, questionID uint) (*model.Question, error)
	FindByQuizID(quizID uint) ([]model.Question, error)
	CountByQuiz(quizID uint) (int64, error)
	// SaveWithOptionDiff applies the id-diff reconciliation computed by the
	// service: insert new options, delete missing ones, upsert the rest.
	SaveWithOptionDiff(question *model.Question, toInsert, toUpdate []model.QuestionOption, toDeleteIDs []uint) error
	// Delete cascades the question's options and refreshes total_questions.
	Delete(quizID, questionID uint) error
	// Reorder applies each (id, order) pair scoped to the quiz id. A pair whose
	// id belongs to another quiz is a silent no-op. All updates succeed or the
	// whole batch rolls back.
	Reorder(quizID uint, orders []QuestionOrder) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// refreshQuizQuestionTotal recomputes total_questions from the live question
// count inside the caller's transaction, so the counter never drifts.
func refreshQuizQuestionTotal(tx *gorm.DB, quizID uint) error {
	count := tx.Model(&model.Question{}).Select("COUNT(*)").Where("quiz_id = ?", quizID)
	return tx.Model(&model.Quiz{}).Where("id = ?", quizID).Update("total_questions", count).Error
}

func (r *questionRepository) CreateWithOptions(question *model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return refreshQuizQuestionTotal(tx, question.QuizID)
	})
}

func (r *questionRepository) FindByID(quizID, questionID uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.order_in_question ASC")
		}).
		Where("quiz_id = ?", quizID).
		First(&question, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question not found")
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQuizID(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.order_in_question ASC")
		}).
		Where("quiz_id = ?", quizID).
		Order("order_in_quiz ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountByQuiz(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *questionRepository) SaveWithOptionDiff(question *model.Question, toInsert, toUpdate []model.QuestionOption, toDeleteIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(question).Error; err != nil {
			return err
		}
		if len(toDeleteIDs) > 0 {
			if err := tx.Where("question_id = ?", question.ID).Delete(&model.QuestionOption{}, toDeleteIDs).Error; err != nil {
				return err
			}
		}
		for i := range toUpdate {
			if err := tx.Save(&toUpdate[i]).Error; err != nil {
				return err
			}
		}
		if len(toInsert) > 0 {
			if err := tx.Create(&toInsert).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questionRepository) Delete(quizID, questionID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		result := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}, questionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("question not found")
		}
		return refreshQuizQuestionTotal(tx, quizID)
	})
}

func (r *questionRepository) Reorder(quizID uint, orders []QuestionOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			err := tx.Model(&model.Question{}).
				Where("id = ? AND quiz_id = ?", o.ID, quizID).
				Update("order_in_quiz", o.Order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
