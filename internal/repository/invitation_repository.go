package repository

import (
	"errors"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/model"
	"gorm.io/gorm"
)

type InvitationRepository interface {
	Create(invitation *model.QuizInvitation) error
	FindByID(id uint) (*model.QuizInvitation, error)
	// FindPending returns the pending invitation for (quiz, email), or nil when
	// none exists. Absence is not an error.
	FindPending(quizID uint, email string) (*model.QuizInvitation, error)
	FindAllByQuiz(quizID uint) ([]model.QuizInvitation, error)
	FindAllByEmail(email string) ([]model.QuizInvitation, error)
	Update(invitation *model.QuizInvitation) error
	Delete(id uint) error
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(invitation *model.QuizInvitation) error {
	return r.db.Create(invitation).Error
}

func (r *invitationRepository) FindByID(id uint) (*model.QuizInvitation, error) {
	var invitation model.QuizInvitation
	if err := r.db.First(&invitation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("invitation not found")
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindPending(quizID uint, email string) (*model.QuizInvitation, error) {
	var invitation model.QuizInvitation
	err := r.db.
		Where("quiz_id = ? AND invitee_email = ? AND status = ?", quizID, email, model.InvitationStatusPending).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindAllByQuiz(quizID uint) ([]model.QuizInvitation, error) {
	var invitations []model.QuizInvitation
	err := r.db.
		Where("quiz_id = ?", quizID).
		Order("invited_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *invitationRepository) FindAllByEmail(email string) ([]model.QuizInvitation, error) {
	var invitations []model.QuizInvitation
	err := r.db.
		Where("invitee_email = ?", email).
		Order("invited_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *invitationRepository) Update(invitation *model.QuizInvitation) error {
	return r.db.Save(invitation).Error
}

func (r *invitationRepository) Delete(id uint) error {
	return r.db.Delete(&model.QuizInvitation{}, id).Error
}
