package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
	"github.com/lamngoc/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

type InvitationService interface {
	// Invite creates a pending invitation for the email. Any authenticated
	// principal may invite; re-inviting an address with a pending invitation
	// returns the existing record instead of creating a duplicate.
	Invite(principal *auth.Principal, req dto.InvitationCreateRequest) (*dto.InvitationResponse, error)
	ListForQuiz(ref string, principal *auth.Principal) ([]dto.InvitationResponse, error)
	ListForUser(principal *auth.Principal) ([]dto.InvitationResponse, error)
	Respond(principal *auth.Principal, invitationID uint, req dto.InvitationRespondRequest) (*dto.InvitationResponse, error)
	// AutoAccept transitions a pending invitation for (quiz, taker email) to
	// accepted, binding the invitee id. No pending invitation is a no-op, which
	// makes the call idempotent across repeat submissions.
	AutoAccept(quizID uint, taker *auth.Principal) error
	Delete(principal *auth.Principal, invitationID uint) error
}

type invitationService struct {
	invitationRepo repository.InvitationRepository
	quizRepo       repository.QuizRepository
	guard          AccessGuard
}

func NewInvitationService(invitationRepo repository.InvitationRepository, quizRepo repository.QuizRepository, guard AccessGuard) InvitationService {
	return &invitationService{invitationRepo: invitationRepo, quizRepo: quizRepo, guard: guard}
}

func (s *invitationService) Invite(principal *auth.Principal, req dto.InvitationCreateRequest) (*dto.InvitationResponse, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}
	if _, err := s.quizRepo.FindByID(req.QuizID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.InviteeEmail))
	if email == "" {
		return nil, apperror.Validation("invitee_email is required")
	}

	existing, err := s.invitationRepo.FindPending(req.QuizID, email)
	if err != nil {
		return nil, fmt.Errorf("error checking pending invitations: %w", err)
	}
	if existing != nil {
		log.Info().Uint("quizID", req.QuizID).Str("email", email).Msg("Invitation already pending, returning existing record")
		return invitationResponse(existing)
	}

	invitation := model.QuizInvitation{
		QuizID:       req.QuizID,
		InviterID:    principal.ID,
		InviteeEmail: email,
		Status:       model.InvitationStatusPending,
		InvitedAt:    time.Now(),
	}
	if err := s.invitationRepo.Create(&invitation); err != nil {
		log.Error().Err(err).Uint("quizID", req.QuizID).Msg("Failed to create invitation")
		return nil, fmt.Errorf("database error creating invitation: %w", err)
	}
	return invitationResponse(&invitation)
}

func (s *invitationService) ListForQuiz(ref string, principal *auth.Principal) ([]dto.InvitationResponse, error) {
	quiz, err := s.guard.AuthorizeOwner(ref, principal)
	if err != nil {
		return nil, err
	}
	invitations, err := s.invitationRepo.FindAllByQuiz(quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching invitations: %w", err)
	}
	return invitationResponses(invitations)
}

func (s *invitationService) ListForUser(principal *auth.Principal) ([]dto.InvitationResponse, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}
	email := principal.NormalizedEmail()
	if email == "" {
		return []dto.InvitationResponse{}, nil
	}
	invitations, err := s.invitationRepo.FindAllByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("error fetching invitations: %w", err)
	}
	return invitationResponses(invitations)
}

func (s *invitationService) Respond(principal *auth.Principal, invitationID uint, req dto.InvitationRespondRequest) (*dto.InvitationResponse, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}
	if req.Status != model.InvitationStatusAccepted && req.Status != model.InvitationStatusDeclined {
		return nil, apperror.Validation("invalid invitation status %q: must be %q or %q",
			req.Status, model.InvitationStatusAccepted, model.InvitationStatusDeclined)
	}

	invitation, err := s.invitationRepo.FindByID(invitationID)
	if err != nil {
		return nil, err
	}
	if !invitation.IsPending() {
		return nil, apperror.Validation("invitation has already been %s", invitation.Status)
	}

	now := time.Now()
	invitation.Status = req.Status
	invitation.RespondedAt = &now
	if req.Status == model.InvitationStatusAccepted {
		invitation.InviteeID = &principal.ID
	}

	if err := s.invitationRepo.Update(invitation); err != nil {
		log.Error().Err(err).Uint("invitationID", invitationID).Msg("Failed to update invitation")
		return nil, fmt.Errorf("database error updating invitation: %w", err)
	}
	return invitationResponse(invitation)
}

func (s *invitationService) AutoAccept(quizID uint, taker *auth.Principal) error {
	if taker == nil || taker.NormalizedEmail() == "" {
		return nil
	}

	invitation, err := s.invitationRepo.FindPending(quizID, taker.NormalizedEmail())
	if err != nil {
		return fmt.Errorf("error looking up pending invitation: %w", err)
	}
	if invitation == nil {
		return nil
	}

	now := time.Now()
	invitation.Status = model.InvitationStatusAccepted
	invitation.InviteeID = &taker.ID
	invitation.RespondedAt = &now

	if err := s.invitationRepo.Update(invitation); err != nil {
		log.Error().Err(err).Uint("invitationID", invitation.ID).Msg("Failed to auto-accept invitation")
		return fmt.Errorf("database error accepting invitation: %w", err)
	}
	log.Info().Uint("invitationID", invitation.ID).Uint("quizID", quizID).Uint("userID", taker.ID).Msg("Invitation auto-accepted on submission start")
	return nil
}

func (s *invitationService) Delete(principal *auth.Principal, invitationID uint) error {
	if principal == nil {
		return apperror.ErrUnauthenticated
	}
	invitation, err := s.invitationRepo.FindByID(invitationID)
	if err != nil {
		return err
	}

	if invitation.InviterID != principal.ID {
		quiz, err := s.quizRepo.FindByID(invitation.QuizID)
		if err != nil || quiz.CreatorID != principal.ID {
			return apperror.ErrForbidden
		}
	}
	if err := s.invitationRepo.Delete(invitationID); err != nil {
		log.Error().Err(err).Uint("invitationID", invitationID).Msg("Failed to delete invitation")
		return fmt.Errorf("database error deleting invitation: %w", err)
	}
	return nil
}

func invitationResponse(invitation *model.QuizInvitation) (*dto.InvitationResponse, error) {
	var resp dto.InvitationResponse
	if err := copier.Copy(&resp, invitation); err != nil {
		return nil, fmt.Errorf("error preparing invitation response: %w", err)
	}
	return &resp, nil
}

func invitationResponses(invitations []model.QuizInvitation) ([]dto.InvitationResponse, error) {
	resps := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		resp, err := invitationResponse(&invitations[i])
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}
