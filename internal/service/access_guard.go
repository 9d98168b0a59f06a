package service

import (
	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/model"
	"github.com/lamngoc/quizforge/internal/repository"
)

// AccessGuard is the single resolution and authorization point for quiz
// references. Every owner-scoped operation goes through AuthorizeOwner so the
// slug-then-id lookup and the ownership rule live in exactly one place.
type AccessGuard interface {
	ResolveQuiz(ref string) (*model.Quiz, error)
	// AuthorizeOwner resolves ref and checks the principal owns the quiz:
	// 401 without a principal, 404 when neither slug nor id matches, 403 when
	// the principal is not the creator. Side-effect free.
	AuthorizeOwner(ref string, principal *auth.Principal) (*model.Quiz, error)
}

type accessGuard struct {
	quizRepo repository.QuizRepository
}

func NewAccessGuard(quizRepo repository.QuizRepository) AccessGuard {
	return &accessGuard{quizRepo: quizRepo}
}

func (g *accessGuard) ResolveQuiz(ref string) (*model.Quiz, error) {
	return g.quizRepo.FindBySlugOrID(ref)
}

func (g *accessGuard) AuthorizeOwner(ref string, principal *auth.Principal) (*model.Quiz, error) {
	if principal == nil {
		return nil, apperror.ErrUnauthenticated
	}
	quiz, err := g.quizRepo.FindBySlugOrID(ref)
	if err != nil {
		return nil, err
	}
	if quiz.CreatorID != principal.ID {
		return nil, apperror.ErrForbidden
	}
	return quiz, nil
}
