package service

import (
	"testing"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
)

func TestInviteNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Invite Quiz", Slug: "invite-quiz"})

	inv, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID:       quiz.ID,
		InviteeEmail: "  Bob@Example.COM ",
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if inv.InviteeEmail != "bob@example.com" {
		t.Errorf("expected lowercase-trimmed email, got %q", inv.InviteeEmail)
	}
	if inv.Status != model.InvitationStatusPending {
		t.Errorf("expected pending status, got %q", inv.Status)
	}
	if inv.InvitedAt.IsZero() {
		t.Error("expected invited_at to be set")
	}
}

func TestInviteDedupesPending(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Dedupe Quiz", Slug: "dedupe-quiz"})

	first, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: "bob@example.com",
	})
	if err != nil {
		t.Fatalf("first Invite failed: %v", err)
	}
	second, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: "BOB@example.com",
	})
	if err != nil {
		t.Fatalf("second Invite failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the existing pending invitation back, got ids %d and %d", first.ID, second.ID)
	}

	var count int64
	env.db.Model(&model.QuizInvitation{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single invitation row, got %d", count)
	}
}

func TestInviteUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")

	_, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID: 999, InviteeEmail: "bob@example.com",
	})
	if apperror.Status(err) != 404 {
		t.Errorf("expected 404 for unknown quiz, got %d (%v)", apperror.Status(err), err)
	}
}

func TestRespondTransitions(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	invitee := testPrincipal(2, "bob@example.com", "Bob")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Respond Quiz", Slug: "respond-quiz"})

	inv, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: invitee.Email,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	_, err = env.invitations.Respond(invitee, inv.ID, dto.InvitationRespondRequest{Status: "maybe"})
	if apperror.Status(err) != 400 {
		t.Errorf("invalid status: expected 400, got %d (%v)", apperror.Status(err), err)
	}

	accepted, err := env.invitations.Respond(invitee, inv.ID, dto.InvitationRespondRequest{
		Status: model.InvitationStatusAccepted,
	})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if accepted.Status != model.InvitationStatusAccepted {
		t.Errorf("expected accepted, got %q", accepted.Status)
	}
	if accepted.InviteeID == nil || *accepted.InviteeID != invitee.ID {
		t.Errorf("expected invitee id %d to be bound, got %v", invitee.ID, accepted.InviteeID)
	}
	if accepted.RespondedAt == nil {
		t.Error("expected responded_at to be set")
	}

	// A responded invitation is terminal.
	_, err = env.invitations.Respond(invitee, inv.ID, dto.InvitationRespondRequest{
		Status: model.InvitationStatusDeclined,
	})
	if apperror.Status(err) != 400 {
		t.Errorf("double respond: expected 400, got %d (%v)", apperror.Status(err), err)
	}
}

func TestDeclineDoesNotBindInvitee(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	invitee := testPrincipal(2, "bob@example.com", "Bob")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Decline Quiz", Slug: "decline-quiz"})

	inv, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: invitee.Email,
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	declined, err := env.invitations.Respond(invitee, inv.ID, dto.InvitationRespondRequest{
		Status: model.InvitationStatusDeclined,
	})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if declined.Status != model.InvitationStatusDeclined {
		t.Errorf("expected declined, got %q", declined.Status)
	}
	if declined.InviteeID != nil {
		t.Errorf("declining must not bind an invitee id, got %v", declined.InviteeID)
	}
}

func TestListInvitations(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	stranger := testPrincipal(3, "carol@example.com", "Carol")
	invitee := testPrincipal(2, "bob@example.com", "Bob")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "List Quiz", Slug: "list-quiz"})

	if _, err := env.invitations.Invite(creator, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: invitee.Email,
	}); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	if _, err := env.invitations.ListForQuiz(quiz.Slug, stranger); apperror.Status(err) != 403 {
		t.Errorf("stranger listing quiz invitations: expected 403, got %d", apperror.Status(err))
	}

	forQuiz, err := env.invitations.ListForQuiz(quiz.Slug, creator)
	if err != nil {
		t.Fatalf("ListForQuiz failed: %v", err)
	}
	if len(forQuiz) != 1 {
		t.Errorf("expected 1 invitation for the quiz, got %d", len(forQuiz))
	}

	forUser, err := env.invitations.ListForUser(invitee)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(forUser) != 1 {
		t.Errorf("expected 1 invitation for the invitee, got %d", len(forUser))
	}

	noEmail := testPrincipal(4, "", "Nameless")
	empty, err := env.invitations.ListForUser(noEmail)
	if err != nil {
		t.Fatalf("ListForUser without email failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no invitations for an email-less principal, got %d", len(empty))
	}
}

func TestDeleteInvitationPermissions(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	inviter := testPrincipal(2, "bob@example.com", "Bob")
	stranger := testPrincipal(3, "carol@example.com", "Carol")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Revoke Quiz", Slug: "revoke-quiz"})

	// Any authenticated user may invite, not only the creator.
	inv, err := env.invitations.Invite(inviter, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: "dave@example.com",
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	if err := env.invitations.Delete(stranger, inv.ID); apperror.Status(err) != 403 {
		t.Errorf("stranger delete: expected 403, got %d (%v)", apperror.Status(err), err)
	}
	if err := env.invitations.Delete(creator, inv.ID); err != nil {
		t.Errorf("creator delete failed: %v", err)
	}

	inv2, err := env.invitations.Invite(inviter, dto.InvitationCreateRequest{
		QuizID: quiz.ID, InviteeEmail: "erin@example.com",
	})
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if err := env.invitations.Delete(inviter, inv2.ID); err != nil {
		t.Errorf("inviter delete failed: %v", err)
	}
}
