package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
)

func TestCreateQuizDefaults(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")

	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Geography Basics"})

	if quiz.Visibility != model.VisibilityPrivate {
		t.Errorf("expected default visibility %q, got %q", model.VisibilityPrivate, quiz.Visibility)
	}
	if quiz.IsPublished {
		t.Error("expected new quiz to be unpublished")
	}
	if quiz.TotalQuestions != 0 {
		t.Errorf("expected 0 total questions, got %d", quiz.TotalQuestions)
	}
	if quiz.CreatorID != creator.ID {
		t.Errorf("expected creator id %d, got %d", creator.ID, quiz.CreatorID)
	}
	if quiz.Slug == "" || !strings.HasPrefix(quiz.Slug, "geography-basics-") {
		t.Errorf("expected generated slug with title prefix, got %q", quiz.Slug)
	}
}

func TestCreateQuizRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quizzes.CreateQuiz(nil, dto.QuizCreateRequest{Title: "Anonymous Quiz"})
	if apperror.Status(err) != 401 {
		t.Fatalf("expected 401, got %d (%v)", apperror.Status(err), err)
	}
}

func TestQuizLookupBySlugAndID(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Lookup Quiz", Slug: "lookup-quiz"})
	env.addQuestion(t, quiz.Slug, creator, choiceQuestion("Q1", "yes", "no"))

	bySlug, err := env.quizzes.GetQuizDetail("lookup-quiz")
	if err != nil {
		t.Fatalf("lookup by slug failed: %v", err)
	}
	// The id fallback must still work after the slug lookup missed, on the same
	// preloading scope.
	byID, err := env.quizzes.GetQuizDetail(strconv.Itoa(int(quiz.ID)))
	if err != nil {
		t.Fatalf("lookup by id failed: %v", err)
	}
	if bySlug.ID != byID.ID {
		t.Errorf("slug and id lookup resolved different quizzes: %d vs %d", bySlug.ID, byID.ID)
	}
	if len(byID.Questions) != 1 {
		t.Errorf("id lookup lost the question preload: got %d questions", len(byID.Questions))
	}

	_, err = env.quizzes.GetQuizDetail("does-not-exist")
	if apperror.Status(err) != 404 {
		t.Errorf("expected 404 for unknown ref, got %d (%v)", apperror.Status(err), err)
	}
}

func TestTotalQuestionsTracksMutations(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Counter Quiz", Slug: "counter-quiz"})

	q1 := env.addQuestion(t, quiz.Slug, creator, choiceQuestion("Q1", "yes", "no"))
	env.addQuestion(t, quiz.Slug, creator, choiceQuestion("Q2", "yes", "no"))

	detail, err := env.quizzes.GetQuizDetail(quiz.Slug)
	if err != nil {
		t.Fatalf("GetQuizDetail failed: %v", err)
	}
	if detail.TotalQuestions != 2 {
		t.Errorf("expected total_questions 2 after adds, got %d", detail.TotalQuestions)
	}

	if err := env.questions.DeleteQuestion(quiz.Slug, q1.ID, creator); err != nil {
		t.Fatalf("DeleteQuestion failed: %v", err)
	}
	detail, err = env.quizzes.GetQuizDetail(quiz.Slug)
	if err != nil {
		t.Fatalf("GetQuizDetail failed: %v", err)
	}
	if detail.TotalQuestions != 1 {
		t.Errorf("expected total_questions 1 after delete, got %d", detail.TotalQuestions)
	}
}

func TestPublicDetailOmitsAnswerKey(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Secret Quiz", Slug: "secret-quiz"})
	env.addQuestion(t, quiz.Slug, creator, choiceQuestion("Capital of France?", "Paris", "Rome"))

	detail, err := env.quizzes.GetQuizDetail(quiz.Slug)
	if err != nil {
		t.Fatalf("GetQuizDetail failed: %v", err)
	}

	body, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(body), "is_correct") {
		t.Errorf("public detail leaked the answer key: %s", body)
	}

	manage, err := env.quizzes.GetQuizManageDetail(quiz.Slug, creator)
	if err != nil {
		t.Fatalf("GetQuizManageDetail failed: %v", err)
	}
	body, err = json.Marshal(manage)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), "is_correct") {
		t.Errorf("manage detail should include the answer key: %s", body)
	}
}

func TestUpdateQuizPartialPreservesVisibility(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{
		Title:      "Visibility Quiz",
		Slug:       "visibility-quiz",
		Visibility: strptr(model.VisibilityPublic),
	})

	updated, err := env.quizzes.UpdateQuiz(quiz.Slug, creator, dto.QuizUpdateRequest{Title: strptr("Renamed Quiz")})
	if err != nil {
		t.Fatalf("UpdateQuiz failed: %v", err)
	}
	if updated.Title != "Renamed Quiz" {
		t.Errorf("expected title to change, got %q", updated.Title)
	}
	if updated.Visibility != model.VisibilityPublic {
		t.Errorf("visibility was reset by a partial update: %q", updated.Visibility)
	}
}

func TestOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	stranger := testPrincipal(2, "bob@example.com", "Bob")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Guarded Quiz", Slug: "guarded-quiz"})

	if _, err := env.quizzes.GetQuizManageDetail(quiz.Slug, nil); apperror.Status(err) != 401 {
		t.Errorf("anonymous: expected 401, got %d", apperror.Status(err))
	}
	if _, err := env.quizzes.GetQuizManageDetail(quiz.Slug, stranger); apperror.Status(err) != 403 {
		t.Errorf("stranger: expected 403, got %d", apperror.Status(err))
	}
	if _, err := env.quizzes.GetQuizManageDetail("missing-quiz", creator); apperror.Status(err) != 404 {
		t.Errorf("unknown quiz: expected 404, got %d", apperror.Status(err))
	}
}

func TestListPublicQuizzes(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")

	env.createQuiz(t, creator, dto.QuizCreateRequest{
		Title: "Published Public", Slug: "pub-1",
		Visibility: strptr(model.VisibilityPublic), IsPublished: boolptr(true),
	})
	env.createQuiz(t, creator, dto.QuizCreateRequest{
		Title: "Unpublished Public", Slug: "pub-2",
		Visibility: strptr(model.VisibilityPublic),
	})
	env.createQuiz(t, creator, dto.QuizCreateRequest{
		Title: "Published Private", Slug: "priv-1", IsPublished: boolptr(true),
	})

	public, err := env.quizzes.ListPublicQuizzes()
	if err != nil {
		t.Fatalf("ListPublicQuizzes failed: %v", err)
	}
	if len(public) != 1 || public[0].Slug != "pub-1" {
		t.Errorf("expected only the published public quiz, got %+v", public)
	}

	mine, err := env.quizzes.ListMyQuizzes(creator)
	if err != nil {
		t.Fatalf("ListMyQuizzes failed: %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("expected 3 quizzes for the creator, got %d", len(mine))
	}
}

func TestDeleteQuizCascades(t *testing.T) {
	env := newTestEnv(t)
	creator := testPrincipal(1, "alice@example.com", "Alice")
	quiz := env.createQuiz(t, creator, dto.QuizCreateRequest{Title: "Doomed Quiz", Slug: "doomed-quiz"})
	env.addQuestion(t, quiz.Slug, creator, choiceQuestion("Q1", "a", "b"))

	if err := env.quizzes.DeleteQuiz(quiz.Slug, creator); err != nil {
		t.Fatalf("DeleteQuiz failed: %v", err)
	}
	if _, err := env.quizzes.GetQuizDetail(quiz.Slug); apperror.Status(err) != 404 {
		t.Errorf("expected 404 after delete, got %d", apperror.Status(err))
	}

	var questions int64
	env.db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questions)
	if questions != 0 {
		t.Errorf("expected questions to be deleted with the quiz, %d remain", questions)
	}
}
