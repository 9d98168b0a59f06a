package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/model"
	"github.com/lamngoc/quizforge/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the full service stack over an in-memory database so tests
// exercise the same code paths as the running server.
type testEnv struct {
	db          *gorm.DB
	quizzes     QuizService
	questions   QuestionService
	invitations InvitationService
	submissions SubmissionService
	leaderboard LeaderboardService
	quizRepo    repository.QuizRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.QuestionOption{},
		&model.QuizInvitation{},
		&model.QuizSubmission{},
		&model.QuizAnswer{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	guard := NewAccessGuard(quizRepo)
	invitationSvc := NewInvitationService(invitationRepo, quizRepo, guard)

	return &testEnv{
		db:          db,
		quizzes:     NewQuizService(quizRepo, guard),
		questions:   NewQuestionService(questionRepo, guard),
		invitations: invitationSvc,
		submissions: NewSubmissionService(quizRepo, submissionRepo, invitationSvc, guard),
		leaderboard: NewLeaderboardService(leaderboardRepo, guard),
		quizRepo:    quizRepo,
	}
}

func testPrincipal(id uint, email, name string) *auth.Principal {
	return &auth.Principal{ID: id, Email: email, Name: name}
}

func (env *testEnv) createQuiz(t *testing.T, creator *auth.Principal, req dto.QuizCreateRequest) *dto.QuizResponse {
	t.Helper()
	resp, err := env.quizzes.CreateQuiz(creator, req)
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	return resp
}

func (env *testEnv) addQuestion(t *testing.T, ref string, creator *auth.Principal, req dto.QuestionCreateRequest) *dto.QuestionManageResponse {
	t.Helper()
	resp, err := env.questions.AddQuestion(ref, creator, req)
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	return resp
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
func intptr(i int) *int       { return &i }

// choiceQuestion builds a two-option multiple choice question with the given
// correct answer text.
func choiceQuestion(text, correct, wrong string) dto.QuestionCreateRequest {
	return dto.QuestionCreateRequest{
		Text: text,
		Type: model.QuestionTypeMultipleChoice,
		Options: []dto.OptionInput{
			{Text: correct, IsCorrect: true},
			{Text: wrong, IsCorrect: false},
		},
	}
}
