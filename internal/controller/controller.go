package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lamngoc/quizforge/internal/apperror"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/lamngoc/quizforge/internal/service"
)

type Controller struct {
	quizSvc        service.QuizService
	questionSvc    service.QuestionService
	invitationSvc  service.InvitationService
	submissionSvc  service.SubmissionService
	leaderboardSvc service.LeaderboardService
	jwtSvc         *auth.JWTService
}

func NewController(
	quizSvc service.QuizService,
	questionSvc service.QuestionService,
	invitationSvc service.InvitationService,
	submissionSvc service.SubmissionService,
	leaderboardSvc service.LeaderboardService,
	jwtSvc *auth.JWTService,
) *Controller {
	return &Controller{
		quizSvc:        quizSvc,
		questionSvc:    questionSvc,
		invitationSvc:  invitationSvc,
		submissionSvc:  submissionSvc,
		leaderboardSvc: leaderboardSvc,
		jwtSvc:         jwtSvc,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.Use(auth.Middleware(ctrl.jwtSvc))

	apiV1 := router.Group("/api/v1")
	{
		quizzes := apiV1.Group("/quizzes")
		quizzes.POST("", ctrl.CreateQuizHandler)
		quizzes.GET("", ctrl.ListPublicQuizzesHandler)
		quizzes.GET("/mine", ctrl.ListMyQuizzesHandler)
		quizzes.GET("/:ref", ctrl.GetQuizHandler)
		quizzes.GET("/:ref/manage", ctrl.GetQuizManageHandler)
		quizzes.PUT("/:ref", ctrl.UpdateQuizHandler)
		quizzes.DELETE("/:ref", ctrl.DeleteQuizHandler)

		// Question routes nest under the owning quiz; the reorder route sits
		// beside the :question_id param route.
		quizzes.POST("/:ref/questions", ctrl.AddQuestionHandler)
		quizzes.PUT("/:ref/questions/reorder", ctrl.ReorderQuestionsHandler)
		quizzes.PUT("/:ref/questions/:question_id", ctrl.UpdateQuestionHandler)
		quizzes.DELETE("/:ref/questions/:question_id", ctrl.DeleteQuestionHandler)

		quizzes.GET("/:ref/invitations", ctrl.ListQuizInvitationsHandler)
		quizzes.POST("/:ref/submissions", ctrl.StartSubmissionHandler)
		quizzes.POST("/:ref/submissions/:submission_id/answers", ctrl.SubmitAnswersHandler)
		quizzes.GET("/:ref/submissions", ctrl.ListQuizSubmissionsHandler)
		quizzes.GET("/:ref/leaderboard", ctrl.GetLeaderboardHandler)

		invitations := apiV1.Group("/invitations")
		invitations.POST("", ctrl.CreateInvitationHandler)
		invitations.GET("", ctrl.ListMyInvitationsHandler)
		invitations.PUT("/:id/respond", ctrl.RespondInvitationHandler)
		invitations.DELETE("/:id", ctrl.DeleteInvitationHandler)

		submissions := apiV1.Group("/submissions")
		submissions.GET("/:id", ctrl.GetSubmissionHandler)
	}
}

// respondError maps service errors onto the HTTP surface. AppError carries its
// own status; anything else is a 500.
func respondError(c *gin.Context, err error) {
	c.JSON(apperror.Status(err), dto.ErrorResponse{Error: apperror.Message(err)})
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(v), true
}
