package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/rs/zerolog/log"
)

// StartSubmissionHandler godoc
// @Summary Start a quiz attempt
// @Description Create an in_progress submission. A pending invitation for the caller's email is auto-accepted. Private quizzes reject takers without an invitation.
// @Tags submissions
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Private quiz without an invitation"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/submissions [post]
func (ctrl *Controller) StartSubmissionHandler(c *gin.Context) {
	resp, err := ctrl.submissionSvc.Start(c.Param("ref"), auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SubmitAnswersHandler godoc
// @Summary Submit answers for grading
// @Description Grade the taker's answers against the quiz's answer key and finalize the submission.
// @Tags submissions
// @Accept json
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param submission_id path int true "Submission ID"
// @Param answers body dto.SubmitAnswersRequest true "Answers keyed by question id"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body or submission already finalized"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the submission's taker"
// @Failure 404 {object} dto.ErrorResponse "Quiz or submission not found"
// @Router /quizzes/{ref}/submissions/{submission_id}/answers [post]
func (ctrl *Controller) SubmitAnswersHandler(c *gin.Context) {
	submissionID, ok := parseUintParam(c, "submission_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAnswersRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.submissionSvc.SubmitAnswers(c.Param("ref"), submissionID, auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListQuizSubmissionsHandler godoc
// @Summary List a quiz's submissions
// @Description Creator-only list of submissions with unredacted taker emails.
// @Tags submissions
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/submissions [get]
func (ctrl *Controller) ListQuizSubmissionsHandler(c *gin.Context) {
	resp, err := ctrl.submissionSvc.ListForQuiz(c.Param("ref"), auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSubmissionHandler godoc
// @Summary Get a submission
// @Description Retrieve a submission with its answers. Allowed for the taker and the quiz creator.
// @Tags submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the taker or quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id} [get]
func (ctrl *Controller) GetSubmissionHandler(c *gin.Context) {
	submissionID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.submissionSvc.Get(submissionID, auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetLeaderboardHandler godoc
// @Summary Get a quiz's public leaderboard
// @Description Ranked, email-redacted leaderboard for a public published quiz. Private quizzes return 403 for everyone.
// @Tags leaderboard
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param limit query int false "Maximum entries to return (default and cap 100)"
// @Success 200 {array} dto.LeaderboardEntryResponse
// @Failure 403 {object} dto.ErrorResponse "Leaderboard is not public"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/leaderboard [get]
func (ctrl *Controller) GetLeaderboardHandler(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "0")
	limit, _ := strconv.Atoi(limitStr)

	resp, err := ctrl.leaderboardSvc.PublicLeaderboard(c.Param("ref"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
