package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/rs/zerolog/log"
)

// CreateQuizHandler godoc
// @Summary Create a new quiz
// @Description Create a quiz owned by the authenticated user. Defaults to private and unpublished.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateRequest true "Quiz data"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [post]
func (ctrl *Controller) CreateQuizHandler(c *gin.Context) {
	var req dto.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuizCreateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.quizSvc.CreateQuiz(auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPublicQuizzesHandler godoc
// @Summary List public quizzes
// @Description Retrieve all published public quizzes. No authentication required.
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (ctrl *Controller) ListPublicQuizzesHandler(c *gin.Context) {
	resp, err := ctrl.quizSvc.ListPublicQuizzes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMyQuizzesHandler godoc
// @Summary List the caller's quizzes
// @Description Retrieve every quiz created by the authenticated user, regardless of visibility.
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/mine [get]
func (ctrl *Controller) ListMyQuizzesHandler(c *gin.Context) {
	resp, err := ctrl.quizSvc.ListMyQuizzes(auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuizHandler godoc
// @Summary Get a quiz by slug or id
// @Description Public quiz detail with ordered questions. Option correctness is never included.
// @Tags quizzes
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{ref} [get]
func (ctrl *Controller) GetQuizHandler(c *gin.Context) {
	resp, err := ctrl.quizSvc.GetQuizDetail(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuizManageHandler godoc
// @Summary Get a quiz for management
// @Description Creator-only quiz detail including option correctness flags.
// @Tags quizzes
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Success 200 {object} dto.QuizManageDetailResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/manage [get]
func (ctrl *Controller) GetQuizManageHandler(c *gin.Context) {
	resp, err := ctrl.quizSvc.GetQuizManageDetail(c.Param("ref"), auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateQuizHandler godoc
// @Summary Update quiz metadata
// @Description Partial update of quiz fields. Only fields present in the body are changed.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param quiz body dto.QuizUpdateRequest true "Fields to update"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref} [put]
func (ctrl *Controller) UpdateQuizHandler(c *gin.Context) {
	var req dto.QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuizUpdateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.quizSvc.UpdateQuiz(c.Param("ref"), auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuizHandler godoc
// @Summary Delete a quiz
// @Description Delete a quiz together with its questions, options, invitations and submissions.
// @Tags quizzes
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref} [delete]
func (ctrl *Controller) DeleteQuizHandler(c *gin.Context) {
	if err := ctrl.quizSvc.DeleteQuiz(c.Param("ref"), auth.CurrentPrincipal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
