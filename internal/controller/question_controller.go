package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/rs/zerolog/log"
)

// AddQuestionHandler godoc
// @Summary Add a question to a quiz
// @Description Append a question with its options to the quiz. Order is assigned automatically.
// @Tags questions
// @Accept json
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param question body dto.QuestionCreateRequest true "Question data with options"
// @Success 201 {object} dto.QuestionManageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/questions [post]
func (ctrl *Controller) AddQuestionHandler(c *gin.Context) {
	var req dto.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuestionCreateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.questionSvc.AddQuestion(c.Param("ref"), auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateQuestionHandler godoc
// @Summary Update a question
// @Description Update question fields and reconcile its option set by id.
// @Tags questions
// @Accept json
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionUpdateRequest true "Fields to update, optionally with the full option list"
// @Success 200 {object} dto.QuestionManageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz or question not found"
// @Router /quizzes/{ref}/questions/{question_id} [put]
func (ctrl *Controller) UpdateQuestionHandler(c *gin.Context) {
	questionID, ok := parseUintParam(c, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuestionUpdateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.questionSvc.UpdateQuestion(c.Param("ref"), questionID, auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestionHandler godoc
// @Summary Delete a question
// @Description Delete a question and its options, refreshing the quiz question counter.
// @Tags questions
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz or question not found"
// @Router /quizzes/{ref}/questions/{question_id} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	questionID, ok := parseUintParam(c, "question_id")
	if !ok {
		return
	}
	if err := ctrl.questionSvc.DeleteQuestion(c.Param("ref"), questionID, auth.CurrentPrincipal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ReorderQuestionsHandler godoc
// @Summary Reorder questions
// @Description Apply new 1-based order values to the quiz's questions. Unknown question ids are ignored.
// @Tags questions
// @Accept json
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Param orders body dto.ReorderQuestionsRequest true "New question order"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/questions/reorder [put]
func (ctrl *Controller) ReorderQuestionsHandler(c *gin.Context) {
	var req dto.ReorderQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ReorderQuestionsRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := ctrl.questionSvc.ReorderQuestions(c.Param("ref"), auth.CurrentPrincipal(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
