package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamngoc/quizforge/internal/auth"
	"github.com/lamngoc/quizforge/internal/dto"
	"github.com/rs/zerolog/log"
)

// CreateInvitationHandler godoc
// @Summary Invite an email to a quiz
// @Description Create a pending invitation. Re-inviting an address that already has a pending invitation returns the existing one.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body dto.InvitationCreateRequest true "Quiz id and invitee email"
// @Success 201 {object} dto.InvitationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /invitations [post]
func (ctrl *Controller) CreateInvitationHandler(c *gin.Context) {
	var req dto.InvitationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind InvitationCreateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.invitationSvc.Invite(auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListQuizInvitationsHandler godoc
// @Summary List a quiz's invitations
// @Description Creator-only list of every invitation for the quiz, newest first.
// @Tags invitations
// @Produce json
// @Param ref path string true "Quiz slug or numeric ID"
// @Success 200 {array} dto.InvitationResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{ref}/invitations [get]
func (ctrl *Controller) ListQuizInvitationsHandler(c *gin.Context) {
	resp, err := ctrl.invitationSvc.ListForQuiz(c.Param("ref"), auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMyInvitationsHandler godoc
// @Summary List the caller's invitations
// @Description Invitations addressed to the authenticated user's email, newest first.
// @Tags invitations
// @Produce json
// @Success 200 {array} dto.InvitationResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations [get]
func (ctrl *Controller) ListMyInvitationsHandler(c *gin.Context) {
	resp, err := ctrl.invitationSvc.ListForUser(auth.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RespondInvitationHandler godoc
// @Summary Accept or decline an invitation
// @Description Transition a pending invitation to accepted or declined. Already-responded invitations are rejected.
// @Tags invitations
// @Accept json
// @Produce json
// @Param id path int true "Invitation ID"
// @Param response body dto.InvitationRespondRequest true "New status: accepted or declined"
// @Success 200 {object} dto.InvitationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status or invitation already responded"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Router /invitations/{id}/respond [put]
func (ctrl *Controller) RespondInvitationHandler(c *gin.Context) {
	invitationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req dto.InvitationRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind InvitationRespondRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.invitationSvc.Respond(auth.CurrentPrincipal(c), invitationID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteInvitationHandler godoc
// @Summary Revoke an invitation
// @Description Delete an invitation. Allowed for the inviter and the quiz creator.
// @Tags invitations
// @Produce json
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the inviter or quiz creator"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Router /invitations/{id} [delete]
func (ctrl *Controller) DeleteInvitationHandler(c *gin.Context) {
	invitationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.invitationSvc.Delete(auth.CurrentPrincipal(c), invitationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
