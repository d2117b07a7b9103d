package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/services"
	"github.com/mentorlink/backend/internal/middleware"
)

// AdminController handles mentor moderation and account management
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// PendingMentors lists mentors awaiting verification
// @Summary List pending mentors
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse "Pending mentors"
// @Router /admin/mentors/pending [get]
func (c *AdminController) PendingMentors(ctx *gin.Context) {
	mentors, err := c.adminService.ListPendingMentors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mentors))
}

// ReviewMentor approves or rejects a pending mentor
// @Summary Review mentor
// @Description Applies the moderation decision and notifies the mentor by email
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Mentor ID"
// @Param request body dto.ReviewMentorRequest true "Decision"
// @Success 200 {object} dto.APIResponse "Updated mentor"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /admin/mentors/{id}/review [post]
func (c *AdminController) ReviewMentor(ctx *gin.Context) {
	mentorID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mentor ID")))
		return
	}

	var req dto.ReviewMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	mentor, err := c.adminService.ReviewMentor(ctx.Request.Context(), mentorID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("mentor_id", mentorID).
		Str("decision", req.Decision).
		Msg("Mentor reviewed")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mentor))
}

// SetUserActive enables or disables a user account
// @Summary Set user active state
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.SetUserActiveRequest true "Active flag"
// @Success 200 {object} dto.APIResponse "Confirmation"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/active [put]
func (c *AdminController) SetUserActive(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")))
		return
	}

	var req dto.SetUserActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.adminService.SetUserActive(ctx.Request.Context(), userID, req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("user_id", userID).
		Bool("active", req.IsActive).
		Msg("User active state changed")

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User updated successfully"))
}
