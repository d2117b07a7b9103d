package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/services"
	"github.com/mentorlink/backend/internal/middleware"
	"github.com/mentorlink/backend/internal/pkg/helpers"
)

// MentorController handles the mentor directory and profile operations
type MentorController struct {
	mentorService *services.MentorService
	logger        zerolog.Logger
}

// NewMentorController creates a new MentorController
func NewMentorController(mentorService *services.MentorService, logger zerolog.Logger) *MentorController {
	return &MentorController{
		mentorService: mentorService,
		logger:        logger,
	}
}

// List returns the approved mentor directory
// @Summary List approved mentors
// @Description Lists approved mentors with expertise, search, rating and rate filters
// @Tags mentors
// @Security BearerAuth
// @Param expertise query string false "Expertise tag"
// @Param search query string false "Name or headline search"
// @Param minRating query number false "Minimum average rating"
// @Param maxRate query number false "Maximum hourly rate"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Mentor directory"
// @Router /mentors [get]
func (c *MentorController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.MentorFilter{Page: page, PageSize: size}

	if v := ctx.Query("expertise"); v != "" {
		filter.Expertise = &v
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := ctx.Query("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = &f
		}
	}
	if v := ctx.Query("maxRate"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxRate = &f
		}
	}

	mentors, total, err := c.mentorService.ListDirectory(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      mentors,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Get returns a mentor's public profile
// @Summary Get mentor profile
// @Tags mentors
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Success 200 {object} dto.APIResponse "Mentor profile with availability and reviews"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentors/{id} [get]
func (c *MentorController) Get(ctx *gin.Context) {
	mentorID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mentor ID")))
		return
	}

	viewer := services.Actor{
		Role:     models.RoleType(ctx.GetString(middleware.ContextRoleType)),
		MentorID: ctx.GetInt64(middleware.ContextMentorID),
	}

	mentor, err := c.mentorService.GetProfile(ctx.Request.Context(), mentorID, viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mentor))
}

// UpdateMe applies partial updates to the caller's mentor profile
// @Summary Update own mentor profile
// @Tags mentors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse "Updated profile"
// @Router /mentors/me [put]
func (c *MentorController) UpdateMe(ctx *gin.Context) {
	mentorID := ctx.GetInt64(middleware.ContextMentorID)

	var req dto.UpdateMentorProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	mentor, err := c.mentorService.UpdateProfile(ctx.Request.Context(), mentorID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mentor))
}

// UpdateAvailability replaces the caller's weekly availability
// @Summary Replace own availability schedule
// @Tags mentors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse "New schedule"
// @Router /mentors/me/availability [put]
func (c *MentorController) UpdateAvailability(ctx *gin.Context) {
	mentorID := ctx.GetInt64(middleware.ContextMentorID)

	var req dto.UpdateAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	slots, err := c.mentorService.UpdateAvailability(ctx.Request.Context(), mentorID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(slots))
}

// GetReviews returns a mentor's reviews
// @Summary List mentor reviews
// @Tags mentors
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Success 200 {object} dto.APIResponse "Reviews, newest first"
// @Router /mentors/{id}/reviews [get]
func (c *MentorController) GetReviews(ctx *gin.Context) {
	mentorID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mentor ID")))
		return
	}

	reviews, err := c.mentorService.GetReviews(ctx.Request.Context(), mentorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(reviews))
}
