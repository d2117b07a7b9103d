package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/services"
	"github.com/mentorlink/backend/internal/middleware"
)

// StudentController handles student profile operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetMe returns the caller's student profile
// @Summary Get own student profile
// @Tags students
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Student profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /students/me [get]
func (c *StudentController) GetMe(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	student, err := c.studentService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdateMe applies partial updates to the caller's student profile
// @Summary Update own student profile
// @Tags students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse "Updated profile"
// @Router /students/me [put]
func (c *StudentController) UpdateMe(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	var req struct {
		dto.UpdateProfileRequest
		dto.UpdateStudentProfileRequest
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), userID, req.UpdateProfileRequest, req.UpdateStudentProfileRequest)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}
