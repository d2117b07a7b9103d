package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/services"
	"github.com/mentorlink/backend/internal/middleware"
)

// QuizController exposes the career discovery quiz
type QuizController struct {
	quizService *services.QuizService
	logger      zerolog.Logger
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService *services.QuizService, logger zerolog.Logger) *QuizController {
	return &QuizController{
		quizService: quizService,
		logger:      logger,
	}
}

// Questions returns the quiz questions without scoring weights
// @Summary Get quiz questions
// @Tags quiz
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.QuizQuestionResponse} "Questions"
// @Router /quiz/questions [get]
func (c *QuizController) Questions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.quizService.Questions()))
}

// Submit scores the quiz answers and stores the result
// @Summary Submit quiz answers
// @Description Scores all answers and returns ranked career recommendations
// @Tags quiz
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.APIResponse{data=dto.QuizResultResponse} "Result"
// @Failure 400 {object} dto.ErrorResponse "Unknown question or option"
// @Router /quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	studentID := ctx.GetInt64(middleware.ContextStudentID)

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.quizService.Submit(ctx.Request.Context(), studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
