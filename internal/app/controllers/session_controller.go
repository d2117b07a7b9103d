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

// SessionController handles session booking, life cycle and feedback
type SessionController struct {
	sessionService *services.SessionService
	logger         zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService, logger zerolog.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		logger:         logger,
	}
}

func (c *SessionController) actor(ctx *gin.Context) services.Actor {
	return services.Actor{
		Role:      models.RoleType(ctx.GetString(middleware.ContextRoleType)),
		StudentID: ctx.GetInt64(middleware.ContextStudentID),
		MentorID:  ctx.GetInt64(middleware.ContextMentorID),
	}
}

func sessionIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")))
		return 0, false
	}
	return id, true
}

// Book creates a new session with an approved mentor
// @Summary Book a session
// @Description Books a SCHEDULED session. The mentor must be approved and free at the requested start time.
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookSessionRequest true "Booking details"
// @Success 201 {object} dto.APIResponse "Booked session"
// @Failure 400 {object} dto.ErrorResponse "Mentor not approved or slot taken"
// @Router /sessions [post]
func (c *SessionController) Book(ctx *gin.Context) {
	studentID := ctx.GetInt64(middleware.ContextStudentID)

	var req dto.BookSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	session, err := c.sessionService.Book(ctx.Request.Context(), studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(session))
}

// Get returns one session for a participant
// @Summary Get session
// @Tags sessions
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse "Session"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	session, err := c.sessionService.Get(ctx.Request.Context(), sessionID, c.actor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// UpdateStatus moves a session along its life cycle
// @Summary Update session status
// @Description Applies a monotonic transition: CONFIRMED, IN_PROGRESS, COMPLETED or NO_SHOW
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse "Updated session"
// @Failure 400 {object} dto.ErrorResponse "Transition not allowed"
// @Router /sessions/{id}/status [put]
func (c *SessionController) UpdateStatus(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	session, err := c.sessionService.UpdateStatus(ctx.Request.Context(), sessionID, c.actor(ctx), models.SessionStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// Cancel cancels a non-terminal session
// @Summary Cancel session
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.CancelSessionRequest true "Cancellation reason"
// @Success 200 {object} dto.APIResponse "Cancelled session"
// @Failure 400 {object} dto.ErrorResponse "Session already ended"
// @Router /sessions/{id}/cancel [post]
func (c *SessionController) Cancel(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CancelSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	session, err := c.sessionService.Cancel(ctx.Request.Context(), sessionID, c.actor(ctx), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// StudentFeedback records the student's feedback on a completed session
// @Summary Submit student feedback
// @Description One-time feedback that also appends a mentor review and recomputes the mentor's rating
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.SessionFeedbackRequest true "Rating and comment"
// @Success 200 {object} dto.APIResponse "Session with feedback"
// @Failure 400 {object} dto.ErrorResponse "Session not completed or feedback already given"
// @Router /sessions/{id}/feedback/student [post]
func (c *SessionController) StudentFeedback(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var req dto.SessionFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	studentID := ctx.GetInt64(middleware.ContextStudentID)
	session, err := c.sessionService.SubmitStudentFeedback(ctx.Request.Context(), sessionID, studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// MentorFeedback records the mentor's feedback on a completed session
// @Summary Submit mentor feedback
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.SessionFeedbackRequest true "Rating and comment"
// @Success 200 {object} dto.APIResponse "Session with feedback"
// @Router /sessions/{id}/feedback/mentor [post]
func (c *SessionController) MentorFeedback(ctx *gin.Context) {
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	var req dto.SessionFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	mentorID := ctx.GetInt64(middleware.ContextMentorID)
	session, err := c.sessionService.SubmitMentorFeedback(ctx.Request.Context(), sessionID, mentorID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// ListMine returns the caller's sessions for either side
// @Summary List own sessions
// @Description Lists the caller's sessions. Students see their bookings, mentors their appointments.
// @Tags sessions
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param overdue query bool false "Only SCHEDULED sessions past their date"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Sessions"
// @Router /sessions [get]
func (c *SessionController) ListMine(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.SessionFilter{Page: page, PageSize: size}

	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}
	filter.Overdue = ctx.Query("overdue") == "true"

	actor := c.actor(ctx)

	var (
		sessions []*models.Session
		total    int64
		err      error
	)
	switch {
	case actor.StudentID != 0:
		sessions, total, err = c.sessionService.ListForStudent(ctx.Request.Context(), actor.StudentID, filter)
	case actor.MentorID != 0:
		sessions, total, err = c.sessionService.ListForMentor(ctx.Request.Context(), actor.MentorID, filter)
	default:
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "No student or mentor profile")))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      sessions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
