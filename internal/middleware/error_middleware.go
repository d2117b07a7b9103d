package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

// debugMode controls whether unhandled errors expose their raw message in
// the response's DebugInfo field. Off in production.
var debugMode bool

// SetDebugMode toggles raw error exposure on 500 responses
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// HandleAPIError maps domain errors to HTTP responses. Business precondition
// failures come back as 400, missing entities as 404, the duplicate email
// case as 409. Anything unrecognized is logged and answered with a generic
// 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrMentorNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrConversationNotFound),
		errors.Is(err, apperrors.ErrFileNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found")),
		})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled"),
		})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})

	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})

	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"),
		})

	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked"),
		})

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})

	case errors.Is(err, apperrors.ErrMentorNotApproved):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeMentorNotApproved, "Mentor is not approved for booking"),
		})

	case errors.Is(err, apperrors.ErrBookingConflict):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeBookingConflict, "You already have a session booked at that time"),
		})

	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrSessionAlreadyCancelled):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, messageOf(err, "Invalid session status transition")),
		})

	case errors.Is(err, apperrors.ErrSessionNotCompleted):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Feedback requires a completed session"),
		})

	case errors.Is(err, apperrors.ErrFeedbackAlreadyGiven),
		errors.Is(err, apperrors.ErrAlreadyReviewed):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeFeedbackAlreadyGiven, "Feedback was already submitted"),
		})

	case errors.Is(err, apperrors.ErrUnknownQuestion),
		errors.Is(err, apperrors.ErrUnknownOption):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Invalid quiz submission")),
		})

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed")),
		})

	case errors.Is(err, apperrors.ErrRateLimitExceeded):
		c.JSON(429, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests"),
		})

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		if debugMode {
			detail = detail.WithDebugInfo("%s", err.Error())
		}
		c.JSON(500, dto.APIResponse{
			Error: detail,
		})
	}
}

// messageOf unwraps a CustomError message when present, falling back to a
// fixed text so internals never leak
func messageOf(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
