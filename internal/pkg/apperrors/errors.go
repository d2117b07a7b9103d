package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Rate limiting
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Profile errors
var (
	ErrStudentNotFound = errors.New("student profile not found")
	ErrMentorNotFound  = errors.New("mentor profile not found")
)

// Session errors
var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrMentorNotApproved       = errors.New("mentor is not approved for booking")
	ErrBookingConflict         = errors.New("student already has a session booked at this time")
	ErrInvalidTransition       = errors.New("invalid session status transition")
	ErrSessionNotCompleted     = errors.New("session is not completed")
	ErrSessionAlreadyCancelled = errors.New("session is already cancelled")
	ErrFeedbackAlreadyGiven    = errors.New("feedback already submitted for this session")
)

// Review errors
var (
	ErrAlreadyReviewed = errors.New("resource already reviewed by this user")
)

// Quiz errors
var (
	ErrUnknownQuestion = errors.New("unknown quiz question")
	ErrUnknownOption   = errors.New("unknown quiz option")
)

// Chat errors
var (
	ErrConversationNotFound = errors.New("conversation not found")
)

// File errors
var (
	ErrFileNotFound = errors.New("file not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error wrapping err with a message.
// The sentinel keeps errors.Is checks working while the message reaches the
// client.
func NewBadRequestError(message string, err error) error {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
