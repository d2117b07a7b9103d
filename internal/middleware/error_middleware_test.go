package middleware

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", apperrors.ErrUserNotFound, 404},
		{"mentor not found", apperrors.ErrMentorNotFound, 404},
		{"session not found", apperrors.ErrSessionNotFound, 404},
		{"file not found", apperrors.ErrFileNotFound, 404},
		{"permission denied", apperrors.ErrPermissionDenied, 403},
		{"account disabled", apperrors.ErrAccountDisabled, 403},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401},
		{"token expired", apperrors.ErrTokenExpired, 401},
		{"token revoked", apperrors.ErrTokenRevoked, 401},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, 409},
		{"mentor not approved", apperrors.ErrMentorNotApproved, 400},
		{"booking conflict", apperrors.ErrBookingConflict, 400},
		{"invalid transition", apperrors.ErrInvalidTransition, 400},
		{"already cancelled", apperrors.ErrSessionAlreadyCancelled, 400},
		{"session not completed", apperrors.ErrSessionNotCompleted, 400},
		{"feedback already given", apperrors.ErrFeedbackAlreadyGiven, 400},
		{"already reviewed", apperrors.ErrAlreadyReviewed, 400},
		{"unknown quiz question", apperrors.ErrUnknownQuestion, 400},
		{"validation failed", apperrors.ErrValidationFailed, 400},
		{"rate limited", apperrors.ErrRateLimitExceeded, 429},
		{"unexpected error", errors.New("disk on fire"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, tc.err)

			if recorder.Code != tc.want {
				t.Errorf("HandleAPIError(%v) status = %d, want %d", tc.err, recorder.Code, tc.want)
			}
		})
	}
}

func TestHandleAPIErrorUsesWrappedMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	wrapped := apperrors.NewBadRequestError("cannot move session from COMPLETED to CONFIRMED", apperrors.ErrInvalidTransition)
	HandleAPIError(c, wrapped)

	if recorder.Code != 400 {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "cannot move session from COMPLETED to CONFIRMED") {
		t.Errorf("body %q does not carry the wrapped message", body)
	}
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetDebugMode(false)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleAPIError(c, errors.New("pq: connection refused on 10.0.0.5"))

	if recorder.Code != 500 {
		t.Fatalf("status = %d, want 500", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "10.0.0.5") {
		t.Error("internal error detail leaked into the response body")
	}
}

func TestHandleAPIErrorExposesDebugInfoInDebugMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetDebugMode(true)
	defer SetDebugMode(false)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleAPIError(c, errors.New("pq: connection refused on 10.0.0.5"))

	if recorder.Code != 500 {
		t.Fatalf("status = %d, want 500", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "10.0.0.5") {
		t.Error("debug mode response is missing the underlying error text")
	}
}
