package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextRoleType  = "roleType"
	ContextStudentID = "studentID"
	ContextMentorID  = "mentorID"
)

// AuthMiddleware handles authentication and role/profile authorization
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	studentRepo *repositories.StudentRepository
	mentorRepo  *repositories.MentorRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(
	jwtService *auth.JWTService,
	studentRepo *repositories.StudentRepository,
	mentorRepo *repositories.MentorRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		studentRepo: studentRepo,
		mentorRepo:  mentorRepo,
	}
}

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").
				WithDetails(details).
				WithSeverity(dto.ErrorSeverityError)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)

		c.Next()
	}
}

// RoleRequired allows only callers holding one of the given roles
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, ok := role.(string)
		if ok {
			for _, allowed := range roles {
				if roleStr == string(allowed) {
					c.Next()
					return
				}
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation").
			WithSeverity(dto.ErrorSeverityError)
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// StudentProfile resolves the caller's student profile and stores its ID in
// the context. Must run after JWTAuth.
func (m *AuthMiddleware) StudentProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)
		student, err := m.studentRepo.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Student profile required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextStudentID, student.ID)
		c.Next()
	}
}

// ResolveProfiles stores whichever profile IDs the caller has without
// requiring either. Used on routes shared by students and mentors where the
// service layer decides who may act. Must run after JWTAuth.
func (m *AuthMiddleware) ResolveProfiles() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)

		if student, err := m.studentRepo.GetByUserID(c.Request.Context(), userID); err == nil {
			c.Set(ContextStudentID, student.ID)
		}
		if mentor, err := m.mentorRepo.GetByUserID(c.Request.Context(), userID); err == nil {
			c.Set(ContextMentorID, mentor.ID)
		}

		c.Next()
	}
}

// MentorProfile resolves the caller's mentor profile and stores its ID in
// the context. Must run after JWTAuth.
func (m *AuthMiddleware) MentorProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)
		mentor, err := m.mentorRepo.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Mentor profile required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextMentorID, mentor.ID)
		c.Next()
	}
}
