package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/db"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/auth"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	pool        *pgxpool.Pool
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	mentorRepo  *repositories.MentorRepository
	tokenRepo   *repositories.TokenRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	pool *pgxpool.Pool,
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	mentorRepo *repositories.MentorRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		pool:        pool,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		mentorRepo:  mentorRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// RegisterStudent creates a user account plus student profile in one
// transaction and signs the new user in
func (s *AuthService) RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.userRepo.Create(ctx, tx, user)
		if err != nil {
			return err
		}

		student := &models.Student{
			UserID:     userID,
			School:     req.School,
			GradeLevel: req.GradeLevel,
			Interests:  req.Interests,
		}
		return s.studentRepo.Create(ctx, tx, student)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("Student registered")

	return s.issueTokens(ctx, user)
}

// RegisterMentor creates a user account plus mentor profile in one
// transaction. The mentor profile starts PENDING and stays out of the
// directory until an admin approves it.
func (s *AuthService) RegisterMentor(ctx context.Context, req dto.RegisterMentorRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleMentor,
		IsActive:  true,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.userRepo.Create(ctx, tx, user)
		if err != nil {
			return err
		}

		mentor := &models.Mentor{
			UserID:             userID,
			Headline:           req.Headline,
			Bio:                req.Bio,
			Company:            req.Company,
			YearsExperience:    req.YearsExperience,
			HourlyRate:         req.HourlyRate,
			Expertise:          req.Expertise,
			VerificationStatus: models.VerificationPending,
		}
		return s.mentorRepo.Create(ctx, tx, mentor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("Mentor registered, pending verification")

	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair,
// revoking the old one (rotation)
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes all refresh tokens of the user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserID:   user.ID,
		Email:    user.Email,
		RoleType: string(user.RoleType),
		Token: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresIn:        expiresIn,
			RefreshExpiresIn: refreshExpiresIn,
			TokenType:        "Bearer",
		},
	}, nil
}
