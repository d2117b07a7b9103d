package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/pkg/email"
)

// AdminService handles mentor moderation and user account administration
type AdminService struct {
	mentorRepo *repositories.MentorRepository
	userRepo   *repositories.UserRepository
	email      email.Service
	logger     zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	mentorRepo *repositories.MentorRepository,
	userRepo *repositories.UserRepository,
	emailService email.Service,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		mentorRepo: mentorRepo,
		userRepo:   userRepo,
		email:      emailService,
		logger:     logger,
	}
}

// ListPendingMentors retrieves mentors awaiting moderation with their user
// info attached
func (s *AdminService) ListPendingMentors(ctx context.Context) ([]*models.Mentor, error) {
	mentors, err := s.mentorRepo.ListByVerificationStatus(ctx, models.VerificationPending)
	if err != nil {
		return nil, err
	}

	for _, m := range mentors {
		user, err := s.userRepo.GetByID(ctx, m.UserID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("mentorId", m.ID).Msg("Failed to load mentor user")
			continue
		}
		m.User = user
	}

	return mentors, nil
}

// ReviewMentor applies the moderation decision and notifies the mentor
func (s *AdminService) ReviewMentor(ctx context.Context, mentorID int64, req dto.ReviewMentorRequest) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	status := models.VerificationStatus(req.Decision)
	if err := s.mentorRepo.SetVerificationStatus(ctx, mentorID, status); err != nil {
		return nil, err
	}
	mentor.VerificationStatus = status

	user, err := s.userRepo.GetByID(ctx, mentor.UserID)
	if err == nil {
		if status == models.VerificationApproved {
			if err := s.userRepo.SetVerified(ctx, user.ID); err != nil {
				s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to flag user verified")
			}
		}
		if err := s.email.SendMentorDecisionEmail(user.Email, user.FullName(), status == models.VerificationApproved); err != nil {
			s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to send mentor decision email")
		}
	}

	s.logger.Info().
		Int64("mentorId", mentorID).
		Str("decision", req.Decision).
		Msg("Mentor reviewed")

	return mentor, nil
}

// SetUserActive activates or deactivates a user account. Deactivated users
// cannot log in and their refresh tokens stop working at next use.
func (s *AdminService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", userID).Bool("active", active).Msg("User active state changed")

	return nil
}
