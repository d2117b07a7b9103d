package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

// MentorService handles the mentor directory and profile management
type MentorService struct {
	mentorRepo *repositories.MentorRepository
	userRepo   *repositories.UserRepository
	logger     zerolog.Logger
}

// NewMentorService creates a new MentorService
func NewMentorService(
	mentorRepo *repositories.MentorRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *MentorService {
	return &MentorService{
		mentorRepo: mentorRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// ListDirectory retrieves approved mentors matching the filters
func (s *MentorService) ListDirectory(ctx context.Context, filter dto.MentorFilter) ([]dto.MentorSummary, int64, error) {
	mentors, total, err := s.mentorRepo.ListApproved(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]dto.MentorSummary, 0, len(mentors))
	for _, m := range mentors {
		summaries = append(summaries, dto.FromMentor(m))
	}

	return summaries, total, nil
}

// GetProfile retrieves a mentor's public profile with its user info,
// availability and reviews. Only approved mentors are visible to others;
// the owner and admins can always look.
func (s *MentorService) GetProfile(ctx context.Context, mentorID int64, viewer Actor) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	if mentor.VerificationStatus != models.VerificationApproved {
		isOwner := viewer.MentorID == mentor.ID
		if !isOwner && viewer.Role != models.RoleAdmin {
			return nil, apperrors.ErrMentorNotFound
		}
	}

	user, err := s.userRepo.GetByID(ctx, mentor.UserID)
	if err != nil {
		return nil, err
	}
	mentor.User = user

	slots, err := s.mentorRepo.GetAvailability(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	mentor.Availability = slots

	reviews, err := s.mentorRepo.GetReviews(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	mentor.Reviews = reviews

	return mentor, nil
}

// UpdateProfile applies partial updates to the mentor's own profile
func (s *MentorService) UpdateProfile(ctx context.Context, mentorID int64, req dto.UpdateMentorProfileRequest) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	if req.Headline != nil {
		mentor.Headline = *req.Headline
	}
	if req.Bio != nil {
		mentor.Bio = *req.Bio
	}
	if req.Company != nil {
		mentor.Company = *req.Company
	}
	if req.YearsExperience != nil {
		mentor.YearsExperience = *req.YearsExperience
	}
	if req.HourlyRate != nil {
		mentor.HourlyRate = *req.HourlyRate
	}
	if req.Expertise != nil {
		mentor.Expertise = req.Expertise
	}

	if err := s.mentorRepo.UpdateProfile(ctx, mentor); err != nil {
		return nil, err
	}

	return mentor, nil
}

// UpdateAvailability replaces the mentor's weekly schedule. Each slot must
// have its start strictly before its end.
func (s *MentorService) UpdateAvailability(ctx context.Context, mentorID int64, req dto.UpdateAvailabilityRequest) ([]models.AvailabilitySlot, error) {
	slots := make([]models.AvailabilitySlot, 0, len(req.Slots))
	for _, slot := range req.Slots {
		if slot.StartTime >= slot.EndTime {
			return nil, apperrors.NewBadRequestError(
				fmt.Sprintf("slot %s-%s on day %d ends before it starts", slot.StartTime, slot.EndTime, slot.DayOfWeek),
				apperrors.ErrValidationFailed)
		}
		slots = append(slots, models.AvailabilitySlot{
			MentorID:  mentorID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	if err := s.mentorRepo.ReplaceAvailability(ctx, mentorID, slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// GetReviews retrieves a mentor's reviews, newest first
func (s *MentorService) GetReviews(ctx context.Context, mentorID int64) ([]models.MentorReview, error) {
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		return nil, err
	}
	return s.mentorRepo.GetReviews(ctx, mentorID)
}
