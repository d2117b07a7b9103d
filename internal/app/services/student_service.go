package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
)

// StudentService handles student profile management
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetProfile retrieves a student profile with its user info
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, student.UserID)
	if err != nil {
		return nil, err
	}
	student.User = user

	return student, nil
}

// UpdateProfile applies partial updates to the student's own profile
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, userReq dto.UpdateProfileRequest, req dto.UpdateStudentProfileRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.School != nil {
		student.School = *req.School
	}
	if req.GradeLevel != nil {
		student.GradeLevel = *req.GradeLevel
	}
	if req.Bio != nil {
		student.Bio = *req.Bio
	}
	if req.Interests != nil {
		student.Interests = req.Interests
	}

	if err := s.studentRepo.UpdateProfile(ctx, student); err != nil {
		return nil, err
	}

	if userReq.FirstName != nil || userReq.LastName != nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if userReq.FirstName != nil {
			user.FirstName = *userReq.FirstName
		}
		if userReq.LastName != nil {
			user.LastName = *userReq.LastName
		}
		if err := s.userRepo.UpdateProfile(ctx, userID, user.FirstName, user.LastName); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}
