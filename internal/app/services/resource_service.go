package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

// ResourceService handles shared resources and their reviews
type ResourceService struct {
	resourceRepo *repositories.ResourceRepository
	logger       zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo *repositories.ResourceRepository, logger zerolog.Logger) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// Create publishes a resource. Mentors and admins only, enforced by routing.
func (s *ResourceService) Create(ctx context.Context, userID int64, req dto.CreateResourceRequest) (*models.Resource, error) {
	resource := &models.Resource{
		Title:        req.Title,
		Description:  req.Description,
		ResourceType: models.ResourceType(req.ResourceType),
		URL:          req.URL,
		Eligibility:  req.Eligibility,
		Tags:         req.Tags,
		CreatedBy:    userID,
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("resourceId", resource.ID).Str("type", string(resource.ResourceType)).Msg("Resource created")

	return resource, nil
}

// Get retrieves a resource with its reviews
func (s *ResourceService) Get(ctx context.Context, id int64) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.resourceRepo.GetReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.Reviews = reviews

	return resource, nil
}

// List retrieves resources matching the filters
func (s *ResourceService) List(ctx context.Context, filter dto.ResourceFilter) ([]*models.Resource, int64, error) {
	return s.resourceRepo.List(ctx, filter)
}

// Update mutates a resource. Only the creator or an admin may edit.
func (s *ResourceService) Update(ctx context.Context, id, userID int64, role models.RoleType, req dto.UpdateResourceRequest) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if resource.CreatedBy != userID && role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		resource.Title = *req.Title
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if req.URL != nil {
		resource.URL = *req.URL
	}
	if req.Eligibility != nil {
		resource.Eligibility = *req.Eligibility
	}
	if req.Tags != nil {
		resource.Tags = req.Tags
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}

	return resource, nil
}

// Delete removes a resource. Only the creator or an admin may delete.
func (s *ResourceService) Delete(ctx context.Context, id, userID int64, role models.RoleType) error {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if resource.CreatedBy != userID && role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.resourceRepo.Delete(ctx, id)
}

// Review appends a one-per-user review and recomputes the resource's rounded
// average rating
func (s *ResourceService) Review(ctx context.Context, resourceID, userID int64, req dto.ResourceReviewRequest) (*models.Resource, error) {
	if _, err := s.resourceRepo.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	review := &models.ResourceReview{
		ResourceID: resourceID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.resourceRepo.AddReviewAndRecompute(ctx, review); err != nil {
		return nil, err
	}

	return s.Get(ctx, resourceID)
}
