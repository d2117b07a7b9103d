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

// ResourceController handles scholarships, guides and articles
type ResourceController struct {
	resourceService *services.ResourceService
	logger          zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService *services.ResourceService, logger zerolog.Logger) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		logger:          logger,
	}
}

func resourceIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource ID")))
		return 0, false
	}
	return id, true
}

// Create publishes a new resource
// @Summary Create resource
// @Tags resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateResourceRequest true "Resource details"
// @Success 201 {object} dto.APIResponse "Created resource"
// @Router /resources [post]
func (c *ResourceController) Create(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resource, err := c.resourceService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resource))
}

// Get returns one resource with its reviews
// @Summary Get resource
// @Tags resources
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse "Resource"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	resourceID, ok := resourceIDParam(ctx)
	if !ok {
		return
	}

	resource, err := c.resourceService.Get(ctx.Request.Context(), resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resource))
}

// List returns resources matching the query filters
// @Summary List resources
// @Tags resources
// @Security BearerAuth
// @Param type query string false "Resource type filter"
// @Param tag query string false "Tag filter"
// @Param search query string false "Title or description search"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Resources"
// @Router /resources [get]
func (c *ResourceController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.ResourceFilter{Page: page, PageSize: size}

	if v := ctx.Query("type"); v != "" {
		filter.ResourceType = &v
	}
	if v := ctx.Query("tag"); v != "" {
		filter.Tag = &v
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	resources, total, err := c.resourceService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      resources,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Update mutates a resource owned by the caller
// @Summary Update resource
// @Tags resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse "Updated resource"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /resources/{id} [put]
func (c *ResourceController) Update(ctx *gin.Context) {
	resourceID, ok := resourceIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	role := models.RoleType(ctx.GetString(middleware.ContextRoleType))

	resource, err := c.resourceService.Update(ctx.Request.Context(), resourceID, userID, role, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resource))
}

// Delete removes a resource owned by the caller
// @Summary Delete resource
// @Tags resources
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse "Deletion confirmation"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	resourceID, ok := resourceIDParam(ctx)
	if !ok {
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	role := models.RoleType(ctx.GetString(middleware.ContextRoleType))

	if err := c.resourceService.Delete(ctx.Request.Context(), resourceID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Resource deleted successfully"))
}

// Review adds a one-per-user rating to a resource
// @Summary Review resource
// @Description Records a rating and recomputes the resource average. One review per user.
// @Tags resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Resource ID"
// @Param request body dto.ResourceReviewRequest true "Rating and comment"
// @Success 200 {object} dto.APIResponse "Resource with updated rating"
// @Failure 400 {object} dto.ErrorResponse "Already reviewed"
// @Router /resources/{id}/reviews [post]
func (c *ResourceController) Review(ctx *gin.Context) {
	resourceID, ok := resourceIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ResourceReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	resource, err := c.resourceService.Review(ctx.Request.Context(), resourceID, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resource))
}
