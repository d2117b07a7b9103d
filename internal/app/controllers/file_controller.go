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
)

// FileController handles file upload, download and listing
type FileController struct {
	fileService *services.FileService
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService, logger zerolog.Logger) *FileController {
	return &FileController{
		fileService: fileService,
		logger:      logger,
	}
}

func fileIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid file ID")))
		return 0, false
	}
	return id, true
}

// Upload stores an uploaded file and records its metadata
// @Summary Upload file
// @Tags files
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param isPublic formData bool false "Whether the file is publicly downloadable"
// @Success 201 {object} dto.APIResponse "File metadata"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /files [post]
func (c *FileController) Upload(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required")))
		return
	}

	isPublic := ctx.PostForm("isPublic") == "true"

	file, err := c.fileService.Upload(ctx.Request.Context(), userID, fileHeader, isPublic)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(file))
}

// Download streams a stored file to the caller
// @Summary Download file
// @Description Public files are open to any authenticated user, private ones only to their uploader
// @Tags files
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} dto.ErrorResponse "Private file of another user"
// @Router /files/{id}/download [get]
func (c *FileController) Download(ctx *gin.Context) {
	fileID, ok := fileIDParam(ctx)
	if !ok {
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	file, fullPath, err := c.fileService.Resolve(ctx.Request.Context(), fileID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=\""+file.FileName+"\"")
	ctx.Header("Content-Type", file.FileType)
	ctx.File(fullPath)
}

// ListMine returns the caller's uploaded files
// @Summary List own files
// @Tags files
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse "Files"
// @Router /files [get]
func (c *FileController) ListMine(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	files, err := c.fileService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(files))
}

// Delete removes a file and its stored content
// @Summary Delete file
// @Tags files
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} dto.APIResponse "Deletion confirmation"
// @Failure 403 {object} dto.ErrorResponse "Not the uploader"
// @Router /files/{id} [delete]
func (c *FileController) Delete(ctx *gin.Context) {
	fileID, ok := fileIDParam(ctx)
	if !ok {
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	role := models.RoleType(ctx.GetString(middleware.ContextRoleType))

	if err := c.fileService.Delete(ctx.Request.Context(), fileID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("File deleted successfully"))
}
