package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/filestorage"
)

// maxUploadSize caps uploads at 10MB
const maxUploadSize = 10 << 20

// FileService handles uploads, downloads and file ownership
type FileService struct {
	fileRepo *repositories.FileRepository
	storage  filestorage.Storage
	logger   zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(fileRepo *repositories.FileRepository, storage filestorage.Storage, logger zerolog.Logger) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// Upload stores the file bytes on disk and records its metadata
func (s *FileService) Upload(ctx context.Context, userID int64, fileHeader *multipart.FileHeader, isPublic bool) (*models.File, error) {
	if fileHeader.Size > maxUploadSize {
		return nil, apperrors.NewBadRequestError("file exceeds the 10MB upload limit", apperrors.ErrValidationFailed)
	}

	storedPath, fileURL, err := s.storage.Save(fileHeader)
	if err != nil {
		return nil, err
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	file := &models.File{
		FileName:   fileHeader.Filename,
		StoredPath: storedPath,
		FileURL:    fileURL,
		FileSize:   fileHeader.Size,
		FileType:   fileType,
		IsPublic:   isPublic,
		UploadedBy: userID,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Do not leave orphaned bytes behind
		_ = s.storage.Delete(storedPath)
		return nil, err
	}

	s.logger.Info().
		Int64("fileId", file.ID).
		Int64("userId", userID).
		Int64("size", file.FileSize).
		Msg("File uploaded")

	return file, nil
}

// Resolve returns the file metadata and its on-disk path, enforcing the
// ownership check for private files
func (s *FileService) Resolve(ctx context.Context, fileID, userID int64) (*models.File, string, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, "", err
	}

	if !file.IsPublic && file.UploadedBy != userID {
		return nil, "", apperrors.ErrPermissionDenied
	}

	return file, s.storage.FullPath(file.StoredPath), nil
}

// ListMine retrieves the user's uploads
func (s *FileService) ListMine(ctx context.Context, userID int64) ([]*models.File, error) {
	return s.fileRepo.ListForUser(ctx, userID)
}

// Delete removes a file's metadata and bytes. Only the uploader or an admin
// may delete.
func (s *FileService) Delete(ctx context.Context, fileID, userID int64, role models.RoleType) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if file.UploadedBy != userID && role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return err
	}

	if err := s.storage.Delete(file.StoredPath); err != nil {
		s.logger.Warn().Err(err).Int64("fileId", fileID).Msg("Failed to delete file bytes")
	}

	return nil
}
