package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mentorlink/backend/internal/pkg/logger"
)

// Storage abstracts where uploaded file bytes live
type Storage interface {
	// Save stores an uploaded file and returns its path on disk and its
	// download URL
	Save(fileHeader *multipart.FileHeader) (storedPath, fileURL string, err error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(storedPath string) error

	// FullPath resolves a stored path to the absolute filesystem path
	FullPath(storedPath string) string
}

// LocalStorage keeps uploaded files on the local filesystem under a single
// base directory, renamed to a UUID to prevent collisions
type LocalStorage struct {
	basePath string // Root directory where files are stored
	baseURL  string // Prefix of the public download URL
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Save stores an uploaded file under a fresh UUID filename, keeping the
// original extension
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, string, error) {
	if fileHeader == nil {
		return "", "", fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", "", fmt.Errorf("failed to save file content: %w", err)
	}

	fileURL := strings.TrimRight(ls.baseURL, "/") + "/" + uniqueFilename

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", uniqueFilename).
		Msg("File saved successfully")

	return uniqueFilename, fileURL, nil
}

// Delete removes a stored file, treating a missing file as already deleted
func (ls *LocalStorage) Delete(storedPath string) error {
	if storedPath == "" {
		return nil
	}

	filename := filepath.Base(storedPath)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file path: %s", storedPath)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// FullPath resolves a stored path to its absolute location on disk
func (ls *LocalStorage) FullPath(storedPath string) string {
	filename := filepath.Base(storedPath)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}
