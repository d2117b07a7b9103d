package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

// FileRepository handles database operations for uploaded file metadata
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts file metadata after the bytes land on disk
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (file_name, stored_path, file_url, file_size, file_type, is_public, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		file.FileName, file.StoredPath, file.FileURL, file.FileSize,
		file.FileType, file.IsPublic, file.UploadedBy).
		Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating file record: %w", err)
	}

	return nil
}

// GetByID retrieves file metadata by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, file_name, stored_path, file_url, file_size, file_type, is_public, uploaded_by, created_at
		FROM files
		WHERE id = $1
	`

	var f models.File
	err := r.db.QueryRow(ctx, query, id).
		Scan(&f.ID, &f.FileName, &f.StoredPath, &f.FileURL, &f.FileSize, &f.FileType, &f.IsPublic, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error retrieving file record: %w", err)
	}

	return &f, nil
}

// ListForUser retrieves files uploaded by a user, newest first
func (r *FileRepository) ListForUser(ctx context.Context, userID int64) ([]*models.File, error) {
	query := `
		SELECT id, file_name, stored_path, file_url, file_size, file_type, is_public, uploaded_by, created_at
		FROM files
		WHERE uploaded_by = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.FileName, &f.StoredPath, &f.FileURL, &f.FileSize, &f.FileType, &f.IsPublic, &f.UploadedBy, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning file row: %w", err)
		}
		files = append(files, &f)
	}

	return files, rows.Err()
}

// Delete removes file metadata
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}
