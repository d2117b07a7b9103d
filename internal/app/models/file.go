package models

import "time"

// File represents an uploaded file stored on local disk
type File struct {
	ID         int64     `json:"id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`   // Original client-side name
	StoredPath string    `json:"-" db:"stored_path"`        // Path on disk, never exposed
	FileURL    string    `json:"fileUrl" db:"file_url"`     // Download route for the file
	FileSize   int64     `json:"fileSize" db:"file_size"`   // Bytes
	FileType   string    `json:"fileType" db:"file_type"`   // MIME type
	IsPublic   bool      `json:"isPublic" db:"is_public"`   // Public files skip the ownership check
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
