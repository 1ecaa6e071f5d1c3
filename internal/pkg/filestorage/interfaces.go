package filestorage

import (
	"context"
	"mime/multipart"
)

// StoredFile describes a file written by a FileStorage
type StoredFile struct {
	Path     string // path relative to the storage root
	URL      string // public url the file is served from
	Filename string // original client filename
	Size     int64
	MimeType string
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes the uploaded file under folder and returns where it landed.
	Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*StoredFile, error)

	// Delete removes a file by its storage relative path. Missing files are not an error.
	Delete(ctx context.Context, relPath string) error

	// PathFromURL maps a public url produced by Save back to its relative path.
	PathFromURL(fileURL string) (string, bool)
}
