package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/google/uuid"
)

// URLPrefix is the route the storage root is served under.
const URLPrefix = "/uploads"

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	baseURL  string
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates the storage root if needed.
// baseURL, when set, is prepended to the URLs handed out.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the filesystem root.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// Save copies the upload to <root>/<folder>/<uuid><ext>.
func (ls *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, errors.New("no file provided")
	}
	folder, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(ls.basePath, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	rel := path.Join(folder, name)
	stored := &StoredFile{
		Path:     rel,
		URL:      ls.baseURL + URLPrefix + "/" + rel,
		Filename: fileHeader.Filename,
		Size:     written,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}

	logger.FromContext(ctx).Info().
		Str("filename", fileHeader.Filename).
		Str("path", rel).
		Int64("size", written).
		Msg("File saved successfully")
	return stored, nil
}

// Delete removes a previously saved file. Deleting a missing file succeeds.
func (ls *LocalStorage) Delete(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := path.Clean("/" + filepath.ToSlash(relPath))
	if clean == "/" {
		return fmt.Errorf("invalid file path: %s", relPath)
	}

	physical := filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if err := os.Remove(physical); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.FromContext(ctx).Warn().Str("path", physical).Msg("File to delete does not exist")
			return nil
		}
		logger.FromContext(ctx).Error().Err(err).Str("path", physical).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.FromContext(ctx).Info().Str("path", physical).Msg("File deleted successfully")
	return nil
}

// PathFromURL strips the base url and the uploads prefix from fileURL.
func (ls *LocalStorage) PathFromURL(fileURL string) (string, bool) {
	rest := strings.TrimPrefix(fileURL, ls.baseURL)
	if !strings.HasPrefix(rest, URLPrefix+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(rest, URLPrefix+"/")
	if rel == "" || strings.Contains(rel, "..") {
		return "", false
	}
	return rel, true
}

func cleanFolder(folder string) (string, error) {
	if folder == "" {
		return ".", nil
	}
	clean := path.Clean("/" + filepath.ToSlash(folder))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" {
		return ".", nil
	}
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid folder: %s", folder)
	}
	return clean, nil
}
