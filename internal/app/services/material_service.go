package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// MaterialUpload is an uploaded program document and its labels
type MaterialUpload struct {
	File        *multipart.FileHeader
	Title       string
	Description string
}

// MaterialService stores program documents on local disk
type MaterialService struct {
	programs  Store[models.Program]
	materials Store[models.ProgramMaterial]
	storage   filestorage.FileStorage
	cache     cache.Cache
	maxBytes  int64
	logger    zerolog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(programs Store[models.Program], materials Store[models.ProgramMaterial], storage filestorage.FileStorage, c cache.Cache, maxBytes int64, logger zerolog.Logger) *MaterialService {
	if c == nil {
		c = cache.Nop{}
	}
	return &MaterialService{
		programs:  programs,
		materials: materials,
		storage:   storage,
		cache:     c,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

func materialFolder(programID int64) string {
	return fmt.Sprintf("program-%d", programID)
}

// Upload saves the document and records it against program programID
func (s *MaterialService) Upload(ctx context.Context, programID int64, upload MaterialUpload) (*models.ProgramMaterial, error) {
	if upload.File == nil {
		return nil, apperrors.NewValidationError("file is required")
	}
	if s.maxBytes > 0 && upload.File.Size > s.maxBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("file must be at most %d MiB", s.maxBytes>>20))
	}
	if _, err := s.programs.Get(ctx, programID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(upload.Title)
	if title == "" {
		title = strings.TrimSuffix(upload.File.Filename, filepath.Ext(upload.File.Filename))
	}

	stored, err := s.storage.Save(ctx, upload.File, materialFolder(programID))
	if err != nil {
		s.logger.Error().Err(err).Int64("programID", programID).Msg("Failed to store program material")
		return nil, err
	}

	material, err := s.materials.Create(ctx, &models.ProgramMaterial{
		ProgramID:   programID,
		Title:       title,
		Description: strings.TrimSpace(upload.Description),
		FileURL:     stored.URL,
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored.Path); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", stored.Path).Msg("Failed to remove stored file after insert error")
		}
		return nil, err
	}

	s.logger.Info().Int64("programID", programID).Str("path", stored.Path).Msg("Program material uploaded")
	invalidate(ctx, s.cache, CachePrograms)
	return material, nil
}

// Delete removes material id and its stored file. File removal is best effort.
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	material, err := s.materials.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}

	if path, ok := s.storage.PathFromURL(material.FileURL); ok {
		if err := s.storage.Delete(ctx, path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove material file")
		}
	}

	invalidate(ctx, s.cache, CachePrograms)
	return nil
}
