package services

import (
	"context"
	"strings"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/validation"
)

// SettingsService edits the site settings row
type SettingsService struct {
	store SettingsStore
	cache cache.Cache
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(store SettingsStore, c cache.Cache) *SettingsService {
	if c == nil {
		c = cache.Nop{}
	}
	return &SettingsService{store: store, cache: c}
}

// Get returns the settings, defaults included
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.store.Get(ctx)
}

// Update replaces the editable settings
func (s *SettingsService) Update(ctx context.Context, req *dto.SettingsRequest) (*models.Settings, error) {
	settings := &models.Settings{
		ID:               models.SettingsID,
		SiteName:         strings.TrimSpace(req.SiteName),
		ContactEmail:     strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		EnableMentorship: req.EnableMentorship,
		EnablePrograms:   req.EnablePrograms,
		EnableResearch:   req.EnableResearch,
	}
	if settings.SiteName == "" {
		return nil, apperrors.NewValidationError("site_name is required")
	}
	if settings.ContactEmail != "" && !validation.IsEmail(settings.ContactEmail) {
		return nil, apperrors.NewValidationError("contact_email is not valid")
	}

	saved, err := s.store.Upsert(ctx, settings)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, CacheSettings, CacheSitemap)
	return saved, nil
}
