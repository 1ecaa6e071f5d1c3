// Package services holds the business rules between the HTTP layer and the tables.
package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/repositories"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
)

// Store is the table access every service works against.
// *repositories.ResourceRepository satisfies it.
type Store[T any] interface {
	List(ctx context.Context, q repositories.Query) ([]*T, error)
	Count(ctx context.Context, filters map[string]interface{}) (int64, error)
	Get(ctx context.Context, id int64) (*T, error)
	FindBy(ctx context.Context, column string, value interface{}) (*T, error)
	Create(ctx context.Context, row *T) (*T, error)
	Update(ctx context.Context, id int64, row *T) (*T, error)
	Patch(ctx context.Context, id int64, columns map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Counter counts rows of a table
type Counter interface {
	Count(ctx context.Context, filters map[string]interface{}) (int64, error)
}

// SettingsStore reads and writes the settings row
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, s *models.Settings) (*models.Settings, error)
}

// AdminLookup answers whether an email belongs to an admin
type AdminLookup interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// ApplicationReviewer approves or rejects mentorship applications atomically
type ApplicationReviewer interface {
	Approve(ctx context.Context, id int64, cohortYear int) (*models.MentorshipApplication, *models.Mentee, error)
	Reject(ctx context.Context, id int64) (*models.MentorshipApplication, error)
}

var (
	_ Store[models.Program] = (*repositories.ResourceRepository[models.Program])(nil)
	_ SettingsStore         = (*repositories.SettingsRepository)(nil)
	_ AdminLookup           = (*repositories.AdminRepository)(nil)
	_ ApplicationReviewer   = (*repositories.MentorshipRepository)(nil)
)

// Cache resource names. Admin writes invalidate the names their resource feeds.
const (
	CacheTeam           = "team"
	CachePrograms       = "programs"
	CacheCategories     = "program-categories"
	CacheReviews        = "reviews"
	CacheResearch       = "research"
	CacheMentorship     = "mentorship"
	CacheCollaborations = "collaborations"
	CacheMedia          = "media"
	CacheTestimonials   = "testimonials"
	CacheAbout          = "about"
	CacheSettings       = "settings"
	CacheSitemap        = "sitemap"
)

// cached returns the cached value under resource/query, or loads and stores it.
// Cache failures are logged and never fail the read.
func cached[V any](ctx context.Context, c cache.Cache, resource string, query url.Values, load func() (V, error)) (V, error) {
	key := cache.Key(resource, query)

	raw, ok, err := c.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if ok {
		var v V
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		logger.FromContext(ctx).Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if raw, err := json.Marshal(v); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache encode failed")
	} else if err := c.Set(ctx, key, raw); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return v, nil
}

// invalidate drops the cached reads of every named resource
func invalidate(ctx context.Context, c cache.Cache, resources ...string) {
	for _, r := range resources {
		if err := c.InvalidateResource(ctx, r); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("resource", r).Msg("Cache invalidation failed")
		}
	}
}
