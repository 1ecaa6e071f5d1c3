package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/acemedformatics/acemed/internal/app/repositories"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/acemedformatics/acemed/internal/pkg/imagehost"
	"github.com/rs/zerolog"
)

// DefaultMaxImageBytes caps admin image uploads
const DefaultMaxImageBytes int64 = 10 << 20

// ImageSlot is the column pair an entity keeps its hosted image in
type ImageSlot[T any] struct {
	Folder string
	// Required rejects rows that end up without an image
	Required bool
	Get      func(row *T) (url, publicID string)
	Set      func(row *T, url, publicID string)
}

// Definition holds the per-entity rules of an admin resource
type Definition[T any] struct {
	// Name is the admin path segment, e.g. "team"
	Name string
	// Prepare fills defaults before validation. existing is nil on create.
	Prepare  func(row, existing *T, now time.Time)
	Validate func(row *T) error
	Image    *ImageSlot[T]
	// ValidStatus enables status updates when set
	ValidStatus func(status string) bool
	// Active enables the is_active toggle when set
	Active func(row *T) bool
	// Touch stamps updated_at on partial updates
	Touch       bool
	Invalidates []string
}

// ResourceService is the admin CRUD shared by every entity
type ResourceService[T any] struct {
	def      Definition[T]
	store    Store[T]
	cache    cache.Cache
	images   imagehost.Uploader
	maxImage int64
	logger   zerolog.Logger
	now      func() time.Time
}

// NewResourceService creates a service for def over store.
// images may be nil when the image host is disabled.
func NewResourceService[T any](def Definition[T], store Store[T], c cache.Cache, images imagehost.Uploader, maxImageBytes int64, logger zerolog.Logger) *ResourceService[T] {
	if c == nil {
		c = cache.Nop{}
	}
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &ResourceService[T]{
		def:      def,
		store:    store,
		cache:    c,
		images:   images,
		maxImage: maxImageBytes,
		logger:   logger.With().Str("resource", def.Name).Logger(),
		now:      time.Now,
	}
}

// Name returns the resource name
func (s *ResourceService[T]) Name() string {
	return s.def.Name
}

// SupportsStatus reports whether rows of this resource carry a moderation or inbox status
func (s *ResourceService[T]) SupportsStatus() bool {
	return s.def.ValidStatus != nil
}

// SupportsActive reports whether rows of this resource can be hidden
func (s *ResourceService[T]) SupportsActive() bool {
	return s.def.Active != nil
}

// SupportsImage reports whether rows of this resource carry a hosted image
func (s *ResourceService[T]) SupportsImage() bool {
	return s.def.Image != nil
}

// List returns one page of rows in the default admin order and the total row count
func (s *ResourceService[T]) List(ctx context.Context, page, size int) ([]*T, int64, error) {
	total, err := s.store.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	items, err := s.store.List(ctx, repositories.Query{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one row
func (s *ResourceService[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.store.Get(ctx, id)
}

// Create validates row, uploads image when given and inserts the row
func (s *ResourceService[T]) Create(ctx context.Context, row *T, image *multipart.FileHeader) (*T, error) {
	if s.def.Prepare != nil {
		s.def.Prepare(row, nil, s.now())
	}
	if err := s.validate(row, image); err != nil {
		return nil, err
	}

	uploaded, err := s.attachImage(ctx, row, image)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, row)
	if err != nil {
		s.discardImage(ctx, uploaded)
		return nil, err
	}

	s.logger.Info().Msg("Row created")
	invalidate(ctx, s.cache, s.def.Invalidates...)
	return created, nil
}

// Update replaces row id. The stored image is kept when row names none and no new image is given.
func (s *ResourceService[T]) Update(ctx context.Context, id int64, row *T, image *multipart.FileHeader) (*T, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var previousPublicID string
	if slot := s.def.Image; slot != nil {
		oldURL, oldPublicID := slot.Get(existing)
		previousPublicID = oldPublicID
		if newURL, _ := slot.Get(row); newURL == "" && image == nil {
			slot.Set(row, oldURL, oldPublicID)
		}
	}

	if s.def.Prepare != nil {
		s.def.Prepare(row, existing, s.now())
	}
	if err := s.validate(row, image); err != nil {
		return nil, err
	}

	uploaded, err := s.attachImage(ctx, row, image)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, row)
	if err != nil {
		s.discardImage(ctx, uploaded)
		return nil, err
	}

	if uploaded != nil && previousPublicID != "" && previousPublicID != uploaded.PublicID {
		s.destroyImage(ctx, previousPublicID)
	}

	invalidate(ctx, s.cache, s.def.Invalidates...)
	return updated, nil
}

// Delete removes row id and, when possible, its hosted image
func (s *ResourceService[T]) Delete(ctx context.Context, id int64) error {
	var publicID string
	if s.def.Image != nil {
		existing, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		_, publicID = s.def.Image.Get(existing)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if publicID != "" {
		s.destroyImage(ctx, publicID)
	}
	s.logger.Info().Int64("id", id).Msg("Row deleted")
	invalidate(ctx, s.cache, s.def.Invalidates...)
	return nil
}

// SetStatus moves row id to status
func (s *ResourceService[T]) SetStatus(ctx context.Context, id int64, status string) (*T, error) {
	if s.def.ValidStatus == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, s.def.Name+" have no status")
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !s.def.ValidStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("status %q is not valid for %s", status, s.def.Name))
	}

	return s.patch(ctx, id, map[string]interface{}{"status": status})
}

// SetActive shows or hides row id on the public site
func (s *ResourceService[T]) SetActive(ctx context.Context, id int64, active bool) (*T, error) {
	if s.def.Active == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, s.def.Name+" cannot be deactivated")
	}
	return s.patch(ctx, id, map[string]interface{}{"is_active": active})
}

// ToggleActive flips the is_active flag of row id
func (s *ResourceService[T]) ToggleActive(ctx context.Context, id int64) (*T, error) {
	if s.def.Active == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, s.def.Name+" cannot be deactivated")
	}
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.patch(ctx, id, map[string]interface{}{"is_active": !s.def.Active(current)})
}

func (s *ResourceService[T]) patch(ctx context.Context, id int64, columns map[string]interface{}) (*T, error) {
	if s.def.Touch {
		columns["updated_at"] = s.now().UTC()
	}
	row, err := s.store.Patch(ctx, id, columns)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.def.Invalidates...)
	return row, nil
}

func (s *ResourceService[T]) validate(row *T, image *multipart.FileHeader) error {
	if slot := s.def.Image; slot != nil && slot.Required && image == nil {
		if url, _ := slot.Get(row); url == "" {
			return apperrors.NewValidationError("an image is required")
		}
	}
	if s.def.Validate != nil {
		return s.def.Validate(row)
	}
	return nil
}

// attachImage uploads image and stores its url on row. A nil image is a no-op.
func (s *ResourceService[T]) attachImage(ctx context.Context, row *T, image *multipart.FileHeader) (*imagehost.Uploaded, error) {
	if image == nil {
		return nil, nil
	}
	if s.def.Image == nil {
		return nil, apperrors.NewValidationError(s.def.Name + " do not take an image")
	}
	if s.images == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrNotConfigured, "image uploads are not configured")
	}

	file, err := openImage(image, s.maxImage)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	uploaded, err := s.images.Upload(ctx, file, image.Filename, s.def.Image.Folder)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", image.Filename).Msg("Image upload failed")
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService, "image upload failed")
	}

	s.def.Image.Set(row, uploaded.SecureURL, uploaded.PublicID)
	return uploaded, nil
}

// openImage checks size and sniffed content type and returns the file rewound
func openImage(image *multipart.FileHeader, maxBytes int64) (multipart.File, error) {
	if image.Size > maxBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("image must be at most %d MiB", maxBytes>>20))
	}

	file, err := image.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded image: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, fmt.Errorf("failed to read uploaded image: %w", err)
	}
	if contentType := http.DetectContentType(head[:n]); !strings.HasPrefix(contentType, "image/") {
		file.Close()
		return nil, apperrors.NewValidationError(fmt.Sprintf("file is %s, not an image", contentType))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to rewind uploaded image: %w", err)
	}
	return file, nil
}

// discardImage removes an image whose row write failed
func (s *ResourceService[T]) discardImage(ctx context.Context, uploaded *imagehost.Uploaded) {
	if uploaded == nil {
		return
	}
	if s.images.CanDestroy() {
		err := s.images.Destroy(ctx, uploaded.PublicID)
		if err == nil {
			s.logger.Info().Str("public_id", uploaded.PublicID).Msg("Removed image after failed write")
			return
		}
		s.logger.Warn().Err(err).Str("public_id", uploaded.PublicID).Msg("Image cleanup failed")
	}
	s.logger.Warn().
		Str("url", uploaded.SecureURL).
		Str("public_id", uploaded.PublicID).
		Msg("orphaned image")
}

func (s *ResourceService[T]) destroyImage(ctx context.Context, publicID string) {
	if s.images == nil || !s.images.CanDestroy() {
		return
	}
	if err := s.images.Destroy(ctx, publicID); err != nil {
		s.logger.Warn().Err(err).Str("public_id", publicID).Msg("Failed to remove replaced image")
	}
}
