package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/repositories"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.UseJSONFieldNames()
}

// listStore serves fixed rows and ignores filters.
type listStore[T any] struct {
	rows []*T
}

func (s *listStore[T]) List(_ context.Context, q repositories.Query) ([]*T, error) {
	out := append([]*T{}, s.rows...)
	if q.Limit > 0 && q.Limit < uint64(len(out)) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *listStore[T]) Count(context.Context, map[string]interface{}) (int64, error) {
	return int64(len(s.rows)), nil
}

func (s *listStore[T]) Get(ctx context.Context, _ int64) (*T, error) {
	return s.first()
}

func (s *listStore[T]) FindBy(context.Context, string, interface{}) (*T, error) {
	return s.first()
}

func (s *listStore[T]) first() (*T, error) {
	if len(s.rows) == 0 {
		return nil, apperrors.NewResourceNotFoundError("row not found")
	}
	return s.rows[0], nil
}

func (s *listStore[T]) Create(_ context.Context, row *T) (*T, error) {
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *listStore[T]) Update(_ context.Context, _ int64, row *T) (*T, error) { return row, nil }

func (s *listStore[T]) Patch(ctx context.Context, _ int64, _ map[string]interface{}) (*T, error) {
	return s.first()
}

func (s *listStore[T]) Delete(context.Context, int64) error { return nil }

type staticSettings struct {
	settings *models.Settings
}

func (s staticSettings) Get(context.Context) (*models.Settings, error) {
	if s.settings == nil {
		return models.DefaultSettings(), nil
	}
	return s.settings, nil
}

func (s staticSettings) Upsert(_ context.Context, v *models.Settings) (*models.Settings, error) {
	return v, nil
}

func emptyStores() services.Stores {
	return services.Stores{
		Programs:               &listStore[models.Program]{},
		ProgramCategories:      &listStore[models.ProgramCategory]{},
		ProgramMaterials:       &listStore[models.ProgramMaterial]{},
		ProgramReviews:         &listStore[models.ProgramReview]{},
		Mentors:                &listStore[models.Mentor]{},
		Mentees:                &listStore[models.Mentee]{},
		MentorshipApplications: &listStore[models.MentorshipApplication]{},
		TeamMembers:            &listStore[models.TeamMember]{},
		Testimonials:           &listStore[models.Testimonial]{},
		Research:               &listStore[models.Research]{},
		Media:                  &listStore[models.Media]{},
		Collaborations:         &listStore[models.Collaboration]{},
		ContactMessages:        &listStore[models.ContactMessage]{},
		Admins:                 &listStore[models.Admin]{},
		AboutSections:          &listStore[models.AboutSection]{},
		AboutGallery:           &listStore[models.AboutGalleryImage]{},
		Settings:               staticSettings{},
	}
}

// envelope is the decoded shape shared by success and error responses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func perform(t *testing.T, router http.Handler, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}
