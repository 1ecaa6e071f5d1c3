package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/acemedformatics/acemed/internal/pkg/filestorage"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResourceOf records SetActive calls for any row type.
type fakeResourceOf[T any] struct {
	AdminResource[T]
	activeCalls []bool
}

func (f *fakeResourceOf[T]) SetActive(_ context.Context, _ int64, active bool) (*T, error) {
	f.activeCalls = append(f.activeCalls, active)
	return new(T), nil
}

type menteeToggler struct {
	toggled []int64
}

func (m *menteeToggler) ToggleActive(_ context.Context, id int64) (*models.Mentee, error) {
	m.toggled = append(m.toggled, id)
	return &models.Mentee{ID: id, IsActive: len(m.toggled)%2 == 1}, nil
}

type stubReviewer struct{}

func (stubReviewer) Approve(_ context.Context, id int64, cohortYear int) (*models.MentorshipApplication, *models.Mentee, error) {
	if id != 1 {
		return nil, nil, apperrors.NewConflictError("application already reviewed")
	}
	return &models.MentorshipApplication{ID: id, Status: models.StatusApproved},
		&models.Mentee{ID: 9, CohortYear: cohortYear, IsActive: true}, nil
}

func (stubReviewer) Reject(_ context.Context, id int64) (*models.MentorshipApplication, error) {
	return &models.MentorshipApplication{ID: id, Status: models.StatusRejected}, nil
}

type adminFixture struct {
	router  *gin.Engine
	team    *fakeResourceOf[models.TeamMember]
	mentees *menteeToggler
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	stores := emptyStores()
	stores.Programs = &listStore[models.Program]{rows: []*models.Program{{ID: 1, Title: "Intro", Slug: "intro"}}}

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	f := &adminFixture{team: &fakeResourceOf[models.TeamMember]{}, mentees: &menteeToggler{}}
	ctrl := NewAdminController(
		services.NewDashboardService(stores),
		services.NewSettingsService(stores.Settings, nil),
		services.NewMentorshipService(stores.MentorshipApplications, stubReviewer{}, nil, zerolog.Nop()),
		services.NewMaterialService(stores.Programs, stores.ProgramMaterials, storage, nil, 1<<20, zerolog.Nop()),
		f.team,
		f.mentees,
	)

	f.router = gin.New()
	ctrl.Register(f.router.Group("/admin"))
	return f
}

func TestAdminDashboard(t *testing.T) {
	w, env := perform(t, newAdminFixture(t).router, http.MethodGet, "/admin/dashboard", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		Counts map[string]int64 `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, int64(1), summary.Counts[services.ResourcePrograms])
}

func TestAdminUpdateSettings(t *testing.T) {
	router := newAdminFixture(t).router

	w, env := perform(t, router, http.MethodPut, "/admin/settings", jsonBody(t, map[string]interface{}{
		"site_name":     "ACE",
		"contact_email": "bad",
	}), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "contact_email", env.Error.Field)

	w, env = perform(t, router, http.MethodPut, "/admin/settings", jsonBody(t, map[string]interface{}{
		"site_name":       "ACE",
		"contact_email":   "Info@ACE.example.org",
		"enable_programs": true,
	}), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"contact_email":"info@ace.example.org"`)
}

func TestAdminApplicationReview(t *testing.T) {
	router := newAdminFixture(t).router

	w, env := perform(t, router, http.MethodPost, "/admin/mentorship-applications/1/approve", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"mentee"`)

	w, env = perform(t, router, http.MethodPost, "/admin/mentorship-applications/2/approve", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "RES_002", env.Error.Code)

	w, _ = perform(t, router, http.MethodPost, "/admin/mentorship-applications/2/reject", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminUploadMaterial(t *testing.T) {
	router := newAdminFixture(t).router

	body, ct := multipartBody(t, "", nil)
	w, env := perform(t, router, http.MethodPost, "/admin/programs/1/materials", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file", env.Error.Field)
}

func TestAdminTeamAndMenteeShortcuts(t *testing.T) {
	f := newAdminFixture(t)

	w, _ := perform(t, f.router, http.MethodPatch, "/admin/team/4/deactivate", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []bool{false}, f.team.activeCalls)

	w, _ = perform(t, f.router, http.MethodPatch, "/admin/mentees/5/toggle-active", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{5}, f.mentees.toggled)
}

func TestAuthMeAndLogout(t *testing.T) {
	revoked := auth.NewMemoryRevocationStore()
	ctrl := NewAuthController(services.NewAuthService(nil, nil, nil, revoked, zerolog.Nop()), zerolog.Nop())

	claims := &auth.Claims{
		Email: "admin@acemed.example.org",
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	router := gin.New()
	router.GET("/anon/me", ctrl.Me)
	signedIn := router.Group("", func(c *gin.Context) { c.Set(middleware.AdminClaimsKey, claims) })
	signedIn.GET("/me", ctrl.Me)
	signedIn.POST("/logout", ctrl.Logout)

	w, _ := perform(t, router, http.MethodGet, "/anon/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := perform(t, router, http.MethodGet, "/me", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "admin@acemed.example.org")

	w, _ = perform(t, router, http.MethodPost, "/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	isRevoked, err := revoked.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, isRevoked)
}
