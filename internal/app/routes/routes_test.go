package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acemedformatics/acemed/internal/app/controllers"
	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	nop := zerolog.Nop()
	team := services.NewResourceService(services.TeamMemberDefinition(), nil, nil, nil, 0, nop)
	mentees := services.NewResourceService(services.MenteeDefinition(), nil, nil, nil, 0, nop)

	ctrl := Controllers{
		Public:     controllers.NewPublicController(nil),
		Submission: controllers.NewSubmissionController(nil),
		Auth:       controllers.NewAuthController(nil, nop),
		Admin:      controllers.NewAdminController(nil, nil, nil, nil, team, mentees),
		Resources: []Registrar{
			controllers.NewResourceController[models.Program](services.NewResourceService(services.ProgramDefinition(), nil, nil, nil, 0, nop)),
			controllers.NewResourceController[models.ProgramMaterial](services.NewResourceService(services.ProgramMaterialDefinition(), nil, nil, nil, 0, nop)),
			controllers.NewResourceController[models.Testimonial](services.NewResourceService(services.TestimonialDefinition(), nil, nil, nil, 0, nop)),
			controllers.NewResourceController[models.TeamMember](team),
			controllers.NewResourceController[models.Mentee](mentees),
		},
	}

	router := gin.New()
	gate := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
	require.NotPanics(t, func() { SetupRouter(router, ctrl, gate) })
	return router
}

func hasRoute(router *gin.Engine, method, path string) bool {
	for _, r := range router.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/programs/:slug/materials"},
		{http.MethodPost, "/api/v1/programs/:slug/reviews"},
		{http.MethodPost, "/api/v1/mentorship/applications"},
		{http.MethodPost, "/api/v1/admin/auth/login"},
		{http.MethodPost, "/api/v1/admin/auth/session"},
		{http.MethodPatch, "/api/v1/admin/testimonials/:id/status"},
		{http.MethodPatch, "/api/v1/admin/team/:id/active"},
		{http.MethodPatch, "/api/v1/admin/team/:id/deactivate"},
		{http.MethodPatch, "/api/v1/admin/mentees/:id/toggle-active"},
		{http.MethodPost, "/api/v1/admin/programs/:id/materials"},
		{http.MethodDelete, "/api/v1/admin/program-materials/:id/file"},
		{http.MethodGet, "/sitemap.xml"},
	} {
		assert.True(t, hasRoute(router, r.method, r.path), "%s %s", r.method, r.path)
	}

	assert.False(t, hasRoute(router, http.MethodPatch, "/api/v1/admin/programs/:id/status"))
}

func TestAdminRoutesAreGated(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RES_001")
}
