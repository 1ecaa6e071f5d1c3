package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body
}

func TestErrorDetailFor(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"not found", apperrors.NewResourceNotFoundError("program \"x\" not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"feature disabled", apperrors.NewCustomError(apperrors.ErrFeatureDisabled, "research is currently disabled"), http.StatusNotFound, dto.ErrorCodeFeatureDisabled},
		{"conflict", apperrors.NewConflictError("duplicate slug"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"validation", apperrors.NewValidationError("rating must be between 1 and 5"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.NewCustomError(apperrors.ErrBadRequest, "team have no status"), http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"not admin", apperrors.NewCustomError(apperrors.ErrNotAdmin, "not authorized as admin"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"external", apperrors.NewCustomError(apperrors.ErrExternalService, "image upload failed"), http.StatusBadGateway, dto.ErrorCodeExternalServiceError},
		{"not configured", apperrors.NewCustomError(apperrors.ErrNotConfigured, "image uploads are not configured"), http.StatusServiceUnavailable, dto.ErrorCodeNotConfigured},
		{"unknown", errors.New("pool closed"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := ErrorDetailFor(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, detail.Code)
		})
	}
}

func TestErrorDetailKeepsCustomMessage(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrValidationFailed, "full_name is required").
		WithDetails(map[string]interface{}{"field": "full_name"})

	_, detail := ErrorDetailFor(err)

	assert.Equal(t, "full_name is required", detail.Message)
	assert.Equal(t, "full_name", detail.Field)

	_, detail = ErrorDetailFor(errors.New("password=hunter2 leaked in driver error"))
	assert.Equal(t, "Internal server error", detail.Message)
}

type stubAuthorizer struct {
	claims *auth.Claims
	err    error
	header string
}

func (s *stubAuthorizer) Authorize(_ context.Context, header string) (*auth.Claims, error) {
	s.header = header
	return s.claims, s.err
}

func TestAdminGate(t *testing.T) {
	authorizer := &stubAuthorizer{claims: &auth.Claims{Email: "admin@acemed.example.org", Admin: true}}

	r := gin.New()
	r.GET("/admin/me", AdminGate(authorizer), func(c *gin.Context) {
		claims, ok := AdminClaims(c)
		assert.True(t, ok)
		c.String(http.StatusOK, claims.Email+"|"+c.GetString(AdminEmailKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@acemed.example.org|admin@acemed.example.org", w.Body.String())
	assert.Equal(t, "Bearer abc", authorizer.header)
}

func TestAdminGateRejects(t *testing.T) {
	reached := false
	r := gin.New()
	r.GET("/admin/me", AdminGate(&stubAuthorizer{err: apperrors.NewCustomError(apperrors.ErrNotAdmin, "not authorized as admin")}), func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/me", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeError(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, dto.ErrorCodeForbidden, body.Error.Code)
	assert.Equal(t, "not authorized as admin", body.Error.Message)
}

type bindTarget struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/contact", func(c *gin.Context) {
		var req bindTarget
		if !BindJSON(c, &req) {
			return
		}
		c.String(http.StatusOK, req.FullName)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"full_name":"Tunde","email":"t@example.org"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tunde", w.Body.String())

	w = post(`{"full_name":"Tunde","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "email", body.Error.Field)
	assert.Equal(t, "email must be a valid email address", body.Error.Message)

	w = post(`{"full_name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decodeError(t, w).Error.Message)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://acemed.example.org/"}))
	r.GET("/api/v1/team", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/team", nil)
	req.Header.Set("Origin", "https://acemed.example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://acemed.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/team", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
