package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required"`
}

type fakeResource struct {
	rows       []*widget
	lastImage  *multipart.FileHeader
	lastStatus string
	lastActive *bool
	status     bool
	active     bool
}

var _ AdminResource[widget] = (*fakeResource)(nil)

func (f *fakeResource) Name() string         { return "widgets" }
func (f *fakeResource) SupportsStatus() bool { return f.status }
func (f *fakeResource) SupportsActive() bool { return f.active }

func (f *fakeResource) List(_ context.Context, page, size int) ([]*widget, int64, error) {
	start := (page - 1) * size
	if start >= len(f.rows) {
		return []*widget{}, int64(len(f.rows)), nil
	}
	end := start + size
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[start:end], int64(len(f.rows)), nil
}

func (f *fakeResource) Get(_ context.Context, id int64) (*widget, error) {
	for _, w := range f.rows {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("widget not found")
}

func (f *fakeResource) Create(_ context.Context, row *widget, image *multipart.FileHeader) (*widget, error) {
	f.lastImage = image
	row.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeResource) Update(ctx context.Context, id int64, row *widget, image *multipart.FileHeader) (*widget, error) {
	if _, err := f.Get(ctx, id); err != nil {
		return nil, err
	}
	f.lastImage = image
	row.ID = id
	return row, nil
}

func (f *fakeResource) Delete(ctx context.Context, id int64) error {
	_, err := f.Get(ctx, id)
	return err
}

func (f *fakeResource) SetStatus(ctx context.Context, id int64, status string) (*widget, error) {
	f.lastStatus = status
	return f.Get(ctx, id)
}

func (f *fakeResource) SetActive(ctx context.Context, id int64, active bool) (*widget, error) {
	f.lastActive = &active
	return f.Get(ctx, id)
}

func newResourceRouter(res *fakeResource) *gin.Engine {
	r := gin.New()
	NewResourceController[widget](res).Register(r.Group("/admin"))
	return r
}

func TestResourceListPaginates(t *testing.T) {
	res := &fakeResource{}
	for i := 1; i <= 25; i++ {
		res.rows = append(res.rows, &widget{ID: int64(i), Name: "w"})
	}

	w, env := perform(t, newResourceRouter(res), http.MethodGet, "/admin/widgets?page=3&size=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items      []widget `json:"items"`
		Pagination struct {
			CurrentPage int   `json:"current_page"`
			TotalPages  int   `json:"total_pages"`
			TotalItems  int64 `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(21), page.Items[0].ID)
	assert.Equal(t, 3, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(25), page.Pagination.TotalItems)
}

func TestResourceCreateJSON(t *testing.T) {
	res := &fakeResource{}
	router := newResourceRouter(res)

	w, env := perform(t, router, http.MethodPost, "/admin/widgets", jsonBody(t, map[string]string{"name": "Gear"}), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Nil(t, res.lastImage)
	require.Len(t, res.rows, 1)
	assert.Equal(t, "Gear", res.rows[0].Name)

	w, env = perform(t, router, http.MethodPost, "/admin/widgets", jsonBody(t, map[string]string{}), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "name", env.Error.Field)
}

func multipartBody(t *testing.T, payload string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if payload != "" {
		require.NoError(t, mw.WriteField(payloadField, payload))
	}
	if image != nil {
		part, err := mw.CreateFormFile(imageField, "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestResourceCreateMultipart(t *testing.T) {
	res := &fakeResource{}
	router := newResourceRouter(res)

	body, ct := multipartBody(t, `{"name":"Poster"}`, []byte("\x89PNG\r\n\x1a\n"))
	w, _ := perform(t, router, http.MethodPost, "/admin/widgets", body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, res.lastImage)
	assert.Equal(t, "photo.png", res.lastImage.Filename)
	assert.Equal(t, "Poster", res.rows[0].Name)

	body, ct = multipartBody(t, "", []byte("x"))
	w, env := perform(t, router, http.MethodPost, "/admin/widgets", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, payloadField, env.Error.Field)
}

func TestResourceUpdateWithoutImageKeepsNil(t *testing.T) {
	res := &fakeResource{rows: []*widget{{ID: 1, Name: "Old"}}}
	router := newResourceRouter(res)

	body, ct := multipartBody(t, `{"name":"New"}`, nil)
	w, env := perform(t, router, http.MethodPut, "/admin/widgets/1", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, res.lastImage)

	var got widget
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "New", got.Name)
}

func TestResourceNotFoundAndBadID(t *testing.T) {
	router := newResourceRouter(&fakeResource{})

	w, env := perform(t, router, http.MethodGet, "/admin/widgets/7", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RES_001", env.Error.Code)

	w, env = perform(t, router, http.MethodDelete, "/admin/widgets/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", env.Error.Field)
}

func TestResourceOptionalRoutes(t *testing.T) {
	plain := newResourceRouter(&fakeResource{rows: []*widget{{ID: 1, Name: "a"}}})
	w, _ := perform(t, plain, http.MethodPatch, "/admin/widgets/1/status", jsonBody(t, map[string]string{"status": "approved"}), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)

	res := &fakeResource{rows: []*widget{{ID: 1, Name: "a"}}, status: true, active: true}
	router := newResourceRouter(res)

	w, _ = perform(t, router, http.MethodPatch, "/admin/widgets/1/status", jsonBody(t, map[string]string{"status": "approved"}), "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", res.lastStatus)

	w, env := perform(t, router, http.MethodPatch, "/admin/widgets/1/active", jsonBody(t, map[string]string{}), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is_active", env.Error.Field)

	w, _ = perform(t, router, http.MethodPatch, "/admin/widgets/1/active", jsonBody(t, map[string]bool{"is_active": false}), "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, res.lastActive)
	assert.False(t, *res.lastActive)
}
