package filestorage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalStorage(root, "https://api.example.org")
	require.NoError(t, err)

	fh := multipartFile(t, "Syllabus.PDF", []byte("%PDF-1.4 course outline"))
	stored, err := storage.Save(context.Background(), fh, "program-7")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Path, "program-7/"))
	assert.True(t, strings.HasSuffix(stored.Path, ".pdf"))
	assert.Equal(t, "https://api.example.org/uploads/"+stored.Path, stored.URL)
	assert.Equal(t, int64(len("%PDF-1.4 course outline")), stored.Size)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored.Path)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 course outline", string(data))

	rel, ok := storage.PathFromURL(stored.URL)
	require.True(t, ok)
	assert.Equal(t, stored.Path, rel)

	require.NoError(t, storage.Delete(context.Background(), rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(stored.Path)))
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, storage.Delete(context.Background(), rel))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, ok := storage.PathFromURL("/uploads/../../etc/passwd")
	assert.False(t, ok)

	_, ok = storage.PathFromURL("https://elsewhere.example/file.pdf")
	assert.False(t, ok)
}
