package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/repositories"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/email"
	"github.com/acemedformatics/acemed/internal/pkg/imagehost"
	"github.com/stretchr/testify/require"
)

// memStore keeps rows in insertion order and matches filters against db tags.
type memStore[T any] struct {
	mu     sync.Mutex
	rows   []*T
	nextID int64
	// failCreate makes the next Create return this error
	failCreate error
}

var _ Store[models.Program] = (*memStore[models.Program])(nil)

func newMemStore[T any](rows ...*T) *memStore[T] {
	s := &memStore[T]{}
	for _, r := range rows {
		_, _ = s.Create(context.Background(), r)
	}
	return s
}

func dbField(v reflect.Value, column string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.Split(t.Field(i).Tag.Get("db"), ",")[0] == column {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func idOf[T any](row *T) int64 {
	f, _ := dbField(reflect.ValueOf(row).Elem(), "id")
	return f.Int()
}

func matches[T any](row *T, filters map[string]interface{}) bool {
	v := reflect.ValueOf(row).Elem()
	for column, want := range filters {
		f, ok := dbField(v, column)
		if !ok {
			return false
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return false
			}
			f = f.Elem()
		}
		if fmt.Sprint(f.Interface()) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func clone[T any](row *T) *T {
	c := *row
	return &c
}

func (s *memStore[T]) List(_ context.Context, q repositories.Query) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*T{}
	for _, r := range s.rows {
		if matches(r, q.Filters) {
			out = append(out, clone(r))
		}
	}
	if q.Offset > 0 {
		if q.Offset >= uint64(len(out)) {
			return []*T{}, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < uint64(len(out)) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memStore[T]) Count(_ context.Context, filters map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, r := range s.rows {
		if matches(r, filters) {
			n++
		}
	}
	return n, nil
}

func (s *memStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.FindBy(ctx, "id", id)
}

func (s *memStore[T]) FindBy(_ context.Context, column string, value interface{}) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rows {
		if matches(r, map[string]interface{}{column: value}) {
			return clone(r), nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("no row with %s = %v", column, value))
}

func (s *memStore[T]) Create(_ context.Context, row *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failCreate; err != nil {
		s.failCreate = nil
		return nil, err
	}
	s.nextID++
	stored := clone(row)
	id, _ := dbField(reflect.ValueOf(stored).Elem(), "id")
	id.SetInt(s.nextID)
	if created, ok := dbField(reflect.ValueOf(stored).Elem(), "created_at"); ok {
		created.Set(reflect.ValueOf(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	}
	s.rows = append(s.rows, stored)
	return clone(stored), nil
}

func (s *memStore[T]) Update(_ context.Context, id int64, row *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rows {
		if idOf(r) == id {
			stored := clone(row)
			v := reflect.ValueOf(stored).Elem()
			f, _ := dbField(v, "id")
			f.SetInt(id)
			if created, ok := dbField(v, "created_at"); ok {
				old, _ := dbField(reflect.ValueOf(r).Elem(), "created_at")
				created.Set(old)
			}
			s.rows[i] = stored
			return clone(stored), nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("row not found")
}

func (s *memStore[T]) Patch(_ context.Context, id int64, columns map[string]interface{}) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rows {
		if idOf(r) != id {
			continue
		}
		v := reflect.ValueOf(r).Elem()
		for column, value := range columns {
			f, ok := dbField(v, column)
			if !ok {
				return nil, fmt.Errorf("unknown column %s", column)
			}
			val := reflect.ValueOf(value)
			if f.Kind() == reflect.Ptr {
				p := reflect.New(f.Type().Elem())
				p.Elem().Set(val.Convert(f.Type().Elem()))
				f.Set(p)
				continue
			}
			f.Set(val.Convert(f.Type()))
		}
		return clone(r), nil
	}
	return nil, apperrors.NewResourceNotFoundError("row not found")
}

func (s *memStore[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rows {
		if idOf(r) == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("row not found")
}

type memSettings struct {
	settings *models.Settings
	err      error
}

func (m *memSettings) Get(context.Context) (*models.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return models.DefaultSettings(), nil
	}
	s := *m.settings
	return &s, nil
}

func (m *memSettings) Upsert(_ context.Context, s *models.Settings) (*models.Settings, error) {
	saved := *s
	m.settings = &saved
	return &saved, nil
}

// recordingCache remembers every invalidated resource and never hits.
type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *recordingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (c *recordingCache) Set(context.Context, string, []byte) error         { return nil }

func (c *recordingCache) InvalidateResource(_ context.Context, resource string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, resource)
	return nil
}

type fakeUploader struct {
	uploads    []string
	destroyed  []string
	failUpload bool
	canDestroy bool
}

var _ imagehost.Uploader = (*fakeUploader)(nil)

func (u *fakeUploader) Upload(_ context.Context, r io.Reader, filename, folder string) (*imagehost.Uploaded, error) {
	if u.failUpload {
		return nil, errors.New("host unavailable")
	}
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	u.uploads = append(u.uploads, folder+"/"+filename)
	n := len(u.uploads)
	return &imagehost.Uploaded{
		SecureURL: fmt.Sprintf("https://img.example.org/%s/%d.png", folder, n),
		PublicID:  fmt.Sprintf("%s/%d", folder, n),
	}, nil
}

func (u *fakeUploader) Destroy(_ context.Context, publicID string) error {
	u.destroyed = append(u.destroyed, publicID)
	return nil
}

func (u *fakeUploader) CanDestroy() bool { return u.canDestroy }

type fakeNotifier struct {
	contacts     []string
	applications []string
	err          error
}

func (n *fakeNotifier) NotifyContactMessage(_ context.Context, to string, msg email.ContactNotice) error {
	n.contacts = append(n.contacts, to+":"+msg.Email)
	return n.err
}

func (n *fakeNotifier) NotifyMentorshipApplication(_ context.Context, to string, app email.ApplicationNotice) error {
	n.applications = append(n.applications, fmt.Sprintf("%s:%s:%d", to, app.Email, app.CohortYear))
	return n.err
}

// pngBytes is the smallest payload http.DetectContentType reports as image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func newTestStores() Stores {
	return Stores{
		Programs:               newMemStore[models.Program](),
		ProgramCategories:      newMemStore[models.ProgramCategory](),
		ProgramMaterials:       newMemStore[models.ProgramMaterial](),
		ProgramReviews:         newMemStore[models.ProgramReview](),
		Mentors:                newMemStore[models.Mentor](),
		Mentees:                newMemStore[models.Mentee](),
		MentorshipApplications: newMemStore[models.MentorshipApplication](),
		TeamMembers:            newMemStore[models.TeamMember](),
		Testimonials:           newMemStore[models.Testimonial](),
		Research:               newMemStore[models.Research](),
		Media:                  newMemStore[models.Media](),
		Collaborations:         newMemStore[models.Collaboration](),
		ContactMessages:        newMemStore[models.ContactMessage](),
		Admins:                 newMemStore[models.Admin](),
		AboutSections:          newMemStore[models.AboutSection](),
		AboutGallery:           newMemStore[models.AboutGalleryImage](),
		Settings:               &memSettings{},
	}
}
