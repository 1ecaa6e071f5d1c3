package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionService(stores Stores, notifier *fakeNotifier) *SubmissionService {
	content := NewContentService(stores, nil, "")
	return NewSubmissionService(stores, content, notifier, "fallback@acemed.example.org", zerolog.Nop())
}

func TestSubmitContactStoresUnreadAndNotifies(t *testing.T) {
	s := models.DefaultSettings()
	s.ContactEmail = "info@acemed.example.org"
	stores := newTestStores()
	stores.Settings = &memSettings{settings: s}
	notifier := &fakeNotifier{}
	svc := newSubmissionService(stores, notifier)

	msg, err := svc.SubmitContact(context.Background(), &dto.ContactRequest{
		FullName: " Tunde Bakare ",
		Email:    "Tunde@Example.org",
		Message:  "Can we partner on a workshop?",
	})
	require.NoError(t, err)

	assert.Equal(t, models.MessageUnread, msg.Status)
	assert.Equal(t, "Tunde Bakare", msg.FullName)
	assert.Equal(t, "tunde@example.org", msg.Email)
	assert.Equal(t, []string{"info@acemed.example.org:tunde@example.org"}, notifier.contacts)
}

func TestSubmitContactFallsBackToConfiguredRecipient(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := newSubmissionService(newTestStores(), notifier)

	_, err := svc.SubmitContact(context.Background(), &dto.ContactRequest{
		FullName: "Tunde",
		Email:    "t@example.org",
		Message:  "Hello",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"fallback@acemed.example.org:t@example.org"}, notifier.contacts)
}

func TestSubmitContactRequiresFields(t *testing.T) {
	svc := newSubmissionService(newTestStores(), &fakeNotifier{})

	_, err := svc.SubmitContact(context.Background(), &dto.ContactRequest{FullName: "  ", Email: "t@example.org", Message: " "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, "full_name is required", custom.Message)
	assert.Equal(t, []string{"full_name", "message"}, custom.Details["missing"])

	_, err = svc.SubmitContact(context.Background(), &dto.ContactRequest{FullName: "T", Email: "nope", Message: "Hi"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestSubmitTestimonial(t *testing.T) {
	svc := newSubmissionService(newTestStores(), &fakeNotifier{})
	ctx := context.Background()

	_, err := svc.SubmitTestimonial(ctx, &dto.TestimonialRequest{FullName: "Ngozi", Content: "Loved it"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "consent is required")

	bad := 6
	_, err = svc.SubmitTestimonial(ctx, &dto.TestimonialRequest{FullName: "Ngozi", Content: "Loved it", Rating: &bad, Consent: true})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	rating := 5
	saved, err := svc.SubmitTestimonial(ctx, &dto.TestimonialRequest{FullName: "Ngozi", Content: "Loved it", Rating: &rating, Consent: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.True(t, saved.Consent)
}

func TestSubmitReviewNeedsExistingProgram(t *testing.T) {
	stores := newTestStores()
	stores.Programs = newMemStore(&models.Program{Title: "Intro", Slug: "intro"})
	svc := newSubmissionService(stores, &fakeNotifier{})
	ctx := context.Background()

	_, err := svc.SubmitReview(ctx, "missing", &dto.ReviewRequest{FullName: "Ade", Content: "Good", Consent: true})
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	review, err := svc.SubmitReview(ctx, "intro", &dto.ReviewRequest{FullName: "Ade", Content: "Good", Consent: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), review.ProgramID)
	assert.Equal(t, models.StatusPending, review.Status)
}

func TestApplyUsesCurrentCohort(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newSubmissionService(newTestStores(), notifier)
	svc.now = fixedClock(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))

	app, err := svc.Apply(context.Background(), &dto.MentorshipApplicationRequest{
		FullName:        "Kemi Ade",
		Email:           "kemi@example.org",
		FieldOfInterest: "Data science",
	})
	require.NoError(t, err)

	assert.Equal(t, 2026, app.CohortYear)
	assert.True(t, app.IsActive)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, []string{"fallback@acemed.example.org:kemi@example.org:2026"}, notifier.applications)
}

func TestApplyWhenMentorshipDisabled(t *testing.T) {
	stores := newTestStores()
	stores.Settings = disabledSettings()
	svc := newSubmissionService(stores, &fakeNotifier{})

	_, err := svc.Apply(context.Background(), &dto.MentorshipApplicationRequest{FullName: "Kemi", Email: "k@example.org", FieldOfInterest: "Data"})
	assert.True(t, errors.Is(err, apperrors.ErrFeatureDisabled))
}
