package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/email"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/acemedformatics/acemed/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// SubmissionService stores what visitors send through the public forms
type SubmissionService struct {
	stores   Stores
	content  *ContentService
	notifier email.Notifier
	notifyTo string
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSubmissionService creates a new SubmissionService.
// notifyTo is used when the settings row has no contact email.
func NewSubmissionService(stores Stores, content *ContentService, notifier email.Notifier, notifyTo string, logger zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		stores:   stores,
		content:  content,
		notifier: notifier,
		notifyTo: notifyTo,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitContact stores a contact message as unread and notifies the site contact
func (s *SubmissionService) SubmitContact(ctx context.Context, req *dto.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		Status:   models.MessageUnread,
	}
	if err := requireText(map[string]string{"full_name": msg.FullName, "message": msg.Message}); err != nil {
		return nil, err
	}
	if !validation.IsEmail(msg.Email) {
		return nil, apperrors.NewValidationError("a valid email is required")
	}

	saved, err := s.stores.ContactMessages.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "contact", func(to string) error {
		return s.notifier.NotifyContactMessage(ctx, to, email.ContactNotice{
			FullName: saved.FullName,
			Email:    saved.Email,
			Subject:  saved.Subject,
			Message:  saved.Message,
		})
	})
	return saved, nil
}

// SubmitTestimonial stores a testimonial for moderation
func (s *SubmissionService) SubmitTestimonial(ctx context.Context, req *dto.TestimonialRequest) (*models.Testimonial, error) {
	if err := checkSubmission(req.FullName, req.Content, req.Email, req.Rating, req.Consent); err != nil {
		return nil, err
	}

	return s.stores.Testimonials.Create(ctx, &models.Testimonial{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Content:  strings.TrimSpace(req.Content),
		Rating:   req.Rating,
		Status:   models.StatusPending,
		Consent:  true,
	})
}

// SubmitReview stores a review of the program with slug for moderation
func (s *SubmissionService) SubmitReview(ctx context.Context, slug string, req *dto.ReviewRequest) (*models.ProgramReview, error) {
	program, err := s.content.ProgramBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := checkSubmission(req.FullName, req.Content, req.Email, req.Rating, req.Consent); err != nil {
		return nil, err
	}

	return s.stores.ProgramReviews.Create(ctx, &models.ProgramReview{
		ProgramID: program.ID,
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Content:   strings.TrimSpace(req.Content),
		Rating:    req.Rating,
		Status:    models.StatusPending,
		Consent:   true,
	})
}

// Apply stores a mentorship application for the current cohort
func (s *SubmissionService) Apply(ctx context.Context, req *dto.MentorshipApplicationRequest) (*models.MentorshipApplication, error) {
	if err := s.content.requireFeature(ctx, "mentorship", mentorshipEnabled); err != nil {
		return nil, err
	}

	app := &models.MentorshipApplication{
		FullName:        strings.TrimSpace(req.FullName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		FieldOfInterest: strings.TrimSpace(req.FieldOfInterest),
		Bio:             strings.TrimSpace(req.Bio),
		CohortYear:      helpers.CurrentYear(s.now()),
		IsActive:        true,
		Status:          models.StatusPending,
	}
	if err := requireText(map[string]string{"full_name": app.FullName, "field_of_interest": app.FieldOfInterest}); err != nil {
		return nil, err
	}
	if !validation.IsEmail(app.Email) {
		return nil, apperrors.NewValidationError("a valid email is required")
	}

	saved, err := s.stores.MentorshipApplications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "mentorship application", func(to string) error {
		return s.notifier.NotifyMentorshipApplication(ctx, to, email.ApplicationNotice{
			FullName:        saved.FullName,
			Email:           saved.Email,
			FieldOfInterest: saved.FieldOfInterest,
			CohortYear:      saved.CohortYear,
		})
	})
	return saved, nil
}

// notify sends a best effort admin notification. Failures are only logged.
func (s *SubmissionService) notify(ctx context.Context, kind string, send func(to string) error) {
	if s.notifier == nil {
		return
	}

	to := s.notifyTo
	if settings, err := s.content.Settings(ctx); err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("Could not read settings for notification recipient")
	} else if settings.ContactEmail != "" {
		to = settings.ContactEmail
	}

	if err := send(to); err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Str("to", to).Msg("Failed to send notification")
	}
}

func checkSubmission(fullName, content, emailAddr string, rating *int, consent bool) error {
	if err := requireText(map[string]string{"full_name": fullName, "content": content}); err != nil {
		return err
	}
	if e := strings.TrimSpace(emailAddr); e != "" && !validation.IsEmail(strings.ToLower(e)) {
		return apperrors.NewValidationError("email is not valid")
	}
	if rating != nil && !validation.IsRating(*rating) {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if !consent {
		return apperrors.NewValidationError("consent is required to publish a submission")
	}
	return nil
}

// requireText fails on the first blank field, in name order
func requireText(fields map[string]string) error {
	missing := make([]string, 0, len(fields))
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, missing[0]+" is required").
		WithDetails(map[string]interface{}{"missing": missing})
}
