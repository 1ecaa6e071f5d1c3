package services

import (
	"context"
	"time"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/repositories"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// ApprovalResult is an approved application and the mentee created from it
type ApprovalResult struct {
	Application *models.MentorshipApplication `json:"application"`
	Mentee      *models.Mentee                `json:"mentee"`
}

// MentorshipService reviews mentorship applications
type MentorshipService struct {
	applications Store[models.MentorshipApplication]
	reviewer     ApplicationReviewer
	cache        cache.Cache
	logger       zerolog.Logger
	now          func() time.Time
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(applications Store[models.MentorshipApplication], reviewer ApplicationReviewer, c cache.Cache, logger zerolog.Logger) *MentorshipService {
	if c == nil {
		c = cache.Nop{}
	}
	return &MentorshipService{
		applications: applications,
		reviewer:     reviewer,
		cache:        c,
		logger:       logger,
		now:          time.Now,
	}
}

// PendingApplications lists the applications still waiting for review
func (s *MentorshipService) PendingApplications(ctx context.Context) ([]*models.MentorshipApplication, error) {
	return s.applications.List(ctx, repositories.Query{
		Filters: map[string]interface{}{
			"status":    string(models.StatusPending),
			"is_active": true,
		},
	})
}

// Approve accepts application id into the current year's cohort
func (s *MentorshipService) Approve(ctx context.Context, id int64) (*ApprovalResult, error) {
	app, mentee, err := s.reviewer.Approve(ctx, id, helpers.CurrentYear(s.now()))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", id).Int64("menteeID", mentee.ID).Msg("Mentorship application approved")
	invalidate(ctx, s.cache, CacheMentorship)
	return &ApprovalResult{Application: app, Mentee: mentee}, nil
}

// Reject declines application id
func (s *MentorshipService) Reject(ctx context.Context, id int64) (*models.MentorshipApplication, error) {
	app, err := s.reviewer.Reject(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("applicationID", id).Msg("Mentorship application rejected")
	return app, nil
}
