package services

import (
	"context"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"golang.org/x/sync/errgroup"
)

// DashboardService summarises the tables for the admin home page
type DashboardService struct {
	stores Stores
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stores Stores) *DashboardService {
	return &DashboardService{stores: stores}
}

type dashboardCount struct {
	target  *int64
	counter Counter
	filters map[string]interface{}
}

// Summary counts every table plus the queues waiting for an admin
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	tables := map[string]Counter{
		ResourcePrograms:          s.stores.Programs,
		ResourceProgramCategories: s.stores.ProgramCategories,
		ResourceProgramMaterials:  s.stores.ProgramMaterials,
		ResourceReviews:           s.stores.ProgramReviews,
		ResourceMentors:           s.stores.Mentors,
		ResourceMentees:           s.stores.Mentees,
		"mentorship-applications": s.stores.MentorshipApplications,
		ResourceTeam:              s.stores.TeamMembers,
		ResourceTestimonials:      s.stores.Testimonials,
		ResourceResearch:          s.stores.Research,
		ResourceMedia:             s.stores.Media,
		ResourceCollaborations:    s.stores.Collaborations,
		ResourceContactMessages:   s.stores.ContactMessages,
		ResourceAboutSections:     s.stores.AboutSections,
		ResourceAboutGallery:      s.stores.AboutGallery,
		ResourceAdmins:            s.stores.Admins,
	}

	resp := &dto.DashboardResponse{Counts: make(map[string]int64, len(tables))}
	totals := make(map[string]*int64, len(tables))
	jobs := make([]dashboardCount, 0, len(tables)+4)
	for name, counter := range tables {
		n := new(int64)
		totals[name] = n
		jobs = append(jobs, dashboardCount{target: n, counter: counter})
	}

	pending := map[string]interface{}{"status": string(models.StatusPending)}
	jobs = append(jobs,
		dashboardCount{target: &resp.PendingTestimonials, counter: s.stores.Testimonials, filters: pending},
		dashboardCount{target: &resp.PendingReviews, counter: s.stores.ProgramReviews, filters: pending},
		dashboardCount{target: &resp.PendingApplications, counter: s.stores.MentorshipApplications, filters: pending},
		dashboardCount{target: &resp.UnreadMessages, counter: s.stores.ContactMessages, filters: map[string]interface{}{"status": string(models.MessageUnread)}},
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			n, err := job.counter.Count(gctx, job.filters)
			if err != nil {
				return err
			}
			*job.target = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for name, n := range totals {
		resp.Counts[name] = *n
	}
	return resp, nil
}
