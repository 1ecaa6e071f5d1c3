package services

import (
	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/repositories"
)

// Stores is every table the services read or write
type Stores struct {
	Programs               Store[models.Program]
	ProgramCategories      Store[models.ProgramCategory]
	ProgramMaterials       Store[models.ProgramMaterial]
	ProgramReviews         Store[models.ProgramReview]
	Mentors                Store[models.Mentor]
	Mentees                Store[models.Mentee]
	MentorshipApplications Store[models.MentorshipApplication]
	TeamMembers            Store[models.TeamMember]
	Testimonials           Store[models.Testimonial]
	Research               Store[models.Research]
	Media                  Store[models.Media]
	Collaborations         Store[models.Collaboration]
	ContactMessages        Store[models.ContactMessage]
	Admins                 Store[models.Admin]
	AboutSections          Store[models.AboutSection]
	AboutGallery           Store[models.AboutGalleryImage]
	Settings               SettingsStore
}

// NewStores exposes the repositories through the service interfaces
func NewStores(r *repositories.Repositories) Stores {
	return Stores{
		Programs:               r.Programs,
		ProgramCategories:      r.ProgramCategories,
		ProgramMaterials:       r.ProgramMaterials,
		ProgramReviews:         r.ProgramReviews,
		Mentors:                r.Mentors,
		Mentees:                r.Mentees,
		MentorshipApplications: r.MentorshipApplications,
		TeamMembers:            r.TeamMembers,
		Testimonials:           r.Testimonials,
		Research:               r.Research,
		Media:                  r.Media,
		Collaborations:         r.Collaborations,
		ContactMessages:        r.ContactMessages,
		Admins:                 r.Admins,
		AboutSections:          r.AboutSections,
		AboutGallery:           r.AboutGallery,
		Settings:               r.Settings,
	}
}
