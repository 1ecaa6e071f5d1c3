package repositories

import (
	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	Programs               *ResourceRepository[models.Program]
	ProgramCategories      *ResourceRepository[models.ProgramCategory]
	ProgramMaterials       *ResourceRepository[models.ProgramMaterial]
	ProgramReviews         *ResourceRepository[models.ProgramReview]
	Mentors                *ResourceRepository[models.Mentor]
	Mentees                *ResourceRepository[models.Mentee]
	MentorshipApplications *ResourceRepository[models.MentorshipApplication]
	TeamMembers            *ResourceRepository[models.TeamMember]
	Testimonials           *ResourceRepository[models.Testimonial]
	Research               *ResourceRepository[models.Research]
	Media                  *ResourceRepository[models.Media]
	Collaborations         *ResourceRepository[models.Collaboration]
	ContactMessages        *ResourceRepository[models.ContactMessage]
	Admins                 *ResourceRepository[models.Admin]
	AboutSections          *ResourceRepository[models.AboutSection]
	AboutGallery           *ResourceRepository[models.AboutGalleryImage]

	AdminLookup *AdminRepository
	Settings    *SettingsRepository
	Mentorship  *MentorshipRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool

	r := &Repositories{
		Programs:               NewResourceRepository(pool, ProgramSchema),
		ProgramCategories:      NewResourceRepository(pool, ProgramCategorySchema),
		ProgramMaterials:       NewResourceRepository(pool, ProgramMaterialSchema),
		ProgramReviews:         NewResourceRepository(pool, ProgramReviewSchema),
		Mentors:                NewResourceRepository(pool, MentorSchema),
		Mentees:                NewResourceRepository(pool, MenteeSchema),
		MentorshipApplications: NewResourceRepository(pool, MentorshipApplicationSchema),
		TeamMembers:            NewResourceRepository(pool, TeamMemberSchema),
		Testimonials:           NewResourceRepository(pool, TestimonialSchema),
		Research:               NewResourceRepository(pool, ResearchSchema),
		Media:                  NewResourceRepository(pool, MediaSchema),
		Collaborations:         NewResourceRepository(pool, CollaborationSchema),
		ContactMessages:        NewResourceRepository(pool, ContactMessageSchema),
		Admins:                 NewResourceRepository(pool, AdminSchema),
		AboutSections:          NewResourceRepository(pool, AboutSectionSchema),
		AboutGallery:           NewResourceRepository(pool, AboutGallerySchema),

		AdminLookup: NewAdminRepository(pool),
		Settings:    NewSettingsRepository(pool),
	}
	r.Mentorship = NewMentorshipRepository(database, r.MentorshipApplications, r.Mentees)
	return r
}
