package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/acemedformatics/acemed/internal/pkg/slug"
	"github.com/acemedformatics/acemed/internal/pkg/validation"
)

// Admin resource names
const (
	ResourcePrograms          = "programs"
	ResourceProgramCategories = "program-categories"
	ResourceProgramMaterials  = "program-materials"
	ResourceMentors           = "mentors"
	ResourceMentees           = "mentees"
	ResourceTeam              = "team"
	ResourceTestimonials      = "testimonials"
	ResourceReviews           = "reviews"
	ResourceResearch          = "research"
	ResourceMedia             = "media"
	ResourceCollaborations    = "collaborations"
	ResourceContactMessages   = "contact-messages"
	ResourceAboutSections     = "about-sections"
	ResourceAboutGallery      = "about-gallery"
	ResourceAdmins            = "admins"
)

func requireName(field, value string) error {
	if !validation.NewStringValidation(value).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("%s is required and must be %d-%d characters", field, validation.NameMinLength, validation.NameMaxLength)).
			WithDetails(map[string]interface{}{"field": field})
	}
	return nil
}

func optionalEmail(value string) error {
	if value != "" && !validation.IsEmail(value) {
		return apperrors.NewValidationError("email is not valid")
	}
	return nil
}

func optionalURL(field, value string) error {
	if !validation.IsOptionalURL(value) {
		return apperrors.NewValidationError(field + " must be an http(s) url")
	}
	return nil
}

func optionalRating(r *int) error {
	if r != nil && !validation.IsRating(*r) {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

func validSlug(value string) error {
	if !validation.IsSlug(value) {
		return apperrors.NewValidationError(fmt.Sprintf("slug %q must be lowercase letters, digits and hyphens", value))
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func touched(existing bool, now time.Time) *time.Time {
	if !existing {
		return nil
	}
	t := now.UTC()
	return &t
}

func moderationStatus(status string) bool { return models.ModerationStatus(status).Valid() }
func messageStatus(status string) bool    { return models.MessageStatus(status).Valid() }

// ProgramDefinition covers programs
func ProgramDefinition() Definition[models.Program] {
	return Definition[models.Program]{
		Name: ResourcePrograms,
		Prepare: func(p, existing *models.Program, now time.Time) {
			p.Title = strings.TrimSpace(p.Title)
			if strings.TrimSpace(p.Slug) == "" {
				p.Slug = slug.Make(p.Title)
			}
			if p.Status == "" {
				p.Status = models.ProgramUpcoming
			}
			if p.CategoryID != nil && *p.CategoryID <= 0 {
				p.CategoryID = nil
			}
			p.UpdatedAt = touched(existing != nil, now)
		},
		Validate: func(p *models.Program) error {
			return firstError(
				requireName("title", p.Title),
				validSlug(p.Slug),
				statusError(p.Status.Valid(), string(p.Status)),
			)
		},
		Invalidates: []string{CachePrograms, CacheReviews, CacheSitemap},
	}
}

// ProgramCategoryDefinition covers program categories
func ProgramCategoryDefinition() Definition[models.ProgramCategory] {
	return Definition[models.ProgramCategory]{
		Name: ResourceProgramCategories,
		Prepare: func(c, _ *models.ProgramCategory, _ time.Time) {
			c.Name = strings.TrimSpace(c.Name)
			if strings.TrimSpace(c.Slug) == "" {
				c.Slug = slug.Make(c.Name)
			}
		},
		Validate: func(c *models.ProgramCategory) error {
			return firstError(requireName("name", c.Name), validSlug(c.Slug))
		},
		Invalidates: []string{CacheCategories},
	}
}

// ProgramMaterialDefinition covers materials edited as links
func ProgramMaterialDefinition() Definition[models.ProgramMaterial] {
	return Definition[models.ProgramMaterial]{
		Name: ResourceProgramMaterials,
		Prepare: func(m, _ *models.ProgramMaterial, _ time.Time) {
			m.Title = strings.TrimSpace(m.Title)
			m.FileURL = strings.TrimSpace(m.FileURL)
		},
		Validate: func(m *models.ProgramMaterial) error {
			if m.ProgramID <= 0 {
				return apperrors.NewValidationError("program_id is required")
			}
			if m.FileURL == "" {
				return apperrors.NewValidationError("file_url is required")
			}
			return firstError(requireName("title", m.Title), optionalURL("file_url", m.FileURL))
		},
		Invalidates: []string{CachePrograms},
	}
}

// MentorDefinition covers mentors
func MentorDefinition() Definition[models.Mentor] {
	return Definition[models.Mentor]{
		Name: ResourceMentors,
		Prepare: func(m, _ *models.Mentor, _ time.Time) {
			m.FullName = strings.TrimSpace(m.FullName)
			m.Email = strings.ToLower(strings.TrimSpace(m.Email))
		},
		Validate: func(m *models.Mentor) error {
			return firstError(requireName("full_name", m.FullName), optionalEmail(m.Email))
		},
		Image: &ImageSlot[models.Mentor]{
			Folder: "mentors",
			Get:    func(m *models.Mentor) (string, string) { return m.ProfileImageURL, "" },
			Set:    func(m *models.Mentor, url, _ string) { m.ProfileImageURL = url },
		},
		Active:      func(m *models.Mentor) bool { return m.IsActive },
		Invalidates: []string{CacheMentorship},
	}
}

// MenteeDefinition covers mentees
func MenteeDefinition() Definition[models.Mentee] {
	return Definition[models.Mentee]{
		Name: ResourceMentees,
		Prepare: func(m, _ *models.Mentee, now time.Time) {
			m.FullName = strings.TrimSpace(m.FullName)
			m.Email = strings.ToLower(strings.TrimSpace(m.Email))
			if m.CohortYear == 0 {
				m.CohortYear = helpers.CurrentYear(now)
			}
		},
		Validate: func(m *models.Mentee) error {
			return firstError(requireName("full_name", m.FullName), optionalEmail(m.Email))
		},
		Image: &ImageSlot[models.Mentee]{
			Folder: "mentees",
			Get:    func(m *models.Mentee) (string, string) { return m.ProfileImageURL, "" },
			Set:    func(m *models.Mentee, url, _ string) { m.ProfileImageURL = url },
		},
		Active:      func(m *models.Mentee) bool { return m.IsActive },
		Invalidates: []string{CacheMentorship},
	}
}

// TeamMemberDefinition covers the team page
func TeamMemberDefinition() Definition[models.TeamMember] {
	return Definition[models.TeamMember]{
		Name: ResourceTeam,
		Prepare: func(m, _ *models.TeamMember, _ time.Time) {
			m.FullName = strings.TrimSpace(m.FullName)
			m.Role = strings.TrimSpace(m.Role)
			if m.Socials == nil {
				m.Socials = map[string]string{}
			}
		},
		Validate: func(m *models.TeamMember) error {
			if err := requireName("full_name", m.FullName); err != nil {
				return err
			}
			for network, link := range m.Socials {
				if err := optionalURL("socials."+network, link); err != nil {
					return err
				}
			}
			return nil
		},
		Image: &ImageSlot[models.TeamMember]{
			Folder: "team",
			Get:    func(m *models.TeamMember) (string, string) { return m.ProfileImageURL, "" },
			Set:    func(m *models.TeamMember, url, _ string) { m.ProfileImageURL = url },
		},
		Active:      func(m *models.TeamMember) bool { return m.IsActive },
		Invalidates: []string{CacheTeam},
	}
}

// TestimonialDefinition covers testimonials
func TestimonialDefinition() Definition[models.Testimonial] {
	return Definition[models.Testimonial]{
		Name: ResourceTestimonials,
		Prepare: func(t, _ *models.Testimonial, _ time.Time) {
			t.FullName = strings.TrimSpace(t.FullName)
			t.Email = strings.ToLower(strings.TrimSpace(t.Email))
			if t.Status == "" {
				t.Status = models.StatusPending
			}
		},
		Validate: func(t *models.Testimonial) error {
			return firstError(
				requireName("full_name", t.FullName),
				requireText(map[string]string{"content": t.Content}),
				optionalEmail(t.Email),
				optionalRating(t.Rating),
				statusError(t.Status.Valid(), string(t.Status)),
			)
		},
		ValidStatus: moderationStatus,
		Invalidates: []string{CacheTestimonials},
	}
}

// ProgramReviewDefinition covers program reviews
func ProgramReviewDefinition() Definition[models.ProgramReview] {
	return Definition[models.ProgramReview]{
		Name: ResourceReviews,
		Prepare: func(r, _ *models.ProgramReview, _ time.Time) {
			r.FullName = strings.TrimSpace(r.FullName)
			r.Email = strings.ToLower(strings.TrimSpace(r.Email))
			if r.Status == "" {
				r.Status = models.StatusPending
			}
		},
		Validate: func(r *models.ProgramReview) error {
			if r.ProgramID <= 0 {
				return apperrors.NewValidationError("program_id is required")
			}
			return firstError(
				requireName("full_name", r.FullName),
				requireText(map[string]string{"content": r.Content}),
				optionalEmail(r.Email),
				optionalRating(r.Rating),
				statusError(r.Status.Valid(), string(r.Status)),
			)
		},
		ValidStatus: moderationStatus,
		Invalidates: []string{CacheReviews},
	}
}

// ResearchDefinition covers research papers
func ResearchDefinition() Definition[models.Research] {
	return Definition[models.Research]{
		Name: ResourceResearch,
		Prepare: func(r, _ *models.Research, _ time.Time) {
			r.Title = strings.TrimSpace(r.Title)
			r.Authors = strings.TrimSpace(r.Authors)
			r.DocumentURL = strings.TrimSpace(r.DocumentURL)
		},
		Validate: func(r *models.Research) error {
			maxYear := helpers.CurrentYear(time.Now()) + 1
			if !validation.NewNumericValidation(r.PublicationYear).WithMin(1900).WithMax(maxYear).Validate() {
				return apperrors.NewValidationError(fmt.Sprintf("publication_year must be between 1900 and %d", maxYear))
			}
			return firstError(
				requireName("title", r.Title),
				requireText(map[string]string{"authors": r.Authors}),
				optionalURL("document_url", r.DocumentURL),
			)
		},
		Invalidates: []string{CacheResearch},
	}
}

// MediaDefinition covers press, news, events and announcements.
// published_at is stamped the first time an item is published and kept afterwards.
func MediaDefinition() Definition[models.Media] {
	return Definition[models.Media]{
		Name: ResourceMedia,
		Prepare: func(m, existing *models.Media, now time.Time) {
			m.Title = strings.TrimSpace(m.Title)
			if strings.TrimSpace(m.Slug) == "" {
				m.Slug = slug.Make(m.Title)
			}
			if m.Status == "" {
				m.Status = models.PublishDraft
			}

			m.PublishedAt = nil
			if existing != nil && existing.PublishedAt != nil {
				m.PublishedAt = existing.PublishedAt
			}
			if m.Status == models.PublishPublished && m.PublishedAt == nil {
				t := now.UTC()
				m.PublishedAt = &t
			}
			m.UpdatedAt = touched(existing != nil, now)
		},
		Validate: func(m *models.Media) error {
			if !m.Type.Valid() {
				return apperrors.NewValidationError(fmt.Sprintf("type %q must be press, news, event or announcement", m.Type))
			}
			return firstError(
				requireName("title", m.Title),
				validSlug(m.Slug),
				statusError(m.Status.Valid(), string(m.Status)),
			)
		},
		Image: &ImageSlot[models.Media]{
			Folder: "media",
			Get:    func(m *models.Media) (string, string) { return m.ImageURL, m.ImagePublicID },
			Set: func(m *models.Media, url, publicID string) {
				m.ImageURL = url
				m.ImagePublicID = publicID
			},
		},
		Touch:       true,
		Invalidates: []string{CacheMedia},
	}
}

// CollaborationDefinition covers partner organisations
func CollaborationDefinition() Definition[models.Collaboration] {
	return Definition[models.Collaboration]{
		Name: ResourceCollaborations,
		Prepare: func(c, _ *models.Collaboration, _ time.Time) {
			c.Name = strings.TrimSpace(c.Name)
			c.WebsiteURL = strings.TrimSpace(c.WebsiteURL)
		},
		Validate: func(c *models.Collaboration) error {
			return firstError(requireName("name", c.Name), optionalURL("website_url", c.WebsiteURL))
		},
		Image: &ImageSlot[models.Collaboration]{
			Folder: "collaborations",
			Get:    func(c *models.Collaboration) (string, string) { return c.LogoURL, "" },
			Set:    func(c *models.Collaboration, url, _ string) { c.LogoURL = url },
		},
		Active:      func(c *models.Collaboration) bool { return c.IsActive },
		Invalidates: []string{CacheCollaborations},
	}
}

// ContactMessageDefinition covers the contact inbox
func ContactMessageDefinition() Definition[models.ContactMessage] {
	return Definition[models.ContactMessage]{
		Name: ResourceContactMessages,
		Prepare: func(m, existing *models.ContactMessage, now time.Time) {
			m.Email = strings.ToLower(strings.TrimSpace(m.Email))
			if m.Status == "" {
				m.Status = models.MessageUnread
			}
			m.UpdatedAt = touched(existing != nil, now)
		},
		Validate: func(m *models.ContactMessage) error {
			if !validation.IsEmail(m.Email) {
				return apperrors.NewValidationError("a valid email is required")
			}
			return firstError(
				requireName("full_name", m.FullName),
				requireText(map[string]string{"message": m.Message}),
				statusError(m.Status.Valid(), string(m.Status)),
			)
		},
		ValidStatus: messageStatus,
		Touch:       true,
	}
}

// AboutSectionDefinition covers the about page blocks
func AboutSectionDefinition() Definition[models.AboutSection] {
	return Definition[models.AboutSection]{
		Name: ResourceAboutSections,
		Prepare: func(s, _ *models.AboutSection, _ time.Time) {
			s.Title = strings.TrimSpace(s.Title)
			if s.Type == "" {
				s.Type = "text"
			}
			if s.Items == nil {
				s.Items = []string{}
			}
		},
		Validate: func(s *models.AboutSection) error {
			return requireName("title", s.Title)
		},
		Invalidates: []string{CacheAbout},
	}
}

// AboutGalleryDefinition covers the about page photos
func AboutGalleryDefinition() Definition[models.AboutGalleryImage] {
	return Definition[models.AboutGalleryImage]{
		Name: ResourceAboutGallery,
		Prepare: func(g, _ *models.AboutGalleryImage, _ time.Time) {
			g.URL = strings.TrimSpace(g.URL)
			g.Alt = strings.TrimSpace(g.Alt)
		},
		Validate: func(g *models.AboutGalleryImage) error {
			return optionalURL("url", g.URL)
		},
		Image: &ImageSlot[models.AboutGalleryImage]{
			Folder:   "about",
			Required: true,
			Get:      func(g *models.AboutGalleryImage) (string, string) { return g.URL, "" },
			Set:      func(g *models.AboutGalleryImage, url, _ string) { g.URL = url },
		},
		Invalidates: []string{CacheAbout},
	}
}

// AdminDefinition covers the admin allow list
func AdminDefinition() Definition[models.Admin] {
	return Definition[models.Admin]{
		Name: ResourceAdmins,
		Prepare: func(a, _ *models.Admin, _ time.Time) {
			a.Email = strings.ToLower(strings.TrimSpace(a.Email))
		},
		Validate: func(a *models.Admin) error {
			if !validation.IsEmail(a.Email) {
				return apperrors.NewValidationError("a valid email is required")
			}
			return nil
		},
	}
}

func statusError(valid bool, status string) error {
	if valid {
		return nil
	}
	return apperrors.NewValidationError(fmt.Sprintf("status %q is not valid", status))
}
