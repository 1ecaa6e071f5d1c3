package repositories

import "github.com/acemedformatics/acemed/internal/app/models"

// Table names
const (
	TablePrograms               = "programs"
	TableProgramCategories      = "program_categories"
	TableProgramMaterials       = "program_materials"
	TableProgramReviews         = "program_reviews"
	TableMentors                = "mentors"
	TableMentees                = "mentees"
	TableMentorshipApplications = "mentorship_applications"
	TableTeamMembers            = "team_members"
	TableTestimonials           = "testimonials"
	TableResearch               = "research"
	TableMedia                  = "media"
	TableCollaborations         = "collaborations"
	TableContactMessages        = "contact_messages"
	TableAdmins                 = "admins"
	TableAboutSections          = "about_sections"
	TableAboutGallery           = "about_gallery"
	TableSettings               = "admin_settings"
)

var ProgramSchema = Schema[models.Program]{
	Table:        TablePrograms,
	DefaultOrder: []string{"created_at ASC", "id ASC"},
	Values: func(p *models.Program) map[string]interface{} {
		return map[string]interface{}{
			"title":       p.Title,
			"slug":        p.Slug,
			"description": p.Description,
			"audience":    p.Audience,
			"category_id": p.CategoryID,
			"status":      string(p.Status),
			"updated_at":  p.UpdatedAt,
		}
	},
}

var ProgramCategorySchema = Schema[models.ProgramCategory]{
	Table:        TableProgramCategories,
	DefaultOrder: []string{"created_at ASC", "id ASC"},
	Values: func(c *models.ProgramCategory) map[string]interface{} {
		return map[string]interface{}{
			"name":        c.Name,
			"slug":        c.Slug,
			"description": c.Description,
		}
	},
}

var ProgramMaterialSchema = Schema[models.ProgramMaterial]{
	Table:        TableProgramMaterials,
	DefaultOrder: []string{"created_at ASC", "id ASC"},
	Values: func(m *models.ProgramMaterial) map[string]interface{} {
		return map[string]interface{}{
			"program_id":  m.ProgramID,
			"title":       m.Title,
			"description": m.Description,
			"file_url":    m.FileURL,
		}
	},
}

var ProgramReviewSchema = Schema[models.ProgramReview]{
	Table:        TableProgramReviews,
	DefaultOrder: []string{"created_at DESC", "id DESC"},
	Values: func(r *models.ProgramReview) map[string]interface{} {
		return map[string]interface{}{
			"program_id": r.ProgramID,
			"full_name":  r.FullName,
			"email":      r.Email,
			"content":    r.Content,
			"rating":     r.Rating,
			"status":     string(r.Status),
			"consent":    r.Consent,
		}
	},
}

var MentorSchema = Schema[models.Mentor]{
	Table:        TableMentors,
	DefaultOrder: []string{"id ASC"},
	Values: func(m *models.Mentor) map[string]interface{} {
		return map[string]interface{}{
			"full_name":         m.FullName,
			"email":             m.Email,
			"expertise_area":    m.ExpertiseArea,
			"bio":               m.Bio,
			"profile_image_url": m.ProfileImageURL,
			"is_active":         m.IsActive,
		}
	},
}

var MenteeSchema = Schema[models.Mentee]{
	Table:        TableMentees,
	DefaultOrder: []string{"id ASC"},
	Values: func(m *models.Mentee) map[string]interface{} {
		return map[string]interface{}{
			"full_name":         m.FullName,
			"email":             m.Email,
			"phone":             m.Phone,
			"field_of_interest": m.FieldOfInterest,
			"bio":               m.Bio,
			"profile_image_url": m.ProfileImageURL,
			"cohort_year":       m.CohortYear,
			"is_active":         m.IsActive,
		}
	},
}

var MentorshipApplicationSchema = Schema[models.MentorshipApplication]{
	Table:        TableMentorshipApplications,
	DefaultOrder: []string{"id ASC"},
	Values: func(a *models.MentorshipApplication) map[string]interface{} {
		return map[string]interface{}{
			"full_name":         a.FullName,
			"email":             a.Email,
			"phone":             a.Phone,
			"field_of_interest": a.FieldOfInterest,
			"bio":               a.Bio,
			"profile_image_url": a.ProfileImageURL,
			"cohort_year":       a.CohortYear,
			"is_active":         a.IsActive,
			"status":            string(a.Status),
		}
	},
}

var TeamMemberSchema = Schema[models.TeamMember]{
	Table:        TableTeamMembers,
	DefaultOrder: []string{"display_order ASC", "id ASC"},
	Values: func(m *models.TeamMember) map[string]interface{} {
		socials := m.Socials
		if socials == nil {
			socials = map[string]string{}
		}
		return map[string]interface{}{
			"full_name":         m.FullName,
			"role":              m.Role,
			"bio":               m.Bio,
			"profile_image_url": m.ProfileImageURL,
			"display_order":     m.DisplayOrder,
			"socials":           socials,
			"is_active":         m.IsActive,
		}
	},
}

var TestimonialSchema = Schema[models.Testimonial]{
	Table:        TableTestimonials,
	DefaultOrder: []string{"created_at DESC", "id DESC"},
	Values: func(t *models.Testimonial) map[string]interface{} {
		return map[string]interface{}{
			"full_name": t.FullName,
			"email":     t.Email,
			"content":   t.Content,
			"rating":    t.Rating,
			"status":    string(t.Status),
			"consent":   t.Consent,
		}
	},
}

var ResearchSchema = Schema[models.Research]{
	Table:        TableResearch,
	DefaultOrder: []string{"publication_year DESC", "id DESC"},
	Values: func(r *models.Research) map[string]interface{} {
		return map[string]interface{}{
			"title":            r.Title,
			"authors":          r.Authors,
			"abstract":         r.Abstract,
			"publication_year": r.PublicationYear,
			"document_url":     r.DocumentURL,
		}
	},
}

var MediaSchema = Schema[models.Media]{
	Table:        TableMedia,
	DefaultOrder: []string{"created_at DESC", "id DESC"},
	Values: func(m *models.Media) map[string]interface{} {
		return map[string]interface{}{
			"title":           m.Title,
			"slug":            m.Slug,
			"summary":         m.Summary,
			"content":         m.Content,
			"type":            string(m.Type),
			"featured":        m.Featured,
			"status":          string(m.Status),
			"image_url":       m.ImageURL,
			"image_public_id": m.ImagePublicID,
			"published_at":    m.PublishedAt,
			"updated_at":      m.UpdatedAt,
		}
	},
}

var CollaborationSchema = Schema[models.Collaboration]{
	Table:        TableCollaborations,
	DefaultOrder: []string{"display_order ASC", "id ASC"},
	Values: func(c *models.Collaboration) map[string]interface{} {
		return map[string]interface{}{
			"name":          c.Name,
			"description":   c.Description,
			"logo_url":      c.LogoURL,
			"website_url":   c.WebsiteURL,
			"display_order": c.DisplayOrder,
			"is_active":     c.IsActive,
		}
	},
}

var ContactMessageSchema = Schema[models.ContactMessage]{
	Table:        TableContactMessages,
	DefaultOrder: []string{"created_at DESC", "id DESC"},
	Values: func(m *models.ContactMessage) map[string]interface{} {
		return map[string]interface{}{
			"full_name":  m.FullName,
			"email":      m.Email,
			"subject":    m.Subject,
			"message":    m.Message,
			"status":     string(m.Status),
			"updated_at": m.UpdatedAt,
		}
	},
}

var AdminSchema = Schema[models.Admin]{
	Table:        TableAdmins,
	DefaultOrder: []string{"id ASC"},
	Values: func(a *models.Admin) map[string]interface{} {
		return map[string]interface{}{
			"email": a.Email,
		}
	},
}

var AboutSectionSchema = Schema[models.AboutSection]{
	Table:        TableAboutSections,
	DefaultOrder: []string{"order_index ASC", "id ASC"},
	Values: func(s *models.AboutSection) map[string]interface{} {
		items := s.Items
		if items == nil {
			items = []string{}
		}
		return map[string]interface{}{
			"title":       s.Title,
			"content":     s.Content,
			"type":        s.Type,
			"items":       items,
			"order_index": s.OrderIndex,
		}
	},
}

var AboutGallerySchema = Schema[models.AboutGalleryImage]{
	Table:        TableAboutGallery,
	DefaultOrder: []string{"display_order ASC", "id ASC"},
	Values: func(g *models.AboutGalleryImage) map[string]interface{} {
		return map[string]interface{}{
			"url":           g.URL,
			"alt":           g.Alt,
			"display_order": g.DisplayOrder,
		}
	},
}
