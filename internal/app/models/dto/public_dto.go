package dto

import "github.com/acemedformatics/acemed/internal/app/models"

// ResearchListResponse is the research page: filtered papers plus every year on file
type ResearchListResponse struct {
	Items []*models.Research `json:"items"`
	Years []int              `json:"years"`
}

// MentorshipResponse is the mentorship page
type MentorshipResponse struct {
	Mentors []*models.Mentor `json:"mentors"`
	Mentees []*models.Mentee `json:"mentees"`
}

// ProgramMaterialsResponse is a program with its downloadable materials
type ProgramMaterialsResponse struct {
	Program   *models.Program           `json:"program"`
	Materials []*models.ProgramMaterial `json:"materials"`
}

// AboutResponse is the about page
type AboutResponse struct {
	Sections []*models.AboutSection      `json:"sections"`
	Gallery  []*models.AboutGalleryImage `json:"gallery"`
}

// PublicSettings is the part of the settings row visitors may read
type PublicSettings struct {
	SiteName         string `json:"site_name"`
	EnableMentorship bool   `json:"enable_mentorship"`
	EnablePrograms   bool   `json:"enable_programs"`
	EnableResearch   bool   `json:"enable_research"`
}

// NewPublicSettings strips the private fields from s
func NewPublicSettings(s *models.Settings) PublicSettings {
	return PublicSettings{
		SiteName:         s.SiteName,
		EnableMentorship: s.EnableMentorship,
		EnablePrograms:   s.EnablePrograms,
		EnableResearch:   s.EnableResearch,
	}
}

// ContactRequest is the contact form
type ContactRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Subject  string `json:"subject"`
	Message  string `json:"message" binding:"required"`
}

// TestimonialRequest is the testimonial submission form
type TestimonialRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Content  string `json:"content" binding:"required"`
	Rating   *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Consent  bool   `json:"consent"`
}

// ReviewRequest is a program review submission
type ReviewRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Content  string `json:"content" binding:"required"`
	Rating   *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Consent  bool   `json:"consent"`
}

// MentorshipApplicationRequest is the mentorship application form
type MentorshipApplicationRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	FieldOfInterest string `json:"field_of_interest" binding:"required"`
	Bio             string `json:"bio"`
}
