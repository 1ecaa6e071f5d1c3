package models

import "time"

// Mentor is an experienced professional in the mentorship program
type Mentor struct {
	ID              int64     `json:"id" db:"id"`
	FullName        string    `json:"full_name" db:"full_name"`
	Email           string    `json:"email" db:"email"`
	ExpertiseArea   string    `json:"expertise_area" db:"expertise_area"`
	Bio             string    `json:"bio" db:"bio"`
	ProfileImageURL string    `json:"profile_image_url" db:"profile_image_url"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Mentee is an accepted participant of a mentorship cohort
type Mentee struct {
	ID              int64     `json:"id" db:"id"`
	FullName        string    `json:"full_name" db:"full_name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	FieldOfInterest string    `json:"field_of_interest" db:"field_of_interest"`
	Bio             string    `json:"bio" db:"bio"`
	ProfileImageURL string    `json:"profile_image_url" db:"profile_image_url"`
	CohortYear      int       `json:"cohort_year" db:"cohort_year"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// MentorshipApplication is a pending request to join as a mentee
type MentorshipApplication struct {
	ID              int64            `json:"id" db:"id"`
	FullName        string           `json:"full_name" db:"full_name"`
	Email           string           `json:"email" db:"email"`
	Phone           string           `json:"phone" db:"phone"`
	FieldOfInterest string           `json:"field_of_interest" db:"field_of_interest"`
	Bio             string           `json:"bio" db:"bio"`
	ProfileImageURL string           `json:"profile_image_url" db:"profile_image_url"`
	CohortYear      int              `json:"cohort_year" db:"cohort_year"`
	IsActive        bool             `json:"is_active" db:"is_active"`
	Status          ModerationStatus `json:"status" db:"status"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// ToMentee builds the mentee row created when the application is approved.
func (a *MentorshipApplication) ToMentee(cohortYear int) *Mentee {
	return &Mentee{
		FullName:        a.FullName,
		Email:           a.Email,
		Phone:           a.Phone,
		FieldOfInterest: a.FieldOfInterest,
		Bio:             a.Bio,
		ProfileImageURL: a.ProfileImageURL,
		CohortYear:      cohortYear,
		IsActive:        true,
	}
}
