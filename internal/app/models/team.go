package models

import "time"

// TeamMember is a person shown on the team page
type TeamMember struct {
	ID              int64             `json:"id" db:"id"`
	FullName        string            `json:"full_name" db:"full_name"`
	Role            string            `json:"role" db:"role"`
	Bio             string            `json:"bio" db:"bio"`
	ProfileImageURL string            `json:"profile_image_url" db:"profile_image_url"`
	DisplayOrder    int               `json:"display_order" db:"display_order"`
	Socials         map[string]string `json:"socials" db:"socials"`
	IsActive        bool              `json:"is_active" db:"is_active"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}

// Collaboration is a partner organization
type Collaboration struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	LogoURL      string    `json:"logo_url" db:"logo_url"`
	WebsiteURL   string    `json:"website_url" db:"website_url"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
