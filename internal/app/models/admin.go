package models

import "time"

// Admin is an email allowed into the admin area
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SettingsID is the primary key of the single settings row
const SettingsID int64 = 1

// Settings holds the site wide switches edited in the admin area
type Settings struct {
	ID               int64      `json:"id" db:"id"`
	SiteName         string     `json:"site_name" db:"site_name"`
	ContactEmail     string     `json:"contact_email" db:"contact_email"`
	EnableMentorship bool       `json:"enable_mentorship" db:"enable_mentorship"`
	EnablePrograms   bool       `json:"enable_programs" db:"enable_programs"`
	EnableResearch   bool       `json:"enable_research" db:"enable_research"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings is used until an admin saves the settings row
func DefaultSettings() *Settings {
	return &Settings{
		ID:               SettingsID,
		SiteName:         "ACE Medformatics",
		EnableMentorship: true,
		EnablePrograms:   true,
		EnableResearch:   true,
	}
}
