package models

import "time"

// Program is a training program offered by the organization
type Program struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Slug        string        `json:"slug" db:"slug"`
	Description string        `json:"description" db:"description"`
	Audience    string        `json:"audience" db:"audience"`
	CategoryID  *int64        `json:"category_id" db:"category_id"`
	Status      ProgramStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at" db:"updated_at"`
}

// ProgramCategory groups programs
type ProgramCategory struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ProgramMaterial is a downloadable document attached to a program
type ProgramMaterial struct {
	ID          int64     `json:"id" db:"id"`
	ProgramID   int64     `json:"program_id" db:"program_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	FileURL     string    `json:"file_url" db:"file_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ProgramReview is a participant's review of a program
type ProgramReview struct {
	ID        int64            `json:"id" db:"id"`
	ProgramID int64            `json:"program_id" db:"program_id"`
	FullName  string           `json:"full_name" db:"full_name"`
	Email     string           `json:"email" db:"email"`
	Content   string           `json:"content" db:"content"`
	Rating    *int             `json:"rating" db:"rating"`
	Status    ModerationStatus `json:"status" db:"status"`
	Consent   bool             `json:"consent" db:"consent"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
