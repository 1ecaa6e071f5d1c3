package models

import "time"

// Testimonial is a public statement submitted through the site
type Testimonial struct {
	ID        int64            `json:"id" db:"id"`
	FullName  string           `json:"full_name" db:"full_name"`
	Email     string           `json:"email" db:"email"`
	Content   string           `json:"content" db:"content"`
	Rating    *int             `json:"rating" db:"rating"`
	Status    ModerationStatus `json:"status" db:"status"`
	Consent   bool             `json:"consent" db:"consent"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// Research is a publication
type Research struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Authors         string    `json:"authors" db:"authors"`
	Abstract        string    `json:"abstract" db:"abstract"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	DocumentURL     string    `json:"document_url" db:"document_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Media is a press item, news post, event or announcement
type Media struct {
	ID            int64         `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Slug          string        `json:"slug" db:"slug"`
	Summary       string        `json:"summary" db:"summary"`
	Content       string        `json:"content" db:"content"`
	Type          MediaType     `json:"type" db:"type"`
	Featured      bool          `json:"featured" db:"featured"`
	Status        PublishStatus `json:"status" db:"status"`
	ImageURL      string        `json:"image_url" db:"image_url"`
	ImagePublicID string        `json:"image_public_id" db:"image_public_id"`
	PublishedAt   *time.Time    `json:"published_at" db:"published_at"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at" db:"updated_at"`
}

// ContactMessage is a message sent through the contact form
type ContactMessage struct {
	ID        int64         `json:"id" db:"id"`
	FullName  string        `json:"full_name" db:"full_name"`
	Email     string        `json:"email" db:"email"`
	Subject   string        `json:"subject" db:"subject"`
	Message   string        `json:"message" db:"message"`
	Status    MessageStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at" db:"updated_at"`
}

// AboutSection is one block of the about page. List sections render Items.
type AboutSection struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	Type       string    `json:"type" db:"type"`
	Items      []string  `json:"items" db:"items"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AboutGalleryImage is a photo in the about page gallery
type AboutGalleryImage struct {
	ID           int64     `json:"id" db:"id"`
	URL          string    `json:"url" db:"url"`
	Alt          string    `json:"alt" db:"alt"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
