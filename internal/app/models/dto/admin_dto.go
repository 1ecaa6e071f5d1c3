package dto

// StatusUpdateRequest changes the moderation or inbox status of a row
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ActiveUpdateRequest shows or hides a row on the public site
type ActiveUpdateRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SettingsRequest replaces the editable settings
type SettingsRequest struct {
	SiteName         string `json:"site_name" binding:"required"`
	ContactEmail     string `json:"contact_email" binding:"omitempty,email"`
	EnableMentorship bool   `json:"enable_mentorship"`
	EnablePrograms   bool   `json:"enable_programs"`
	EnableResearch   bool   `json:"enable_research"`
}

// DashboardResponse holds per-table row counts
type DashboardResponse struct {
	Counts              map[string]int64 `json:"counts"`
	PendingTestimonials int64            `json:"pending_testimonials"`
	PendingReviews      int64            `json:"pending_reviews"`
	PendingApplications int64            `json:"pending_applications"`
	UnreadMessages      int64            `json:"unread_messages"`
}
