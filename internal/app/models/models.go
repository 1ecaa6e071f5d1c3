package models

// ProgramStatus is the lifecycle stage of a program
type ProgramStatus string

const (
	ProgramUpcoming  ProgramStatus = "upcoming"
	ProgramOngoing   ProgramStatus = "ongoing"
	ProgramCompleted ProgramStatus = "completed"
)

// Valid reports whether s is a known program status
func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramUpcoming, ProgramOngoing, ProgramCompleted:
		return true
	}
	return false
}

// ModerationStatus is the review state of a public submission
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// Valid reports whether s is a known moderation status
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PublishStatus controls whether a media item is visible on the site
type PublishStatus string

const (
	PublishDraft     PublishStatus = "draft"
	PublishPublished PublishStatus = "published"
)

// Valid reports whether s is a known publish status
func (s PublishStatus) Valid() bool {
	return s == PublishDraft || s == PublishPublished
}

// MediaType classifies media items
type MediaType string

const (
	MediaPress        MediaType = "press"
	MediaNews         MediaType = "news"
	MediaEvent        MediaType = "event"
	MediaAnnouncement MediaType = "announcement"
)

// Valid reports whether t is a known media type
func (t MediaType) Valid() bool {
	switch t {
	case MediaPress, MediaNews, MediaEvent, MediaAnnouncement:
		return true
	}
	return false
}

// MessageStatus is the inbox state of a contact message
type MessageStatus string

const (
	MessageUnread  MessageStatus = "unread"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

// Valid reports whether s is a known message status
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageUnread, MessageRead, MessageReplied:
		return true
	}
	return false
}
