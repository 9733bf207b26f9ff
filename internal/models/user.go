package models

import "strings"

// Roles determine which data a session sees and which operations it may call
const (
	RoleAdmin  = "admin"
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

// NormalizeRole lower-cases a role value coming off the wire or a form
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// NormalizeEmail trims and lower-cases an email address before it is
// compared or sent to the service
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity is the authenticated principal's profile record held by the
// session. Role-specific fields stay zero for the other roles.
type Identity struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	// Mentor profile fields
	About  string  `json:"about,omitempty"`
	Review string  `json:"review,omitempty"`
	Rating float64 `json:"rating,omitempty"`

	// Mentee profile fields
	Bio      string `json:"bio,omitempty"`
	MentorID int    `json:"mentorId,omitempty"`
}

// UserSummary is the view of another user the current session is allowed
// to see. It is a distinct type without a credential field, never derived
// from a full record by dropping fields at read time.
type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	// MentorID is set on mentee summaries
	MentorID int `json:"mentorId,omitempty"`

	// Mentor profile fields, present on mentor summaries
	About  string  `json:"about,omitempty"`
	Review string  `json:"review,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}
