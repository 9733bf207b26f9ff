package models

import "strings"

// DefaultMeetingTitle is used when a meeting has no agenda to display
const DefaultMeetingTitle = "Mentorship Meeting"

// Meeting belongs to exactly one mentor-mentee pair and is immutable
// after creation. Date and Time are display decompositions of
// ScheduledAt.
type Meeting struct {
	ID       int    `json:"id"`
	MentorID int    `json:"mentorId"`
	MenteeID int    `json:"menteeId"`

	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ScheduledAt string `json:"scheduledAt"`
	Agenda      string `json:"agenda"`
	MeetingLink string `json:"meetingLink"`

	CreatedAt  string `json:"createdAt"`
	MentorName string `json:"mentorName,omitempty"`
}

// ComposeScheduledAt builds the combined schedule instant sent to the
// service from a date (2006-01-02) and a time (15:04)
func ComposeScheduledAt(date, timeOfDay string) string {
	return date + "T" + timeOfDay + ":00"
}

// SplitScheduledAt decomposes a combined schedule instant into its date
// and HH:MM time parts. Either part is empty when the separator or the
// time component is missing.
func SplitScheduledAt(scheduledAt string) (date, timeOfDay string) {
	date, rest, found := strings.Cut(scheduledAt, "T")
	if !found {
		return date, ""
	}
	if len(rest) > 5 {
		rest = rest[:5]
	}
	return date, rest
}
