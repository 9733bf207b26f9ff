package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "mentor", NormalizeRole(" MENTOR "))
	assert.Equal(t, "mentee", NormalizeRole("Mentee"))
	assert.Equal(t, "", NormalizeRole("  "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@x.com", NormalizeEmail("  JANE@X.COM "))
}

func TestComposeScheduledAt(t *testing.T) {
	assert.Equal(t, "2024-05-01T14:30:00", ComposeScheduledAt("2024-05-01", "14:30"))
}

func TestSplitScheduledAt(t *testing.T) {
	date, timeOfDay := SplitScheduledAt("2024-05-01T14:30:00")
	assert.Equal(t, "2024-05-01", date)
	assert.Equal(t, "14:30", timeOfDay)
}

func TestSplitScheduledAt_NoTimePart(t *testing.T) {
	date, timeOfDay := SplitScheduledAt("2024-05-01")
	assert.Equal(t, "2024-05-01", date)
	assert.Equal(t, "", timeOfDay)
}

func TestScheduledAtRoundTrip(t *testing.T) {
	composed := ComposeScheduledAt("2024-05-01", "14:30")
	date, timeOfDay := SplitScheduledAt(composed)
	assert.Equal(t, "2024-05-01", date)
	assert.Equal(t, "14:30", timeOfDay)
}

func TestTaskFromRecord_NormalizesStatus(t *testing.T) {
	task := TaskFromRecord(TaskRecord{ID: 7, Status: "DONE"})
	assert.Equal(t, TaskStatusDone, task.Status)
	assert.True(t, task.IsDone())
}

func TestMeetingFromRecord_DefaultsTitle(t *testing.T) {
	meeting := MeetingFromRecord(MeetingRecord{ID: 1, ScheduledAt: "2024-05-01T14:30:00"})
	assert.Equal(t, DefaultMeetingTitle, meeting.Title)
	assert.Equal(t, "2024-05-01", meeting.Date)
	assert.Equal(t, "14:30", meeting.Time)
}

func TestMeetingFromRecord_AgendaBecomesTitle(t *testing.T) {
	meeting := MeetingFromRecord(MeetingRecord{ID: 1, Agenda: "Sprint review", ScheduledAt: "2024-05-01T09:00:00"})
	assert.Equal(t, "Sprint review", meeting.Title)
	assert.Equal(t, "Sprint review", meeting.Agenda)
}

func TestMenteeIdentityFromProfile_BioFillsAbout(t *testing.T) {
	identity := MenteeIdentityFromProfile(MenteeProfileRecord{ID: 3, FullName: "Demo Mentee", Bio: "learning"})
	assert.Equal(t, "learning", identity.About)
	assert.Equal(t, "learning", identity.Bio)
	assert.Equal(t, RoleMentee, identity.Role)
}

func TestUserSummaryFromRecord(t *testing.T) {
	summary := UserSummaryFromRecord(UserRecord{ID: 2, FullName: "Demo Mentor", Email: "mentor1@hackcareer.com", Role: "MENTOR"})
	assert.Equal(t, RoleMentor, summary.Role)
	assert.Equal(t, "Demo Mentor", summary.Name)
}
