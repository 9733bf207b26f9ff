package models

// Wire-format records consumed from and sent to the portal service
// (JSON over HTTP, contract in the service's API docs). The mappers
// below normalize them into the session's internal shapes; they are
// pure and total.

// AuthResponse is returned by login and admin signup
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   int    `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserRecord is a user row from the admin list endpoints
type UserRecord struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// MentorProfileRecord is the mentor's own profile payload
type MentorProfileRecord struct {
	MentorID int     `json:"mentorId"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	About    string  `json:"about"`
	Review   string  `json:"review"`
	Rating   float64 `json:"rating"`
}

// MenteeProfileRecord is the mentee's own profile payload
type MenteeProfileRecord struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

// TaskRecord is a task as the service serializes it
type TaskRecord struct {
	ID          int    `json:"id"`
	MentorID    int    `json:"mentorId"`
	MenteeID    int    `json:"menteeId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`

	CompletedAt *string `json:"completedAt"`

	MenteeReviewForMentor *string `json:"menteeReviewForMentor"`
	MenteeRatingForMentor *int    `json:"menteeRatingForMentor"`
	MentorReviewForMentee *string `json:"mentorReviewForMentee"`
	MentorRatingForMentee *int    `json:"mentorRatingForMentee"`

	CreatedAt  string `json:"createdAt"`
	MentorName string `json:"mentorName,omitempty"`
}

// MeetingRecord is a meeting as the service serializes it
type MeetingRecord struct {
	ID          int    `json:"id"`
	MentorID    int    `json:"mentorId"`
	MenteeID    int    `json:"menteeId"`
	ScheduledAt string `json:"scheduledAt"`
	Agenda      string `json:"agenda"`
	MeetingLink string `json:"meetingLink"`
	CreatedAt   string `json:"createdAt"`
	MentorName  string `json:"mentorName,omitempty"`
}

// UserSummaryFromRecord maps an admin list row into a user summary
func UserSummaryFromRecord(r UserRecord) UserSummary {
	return UserSummary{
		ID:    r.ID,
		Name:  r.FullName,
		Email: r.Email,
		Role:  NormalizeRole(r.Role),
	}
}

// MentorIdentityFromProfile maps a mentor profile payload into an
// identity fragment
func MentorIdentityFromProfile(r MentorProfileRecord) Identity {
	return Identity{
		ID:     r.MentorID,
		Name:   r.FullName,
		Email:  r.Email,
		Role:   RoleMentor,
		About:  r.About,
		Review: r.Review,
		Rating: r.Rating,
	}
}

// MenteeIdentityFromProfile maps a mentee profile payload into an
// identity fragment. The bio doubles as the about field so both roles
// display uniformly.
func MenteeIdentityFromProfile(r MenteeProfileRecord) Identity {
	return Identity{
		ID:    r.ID,
		Name:  r.FullName,
		Email: r.Email,
		Role:  RoleMentee,
		About: r.Bio,
		Bio:   r.Bio,
	}
}

// TaskFromRecord normalizes a task record; status comes back lower-cased
func TaskFromRecord(r TaskRecord) Task {
	return Task{
		ID:          r.ID,
		MentorID:    r.MentorID,
		MenteeID:    r.MenteeID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      NormalizeRole(r.Status),

		CompletedAt: r.CompletedAt,

		MenteeReviewForMentor: r.MenteeReviewForMentor,
		MenteeRatingForMentor: r.MenteeRatingForMentor,
		MentorReviewForMentee: r.MentorReviewForMentee,
		MentorRatingForMentee: r.MentorRatingForMentee,

		CreatedAt:  r.CreatedAt,
		MentorName: r.MentorName,
	}
}

// MeetingFromRecord normalizes a meeting record, deriving the display
// date/time pair and defaulting the title when no agenda is present
func MeetingFromRecord(r MeetingRecord) Meeting {
	date, timeOfDay := SplitScheduledAt(r.ScheduledAt)

	title := r.Agenda
	if title == "" {
		title = DefaultMeetingTitle
	}

	return Meeting{
		ID:          r.ID,
		MentorID:    r.MentorID,
		MenteeID:    r.MenteeID,
		Title:       title,
		Date:        date,
		Time:        timeOfDay,
		ScheduledAt: r.ScheduledAt,
		Agenda:      r.Agenda,
		MeetingLink: r.MeetingLink,
		CreatedAt:   r.CreatedAt,
		MentorName:  r.MentorName,
	}
}

// Request bodies sent to the portal service. Binding tags drive the stub
// server's validation of the same contract.

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type AdminSignupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateMentorRequest struct {
	FullName string  `json:"fullName" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	About    string  `json:"about"`
	Review   string  `json:"review"`
	Rating   float64 `json:"rating"`
}

type CreateMenteeRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Bio      string `json:"bio"`
}

type AssignmentRequest struct {
	MentorID int `json:"mentorId" binding:"required"`
	MenteeID int `json:"menteeId" binding:"required"`
}

type CreateTaskRequest struct {
	MenteeID    int    `json:"menteeId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"dueDate" binding:"required"`
}

// FeedbackRequest carries a rating/comment pair for task completion and
// task review
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type CreateMeetingRequest struct {
	MenteeID    int    `json:"menteeId" binding:"required"`
	ScheduledAt string `json:"scheduledAt" binding:"required"`
	Agenda      string `json:"agenda"`
	MeetingLink string `json:"meetingLink"`
}
