package models

// Task status values. A task is created pending and becomes done exactly
// once; it never reverts.
const (
	TaskStatusPending = "pending"
	TaskStatusDone    = "done"
)

// Task belongs to exactly one mentor-mentee pair and carries two
// independent feedback slots: mentee feedback for the mentor (set on
// completion) and mentor feedback for the mentee (settable only once
// the task is done).
type Task struct {
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

// IsDone reports whether the task has been completed
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}
