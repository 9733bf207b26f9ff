package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	apperrors "github.com/MohitSinha11/hackcareer-client/pkg/errors"
)

// DemoToken is the sentinel credential issued by the local data source
const DemoToken = "demo-token"

// localUser is the full account record held by the demo store. It never
// leaves this package: reads project it into UserSummary or Identity,
// both of which lack the password field by construction.
type localUser struct {
	ID       int
	Name     string
	Email    string
	Role     string
	Password string
	About    string
	Bio      string
	Review   string
	Rating   float64
	MentorID int
}

func (u *localUser) summary() models.UserSummary {
	return models.UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		MentorID: u.MentorID,
		About:    u.About,
		Review:   u.Review,
		Rating:   u.Rating,
	}
}

func (u *localUser) identity() models.Identity {
	return models.Identity{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		About:    u.About,
		Bio:      u.Bio,
		Review:   u.Review,
		Rating:   u.Rating,
		MentorID: u.MentorID,
	}
}

// LocalDataSource implements DataSource against an in-process store so
// the portal works offline (demo mode). Ids auto-increment from the
// highest existing id; the credential is a fixed sentinel.
type LocalDataSource struct {
	mu       sync.Mutex
	users    []localUser
	tasks    []models.Task
	meetings []models.Meeting
	now      func() time.Time
}

// NewLocalDataSource creates a demo store seeded with one admin, one
// mentor and one assigned mentee
func NewLocalDataSource() *LocalDataSource {
	return &LocalDataSource{
		users: []localUser{
			{
				ID:       1,
				Name:     "HackCareer Admin",
				Email:    "admin@hackcareer.com",
				Role:     models.RoleAdmin,
				Password: "Admin@123",
			},
			{
				ID:       2,
				Name:     "Demo Mentor",
				Email:    "mentor1@hackcareer.com",
				Role:     models.RoleMentor,
				Password: "Mentor@123",
				About:    "Backend engineer with 6 years of experience",
				Review:   "Great mentor",
				Rating:   4.8,
			},
			{
				ID:       3,
				Name:     "Demo Mentee",
				Email:    "mentee1@hackcareer.com",
				Role:     models.RoleMentee,
				Password: "Mentee@123",
				About:    "Final year CSE student",
				Bio:      "Final year CSE student",
				MentorID: 2,
			},
		},
		now: time.Now,
	}
}

// Login matches on normalized email, password and role
func (ds *LocalDataSource) Login(_ context.Context, email, password, role string) (models.Identity, string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i := range ds.users {
		u := &ds.users[i]
		if models.NormalizeEmail(u.Email) == models.NormalizeEmail(email) &&
			u.Password == password &&
			u.Role == models.NormalizeRole(role) {
			return u.identity(), DemoToken, nil
		}
	}

	return models.Identity{}, "", apperrors.ErrInvalidCredentials
}

// SignupAdmin appends a new admin account and signs it in
func (ds *LocalDataSource) SignupAdmin(_ context.Context, fullName, email, password string) (models.Identity, string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	user := localUser{
		ID:       ds.nextUserID(),
		Name:     fullName,
		Email:    models.NormalizeEmail(email),
		Role:     models.RoleAdmin,
		Password: password,
	}
	ds.users = append(ds.users, user)

	return user.identity(), DemoToken, nil
}

// LoadRoleData filters the store by the caller's role and identity
func (ds *LocalDataSource) LoadRoleData(_ context.Context, _ string, identity models.Identity) (*RoleData, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	data := &RoleData{
		Users:    []models.UserSummary{},
		Tasks:    []models.Task{},
		Meetings: []models.Meeting{},
	}

	switch identity.Role {
	case models.RoleAdmin:
		for i := range ds.users {
			if ds.users[i].Role != models.RoleAdmin {
				data.Users = append(data.Users, ds.users[i].summary())
			}
		}

	case models.RoleMentor:
		for i := range ds.users {
			u := &ds.users[i]
			if u.Role == models.RoleMentee && u.MentorID == identity.ID {
				data.Users = append(data.Users, u.summary())
			}
		}
		for _, t := range ds.tasks {
			if t.MentorID == identity.ID {
				data.Tasks = append(data.Tasks, t)
			}
		}
		for _, m := range ds.meetings {
			if m.MentorID == identity.ID {
				data.Meetings = append(data.Meetings, m)
			}
		}

	case models.RoleMentee:
		// A mentee sees exactly their assigned mentor, refreshed in case
		// an admin reassigned them since login
		for i := range ds.users {
			u := &ds.users[i]
			if u.Role == models.RoleMentee && u.ID == identity.ID {
				refreshed := u.identity()
				data.Identity = &refreshed
			}
		}
		mentorID := identity.MentorID
		if data.Identity != nil {
			mentorID = data.Identity.MentorID
		}
		for i := range ds.users {
			u := &ds.users[i]
			if u.Role == models.RoleMentor && u.ID == mentorID {
				data.Users = append(data.Users, u.summary())
			}
		}
		for _, t := range ds.tasks {
			if t.MenteeID == identity.ID {
				data.Tasks = append(data.Tasks, t)
			}
		}
		for _, m := range ds.meetings {
			if m.MenteeID == identity.ID {
				data.Meetings = append(data.Meetings, m)
			}
		}
	}

	return data, nil
}

// CreateUser appends a mentor or mentee account
func (ds *LocalDataSource) CreateUser(_ context.Context, _ string, in CreateUserInput) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	user := localUser{
		ID:       ds.nextUserID(),
		Name:     in.Name,
		Email:    models.NormalizeEmail(in.Email),
		Role:     models.NormalizeRole(in.Role),
		Password: in.Password,
		About:    in.About,
	}
	if user.Role == models.RoleMentor {
		user.Review = "No reviews yet."
		user.Rating = 0
	} else {
		user.Bio = in.About
	}
	ds.users = append(ds.users, user)
	return nil
}

// AssignMentor sets the mentee's mentor, overwriting any previous
// assignment
func (ds *LocalDataSource) AssignMentor(_ context.Context, _ string, mentorID, menteeID int) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i := range ds.users {
		u := &ds.users[i]
		if u.ID == menteeID && u.Role == models.RoleMentee {
			u.MentorID = mentorID
			return nil
		}
	}
	return apperrors.NotFoundError("mentee")
}

// CreateTask creates a pending task. The mentee must be assigned to the
// acting mentor.
func (ds *LocalDataSource) CreateTask(_ context.Context, _ string, mentorID int, in CreateTaskInput) (*models.Task, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	mentee := ds.findUser(in.MenteeID, models.RoleMentee)
	if mentee == nil || mentee.MentorID != mentorID {
		return nil, apperrors.NotFoundError("mentee")
	}

	task := models.Task{
		ID:          nextID(ds.tasks, func(t models.Task) int { return t.ID }),
		MentorID:    mentorID,
		MenteeID:    in.MenteeID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      models.TaskStatusPending,
		CreatedAt:   ds.now().UTC().Format(time.RFC3339),
	}
	ds.tasks = append([]models.Task{task}, ds.tasks...)

	created := task
	return &created, nil
}

// CompleteTask marks a task done exactly once and records the mentee's
// feedback. The completion timestamp is stamped only on the first
// completion; status never reverts.
func (ds *LocalDataSource) CompleteTask(_ context.Context, _ string, taskID, rating int, comment string) (*models.Task, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	task := ds.findTask(taskID)
	if task == nil {
		return nil, apperrors.NotFoundError("task")
	}

	task.Status = models.TaskStatusDone
	if task.CompletedAt == nil {
		completedAt := ds.now().UTC().Format(time.RFC3339)
		task.CompletedAt = &completedAt
	}
	task.MenteeRatingForMentor = &rating
	task.MenteeReviewForMentor = &comment

	updated := *task
	return &updated, nil
}

// ReviewTask records mentor feedback; only completed tasks can be
// reviewed, and the status stays done
func (ds *LocalDataSource) ReviewTask(_ context.Context, _ string, taskID, rating int, comment string) (*models.Task, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	task := ds.findTask(taskID)
	if task == nil {
		return nil, apperrors.NotFoundError("task")
	}
	if !task.IsDone() {
		return nil, fmt.Errorf("task is not completed yet")
	}

	task.MentorRatingForMentee = &rating
	task.MentorReviewForMentee = &comment

	updated := *task
	return &updated, nil
}

// CreateMeeting schedules a meeting; meetings are immutable afterwards
func (ds *LocalDataSource) CreateMeeting(_ context.Context, _ string, mentorID int, in CreateMeetingInput) (*models.Meeting, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	title := in.Title
	if title == "" {
		title = models.DefaultMeetingTitle
	}

	meeting := models.Meeting{
		ID:          nextID(ds.meetings, func(m models.Meeting) int { return m.ID }),
		MentorID:    mentorID,
		MenteeID:    in.MenteeID,
		Title:       title,
		Agenda:      in.Title,
		Date:        in.Date,
		Time:        in.Time,
		ScheduledAt: models.ComposeScheduledAt(in.Date, in.Time),
		MeetingLink: in.MeetingLink,
		CreatedAt:   ds.now().UTC().Format(time.RFC3339),
	}
	ds.meetings = append([]models.Meeting{meeting}, ds.meetings...)

	created := meeting
	return &created, nil
}

// MenteeItems returns the tasks and meetings for one mentee under the
// given mentor
func (ds *LocalDataSource) MenteeItems(_ context.Context, _ string, mentorID, menteeID int) ([]models.Task, []models.Meeting, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	tasks := []models.Task{}
	for _, t := range ds.tasks {
		if t.MenteeID == menteeID && t.MentorID == mentorID {
			tasks = append(tasks, t)
		}
	}

	meetings := []models.Meeting{}
	for _, m := range ds.meetings {
		if m.MenteeID == menteeID && m.MentorID == mentorID {
			meetings = append(meetings, m)
		}
	}

	return tasks, meetings, nil
}

// findUser returns the user with the given id and role. Caller holds
// the lock.
func (ds *LocalDataSource) findUser(id int, role string) *localUser {
	for i := range ds.users {
		if ds.users[i].ID == id && ds.users[i].Role == role {
			return &ds.users[i]
		}
	}
	return nil
}

// findTask returns the task with the given id. Caller holds the lock.
func (ds *LocalDataSource) findTask(id int) *models.Task {
	for i := range ds.tasks {
		if ds.tasks[i].ID == id {
			return &ds.tasks[i]
		}
	}
	return nil
}

// nextUserID allocates the next user id. Caller holds the lock.
func (ds *LocalDataSource) nextUserID() int {
	max := 0
	for i := range ds.users {
		if ds.users[i].ID > max {
			max = ds.users[i].ID
		}
	}
	return max + 1
}

// nextID allocates max(existing)+1, or 1 when the collection is empty
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, item := range items {
		if id(item) > max {
			max = id(item)
		}
	}
	return max + 1
}

// Ensure LocalDataSource implements DataSource
var _ DataSource = (*LocalDataSource)(nil)
