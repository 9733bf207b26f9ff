package repository

import (
	"context"

	"github.com/MohitSinha11/hackcareer-client/config"
	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/MohitSinha11/hackcareer-client/pkg/httpclient"
	"github.com/MohitSinha11/hackcareer-client/pkg/logger"
	"github.com/MohitSinha11/hackcareer-client/pkg/portalapi"
)

// RoleData is the result of a role-scoped bulk load. Identity is non-nil
// when the load produced a richer profile that should replace the
// session's current identity.
type RoleData struct {
	Identity *models.Identity
	Users    []models.UserSummary
	Tasks    []models.Task
	Meetings []models.Meeting
}

// CreateUserInput describes a mentor or mentee account to create
type CreateUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string
	About    string
}

// CreateTaskInput describes a task a mentor assigns to a mentee
type CreateTaskInput struct {
	MenteeID    int
	Title       string
	Description string
	DueDate     string
}

// CreateMeetingInput describes a meeting a mentor schedules with a
// mentee. Title doubles as the agenda; Date and Time are composed into
// the combined schedule instant.
type CreateMeetingInput struct {
	MenteeID    int
	Title       string
	Date        string
	Time        string
	MeetingLink string
}

// DataSource is the capability surface the session store works against,
// regardless of whether the data lives behind the remote portal service
// or the in-process demo store. Selection happens once at startup.
type DataSource interface {
	// Login authenticates a user and returns their identity with the
	// session credential
	Login(ctx context.Context, email, password, role string) (models.Identity, string, error)

	// SignupAdmin creates an admin account and returns its identity with
	// the session credential
	SignupAdmin(ctx context.Context, fullName, email, password string) (models.Identity, string, error)

	// LoadRoleData performs the role-scoped bulk fetch for the given
	// identity
	LoadRoleData(ctx context.Context, token string, identity models.Identity) (*RoleData, error)

	// CreateUser creates a mentor or mentee account (admin operation)
	CreateUser(ctx context.Context, token string, in CreateUserInput) error

	// AssignMentor assigns a mentor to a mentee (admin operation)
	AssignMentor(ctx context.Context, token string, mentorID, menteeID int) error

	// CreateTask creates a pending task for one of the mentor's mentees
	CreateTask(ctx context.Context, token string, mentorID int, in CreateTaskInput) (*models.Task, error)

	// CompleteTask marks a task done with the mentee's feedback for the
	// mentor
	CompleteTask(ctx context.Context, token string, taskID, rating int, comment string) (*models.Task, error)

	// ReviewTask records the mentor's feedback on a completed task
	ReviewTask(ctx context.Context, token string, taskID, rating int, comment string) (*models.Task, error)

	// CreateMeeting schedules a meeting with one of the mentor's mentees
	CreateMeeting(ctx context.Context, token string, mentorID int, in CreateMeetingInput) (*models.Meeting, error)

	// MenteeItems fetches the tasks and meetings belonging to one mentee
	// under the given mentor
	MenteeItems(ctx context.Context, token string, mentorID, menteeID int) ([]models.Task, []models.Meeting, error)
}

// Select picks the data source for the process lifetime based on the
// runtime mode flag
func Select(cfg *config.Config, httpClient httpclient.Client) DataSource {
	if cfg.Client.DemoMode {
		logger.Info("Using local demo data source")
		return NewLocalDataSource()
	}

	api := portalapi.NewClient(cfg.API.BaseURL, httpClient, cfg.API.RateLimitRPS, cfg.API.RateLimitBurst)
	return NewRemoteDataSource(api)
}
