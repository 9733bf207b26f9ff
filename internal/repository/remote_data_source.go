package repository

import (
	"context"
	"strings"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/MohitSinha11/hackcareer-client/pkg/portalapi"
	"golang.org/x/sync/errgroup"
)

// RemoteDataSource implements DataSource against the portal service.
// Bulk loads issue their sub-fetches concurrently and fail atomically:
// a partial failure fails the whole load.
type RemoteDataSource struct {
	api *portalapi.Client
}

// NewRemoteDataSource creates a remote data source over the given API client
func NewRemoteDataSource(api *portalapi.Client) *RemoteDataSource {
	return &RemoteDataSource{api: api}
}

// Login authenticates against the portal service. The role travels
// upper-cased on the wire.
func (ds *RemoteDataSource) Login(ctx context.Context, email, password, role string) (models.Identity, string, error) {
	payload, err := ds.api.Login(ctx, models.LoginRequest{
		Email:    email,
		Password: password,
		Role:     strings.ToUpper(role),
	})
	if err != nil {
		return models.Identity{}, "", err
	}

	identity := models.Identity{
		ID:    payload.UserID,
		Name:  payload.FullName,
		Email: payload.Email,
		Role:  models.NormalizeRole(payload.Role),
	}
	return identity, payload.Token, nil
}

// SignupAdmin registers a new admin account
func (ds *RemoteDataSource) SignupAdmin(ctx context.Context, fullName, email, password string) (models.Identity, string, error) {
	payload, err := ds.api.SignupAdmin(ctx, models.AdminSignupRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return models.Identity{}, "", err
	}

	identity := models.Identity{
		ID:    payload.UserID,
		Name:  payload.FullName,
		Email: payload.Email,
		Role:  models.NormalizeRole(payload.Role),
	}
	return identity, payload.Token, nil
}

// LoadRoleData dispatches to the role-specific bulk load
func (ds *RemoteDataSource) LoadRoleData(ctx context.Context, token string, identity models.Identity) (*RoleData, error) {
	switch identity.Role {
	case models.RoleAdmin:
		return ds.loadAdminData(ctx, token)
	case models.RoleMentor:
		return ds.loadMentorData(ctx, token, identity)
	case models.RoleMentee:
		return ds.loadMenteeData(ctx, token, identity)
	default:
		return &RoleData{}, nil
	}
}

// loadAdminData fetches all mentors and mentees in parallel
func (ds *RemoteDataSource) loadAdminData(ctx context.Context, token string) (*RoleData, error) {
	var mentorsRaw, menteesRaw []models.UserRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mentorsRaw, err = ds.api.AdminMentors(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		menteesRaw, err = ds.api.AdminMentees(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	users := make([]models.UserSummary, 0, len(mentorsRaw)+len(menteesRaw))
	for _, r := range mentorsRaw {
		users = append(users, models.UserSummaryFromRecord(r))
	}
	for _, r := range menteesRaw {
		users = append(users, models.UserSummaryFromRecord(r))
	}

	return &RoleData{Users: users}, nil
}

// loadMentorData fetches the mentor's profile and assigned mentees in
// parallel, enriching the session identity with the profile fields
func (ds *RemoteDataSource) loadMentorData(ctx context.Context, token string, mentor models.Identity) (*RoleData, error) {
	var profileRaw *models.MentorProfileRecord
	var menteesRaw []models.UserRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profileRaw, err = ds.api.MentorProfile(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		menteesRaw, err = ds.api.MentorMentees(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := models.MentorIdentityFromProfile(*profileRaw)
	fillIdentityBase(&enriched, mentor)

	mentees := make([]models.UserSummary, 0, len(menteesRaw))
	for _, r := range menteesRaw {
		mentees = append(mentees, models.UserSummary{
			ID:       r.ID,
			Name:     r.FullName,
			Email:    r.Email,
			Role:     models.RoleMentee,
			MentorID: mentor.ID,
		})
	}

	return &RoleData{Identity: &enriched, Users: mentees}, nil
}

// loadMenteeData fetches the mentee's profile, tasks and meetings in
// parallel. The assigned mentor is inferred from the first task, else
// the first meeting; mentor user summaries are inferred from the task
// and meeting records (the service does not expose mentor emails to
// mentees).
func (ds *RemoteDataSource) loadMenteeData(ctx context.Context, token string, mentee models.Identity) (*RoleData, error) {
	var profileRaw *models.MenteeProfileRecord
	var tasksRaw []models.TaskRecord
	var meetingsRaw []models.MeetingRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profileRaw, err = ds.api.MenteeProfile(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		tasksRaw, err = ds.api.MenteeTasks(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		meetingsRaw, err = ds.api.MenteeMeetings(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	primaryMentorID := 0
	if len(tasksRaw) > 0 {
		primaryMentorID = tasksRaw[0].MentorID
	} else if len(meetingsRaw) > 0 {
		primaryMentorID = meetingsRaw[0].MentorID
	}

	enriched := models.MenteeIdentityFromProfile(*profileRaw)
	fillIdentityBase(&enriched, mentee)
	enriched.MentorID = primaryMentorID

	tasks := make([]models.Task, 0, len(tasksRaw))
	for _, r := range tasksRaw {
		task := models.TaskFromRecord(r)
		task.MenteeID = enriched.ID
		tasks = append(tasks, task)
	}

	meetings := make([]models.Meeting, 0, len(meetingsRaw))
	for _, r := range meetingsRaw {
		meeting := models.MeetingFromRecord(r)
		meeting.MenteeID = enriched.ID
		meetings = append(meetings, meeting)
	}

	// One summary per distinct mentor seen in the mentee's records
	users := make([]models.UserSummary, 0, 1)
	seen := map[int]bool{}
	collect := func(mentorID int, mentorName string) {
		if mentorID == 0 || seen[mentorID] {
			return
		}
		seen[mentorID] = true
		users = append(users, models.UserSummary{
			ID:   mentorID,
			Name: mentorName,
			Role: models.RoleMentor,
		})
	}
	for _, r := range tasksRaw {
		collect(r.MentorID, r.MentorName)
	}
	for _, r := range meetingsRaw {
		collect(r.MentorID, r.MentorName)
	}

	return &RoleData{Identity: &enriched, Users: users, Tasks: tasks, Meetings: meetings}, nil
}

// CreateUser creates a mentor or mentee account through the admin endpoints
func (ds *RemoteDataSource) CreateUser(ctx context.Context, token string, in CreateUserInput) error {
	if in.Role == models.RoleMentor {
		return ds.api.CreateMentor(ctx, token, models.CreateMentorRequest{
			FullName: in.Name,
			Email:    in.Email,
			Password: in.Password,
			About:    in.About,
			Review:   "No reviews yet.",
			Rating:   0,
		})
	}

	return ds.api.CreateMentee(ctx, token, models.CreateMenteeRequest{
		FullName: in.Name,
		Email:    in.Email,
		Password: in.Password,
		Bio:      in.About,
	})
}

// AssignMentor delegates the assignment (and its existence checks) to
// the service
func (ds *RemoteDataSource) AssignMentor(ctx context.Context, token string, mentorID, menteeID int) error {
	return ds.api.AssignMentor(ctx, token, models.AssignmentRequest{
		MentorID: mentorID,
		MenteeID: menteeID,
	})
}

// CreateTask creates a task; the service derives the mentor from the token
func (ds *RemoteDataSource) CreateTask(ctx context.Context, token string, _ int, in CreateTaskInput) (*models.Task, error) {
	created, err := ds.api.CreateTask(ctx, token, models.CreateTaskRequest{
		MenteeID:    in.MenteeID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return nil, err
	}

	task := models.TaskFromRecord(*created)
	return &task, nil
}

// CompleteTask marks a task done with mentee feedback
func (ds *RemoteDataSource) CompleteTask(ctx context.Context, token string, taskID, rating int, comment string) (*models.Task, error) {
	updated, err := ds.api.CompleteTask(ctx, token, taskID, models.FeedbackRequest{
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, err
	}

	task := models.TaskFromRecord(*updated)
	return &task, nil
}

// ReviewTask records mentor feedback on a completed task
func (ds *RemoteDataSource) ReviewTask(ctx context.Context, token string, taskID, rating int, comment string) (*models.Task, error) {
	updated, err := ds.api.ReviewTask(ctx, token, taskID, models.FeedbackRequest{
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, err
	}

	task := models.TaskFromRecord(*updated)
	return &task, nil
}

// CreateMeeting schedules a meeting; the schedule instant is composed
// from the date and time parts
func (ds *RemoteDataSource) CreateMeeting(ctx context.Context, token string, _ int, in CreateMeetingInput) (*models.Meeting, error) {
	created, err := ds.api.CreateMeeting(ctx, token, models.CreateMeetingRequest{
		MenteeID:    in.MenteeID,
		ScheduledAt: models.ComposeScheduledAt(in.Date, in.Time),
		Agenda:      in.Title,
		MeetingLink: in.MeetingLink,
	})
	if err != nil {
		return nil, err
	}

	meeting := models.MeetingFromRecord(*created)
	return &meeting, nil
}

// MenteeItems fetches one mentee's tasks and meetings in parallel; the
// service scopes results to the authenticated mentor
func (ds *RemoteDataSource) MenteeItems(ctx context.Context, token string, _, menteeID int) ([]models.Task, []models.Meeting, error) {
	var tasksRaw []models.TaskRecord
	var meetingsRaw []models.MeetingRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasksRaw, err = ds.api.MentorMenteeTasks(gctx, token, menteeID)
		return err
	})
	g.Go(func() error {
		var err error
		meetingsRaw, err = ds.api.MentorMenteeMeetings(gctx, token, menteeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	tasks := make([]models.Task, 0, len(tasksRaw))
	for _, r := range tasksRaw {
		tasks = append(tasks, models.TaskFromRecord(r))
	}

	meetings := make([]models.Meeting, 0, len(meetingsRaw))
	for _, r := range meetingsRaw {
		meetings = append(meetings, models.MeetingFromRecord(r))
	}

	return tasks, meetings, nil
}

// fillIdentityBase keeps already-known base fields when the profile
// payload left them out
func fillIdentityBase(enriched *models.Identity, base models.Identity) {
	if enriched.ID == 0 {
		enriched.ID = base.ID
	}
	if enriched.Name == "" {
		enriched.Name = base.Name
	}
	if enriched.Email == "" {
		enriched.Email = base.Email
	}
}

// Ensure RemoteDataSource implements DataSource
var _ DataSource = (*RemoteDataSource)(nil)
