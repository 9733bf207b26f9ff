package repository

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/MohitSinha11/hackcareer-client/internal/stubserver"
	apperrors "github.com/MohitSinha11/hackcareer-client/pkg/errors"
	"github.com/MohitSinha11/hackcareer-client/pkg/httpclient"
	"github.com/MohitSinha11/hackcareer-client/pkg/portalapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteSource(t *testing.T) *RemoteDataSource {
	t.Helper()
	srv := httptest.NewServer(stubserver.New("remote-test-secret"))
	t.Cleanup(srv.Close)

	api := portalapi.NewClient(srv.URL, httpclient.NewStandardClient(), 0, 0)
	return NewRemoteDataSource(api)
}

func TestRemoteLogin_RoundTrip(t *testing.T) {
	ds := newRemoteSource(t)

	identity, token, err := ds.Login(context.Background(), "admin@hackcareer.com", "Admin@123", "admin")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, identity.ID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, "HackCareer Admin", identity.Name)
}

func TestRemoteLogin_BadCredentials(t *testing.T) {
	ds := newRemoteSource(t)

	_, _, err := ds.Login(context.Background(), "admin@hackcareer.com", "wrong", "admin")

	require.Error(t, err)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, 401, reqErr.StatusCode)
	assert.Equal(t, "Invalid credentials", reqErr.Message)
}

func TestRemoteLoadRoleData_Admin(t *testing.T) {
	ds := newRemoteSource(t)
	ctx := context.Background()

	identity, token, err := ds.Login(ctx, "admin@hackcareer.com", "Admin@123", "admin")
	require.NoError(t, err)

	data, err := ds.LoadRoleData(ctx, token, identity)
	require.NoError(t, err)
	require.Len(t, data.Users, 2)

	roles := map[string]bool{}
	for _, u := range data.Users {
		roles[u.Role] = true
	}
	assert.True(t, roles[models.RoleMentor])
	assert.True(t, roles[models.RoleMentee])
}

func TestRemoteLoadRoleData_MentorProfileEnrichesIdentity(t *testing.T) {
	ds := newRemoteSource(t)
	ctx := context.Background()

	identity, token, err := ds.Login(ctx, "mentor1@hackcareer.com", "Mentor@123", "mentor")
	require.NoError(t, err)

	data, err := ds.LoadRoleData(ctx, token, identity)
	require.NoError(t, err)
	require.NotNil(t, data.Identity)
	assert.InDelta(t, 4.8, data.Identity.Rating, 0.001)
	assert.Equal(t, "Great mentor", data.Identity.Review)

	require.Len(t, data.Users, 1)
	assert.Equal(t, 3, data.Users[0].ID)
	assert.Equal(t, 2, data.Users[0].MentorID)
}

func TestRemote_FullMentorshipFlow(t *testing.T) {
	ds := newRemoteSource(t)
	ctx := context.Background()

	_, adminToken, err := ds.Login(ctx, "admin@hackcareer.com", "Admin@123", "admin")
	require.NoError(t, err)

	require.NoError(t, ds.CreateUser(ctx, adminToken, CreateUserInput{
		Name: "Jane", Email: "jane@x.com", Role: models.RoleMentee, Password: "Jane@123", About: "bio",
	}))

	adminData, err := ds.LoadRoleData(ctx, adminToken, models.Identity{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	janeID := 0
	for _, u := range adminData.Users {
		if u.Email == "jane@x.com" {
			janeID = u.ID
		}
	}
	require.NotZero(t, janeID)
	require.NoError(t, ds.AssignMentor(ctx, adminToken, 2, janeID))

	mentorIdentity, mentorToken, err := ds.Login(ctx, "mentor1@hackcareer.com", "Mentor@123", "mentor")
	require.NoError(t, err)

	task, err := ds.CreateTask(ctx, mentorToken, mentorIdentity.ID, CreateTaskInput{
		MenteeID: janeID, Title: "Build a CLI", Description: "cobra or flag", DueDate: "2026-09-15",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, "Demo Mentor", task.MentorName)

	meeting, err := ds.CreateMeeting(ctx, mentorToken, mentorIdentity.ID, CreateMeetingInput{
		MenteeID: janeID, Title: "Kickoff", Date: "2026-09-01", Time: "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", meeting.Title)
	assert.Equal(t, "2026-09-01", meeting.Date)
	assert.Equal(t, "14:30", meeting.Time)

	tasks, meetings, err := ds.MenteeItems(ctx, mentorToken, mentorIdentity.ID, janeID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Len(t, meetings, 1)

	_, menteeToken, err := ds.Login(ctx, "jane@x.com", "Jane@123", "mentee")
	require.NoError(t, err)

	done, err := ds.CompleteTask(ctx, menteeToken, task.ID, 4, "learned a lot")
	require.NoError(t, err)
	assert.True(t, done.IsDone())
	require.NotNil(t, done.CompletedAt)

	reviewed, err := ds.ReviewTask(ctx, mentorToken, task.ID, 5, "nice work")
	require.NoError(t, err)
	require.NotNil(t, reviewed.MentorRatingForMentee)
	assert.Equal(t, 5, *reviewed.MentorRatingForMentee)
}

func TestRemoteReviewTask_PendingTaskRejected(t *testing.T) {
	ds := newRemoteSource(t)
	ctx := context.Background()

	mentorIdentity, mentorToken, err := ds.Login(ctx, "mentor1@hackcareer.com", "Mentor@123", "mentor")
	require.NoError(t, err)

	task, err := ds.CreateTask(ctx, mentorToken, mentorIdentity.ID, CreateTaskInput{
		MenteeID: 3, Title: "t", Description: "d", DueDate: "2026-01-01",
	})
	require.NoError(t, err)

	_, err = ds.ReviewTask(ctx, mentorToken, task.ID, 5, "early")
	require.Error(t, err)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, "task is not completed yet", reqErr.Message)
}

func TestRemoteLoadRoleData_MenteeInfersMentor(t *testing.T) {
	ds := newRemoteSource(t)
	ctx := context.Background()

	mentorIdentity, mentorToken, err := ds.Login(ctx, "mentor1@hackcareer.com", "Mentor@123", "mentor")
	require.NoError(t, err)
	_, err = ds.CreateTask(ctx, mentorToken, mentorIdentity.ID, CreateTaskInput{
		MenteeID: 3, Title: "t", Description: "d", DueDate: "2026-01-01",
	})
	require.NoError(t, err)

	menteeIdentity, menteeToken, err := ds.Login(ctx, "mentee1@hackcareer.com", "Mentee@123", "mentee")
	require.NoError(t, err)

	data, err := ds.LoadRoleData(ctx, menteeToken, menteeIdentity)
	require.NoError(t, err)
	require.NotNil(t, data.Identity)
	assert.Equal(t, 2, data.Identity.MentorID)
	require.Len(t, data.Users, 1)
	assert.Equal(t, 2, data.Users[0].ID)
	assert.Equal(t, "Demo Mentor", data.Users[0].Name)
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, "Demo Mentor", data.Tasks[0].MentorName)
}

func TestRemote_TokenRequired(t *testing.T) {
	ds := newRemoteSource(t)

	err := ds.AssignMentor(context.Background(), "", 2, 3)

	require.Error(t, err)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, 401, reqErr.StatusCode)
}
