package portalapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	apperrors "github.com/MohitSinha11/hackcareer-client/pkg/errors"
	"github.com/MohitSinha11/hackcareer-client/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, httpclient.NewStandardClient(), 0, 0), srv
}

func TestClient_SendsBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := client.AdminMentors(context.Background(), "tok123")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"token":"t","userId":1,"fullName":"n","email":"e","role":"ADMIN"}`))
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), models.LoginRequest{
		Email: "e", Password: "p", Role: "ADMIN",
	})

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ServerMessageSurfaced(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Email already registered"}`))
	})
	defer srv.Close()

	err := client.CreateMentee(context.Background(), "tok", models.CreateMenteeRequest{
		FullName: "x", Email: "x@x.com", Password: "p",
	})

	require.Error(t, err)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, reqErr.StatusCode)
	assert.Equal(t, "Email already registered", reqErr.Error())
}

func TestClient_StatusCodedMessageWhenBodyUnusable(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})
	defer srv.Close()

	err := client.AssignMentor(context.Background(), "tok", models.AssignmentRequest{MentorID: 1, MenteeID: 2})

	require.Error(t, err)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, "Request failed (502)", reqErr.Error())
}

func TestClient_EmptySuccessBodyIsNotAnError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	record, err := client.MentorProfile(context.Background(), "tok")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Zero(t, record.MentorID)
}

func TestClient_RetriesTransientReadFailure(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"mentorId":2,"fullName":"Demo Mentor","email":"m@x.com","about":"a","review":"r","rating":4.8}`))
	})
	defer srv.Close()

	record, err := client.MentorProfile(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, record.MentorID)
}

func TestClient_DoesNotRetryWrites(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.CreateTask(context.Background(), "tok", models.CreateTaskRequest{
		MenteeID: 3, Title: "t", Description: "d", DueDate: "2026-01-01",
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"mentee not found"}`))
	})
	defer srv.Close()

	_, err := client.MenteeProfile(context.Background(), "tok")

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
