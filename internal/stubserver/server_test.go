package stubserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, s *Server, email, password, role string) string {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email: email, Password: password, Role: role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := New("test-secret")

	w := doJSON(t, s, http.MethodGet, "/api/admin/mentors", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestProtectedRoutes_RejectGarbageToken(t *testing.T) {
	s := New("test-secret")

	w := doJSON(t, s, http.MethodGet, "/api/admin/mentors", "not-a-jwt", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_EnforceRole(t *testing.T) {
	s := New("test-secret")
	menteeToken := loginToken(t, s, "mentee1@hackcareer.com", "Mentee@123", "MENTEE")

	w := doJSON(t, s, http.MethodGet, "/api/admin/mentors", menteeToken, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := New("test-secret")

	w := doJSON(t, s, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email: "admin@hackcareer.com", Password: "wrong", Role: "ADMIN",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAdminSignup_DuplicateEmail(t *testing.T) {
	s := New("test-secret")

	w := doJSON(t, s, http.MethodPost, "/api/auth/admin-signup", "", models.AdminSignupRequest{
		FullName: "Dup", Email: "admin@hackcareer.com", Password: "p",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFeedbackValidation_RatingOutOfRange(t *testing.T) {
	s := New("test-secret")
	mentorToken := loginToken(t, s, "mentor1@hackcareer.com", "Mentor@123", "MENTOR")

	w := doJSON(t, s, http.MethodPost, "/api/mentor/tasks", mentorToken, models.CreateTaskRequest{
		MenteeID: 3, Title: "t", Description: "d", DueDate: "2026-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task models.TaskRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	menteeToken := loginToken(t, s, "mentee1@hackcareer.com", "Mentee@123", "MENTEE")
	w = doJSON(t, s, http.MethodPost,
		"/api/mentee/tasks/"+strconv.Itoa(task.ID)+"/complete", menteeToken,
		map[string]interface{}{"rating": 9, "comment": "too high"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
