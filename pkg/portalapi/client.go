package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/MohitSinha11/hackcareer-client/pkg/circuitbreaker"
	apperrors "github.com/MohitSinha11/hackcareer-client/pkg/errors"
	"github.com/MohitSinha11/hackcareer-client/pkg/httpclient"
	"github.com/MohitSinha11/hackcareer-client/pkg/logger"
	"github.com/MohitSinha11/hackcareer-client/pkg/metrics"
	"github.com/MohitSinha11/hackcareer-client/pkg/retry"
	"github.com/MohitSinha11/hackcareer-client/pkg/tracing"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the portal service over JSON/HTTP with bearer-token
// auth. Read operations are retried and the list endpoints run behind a
// circuit breaker; writes go out exactly once.
type Client struct {
	baseURL  string
	http     httpclient.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	retryCfg retry.Config
}

// NewClient creates a portal API client. rps of 0 disables the
// client-side rate limiter.
func NewClient(baseURL string, httpClient httpclient.Client, rps float64, burst int) *Client {
	var limiter *rate.Limiter
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	retryCfg := retry.PortalConfig()
	retryCfg.RetryableErrors = func(err error) bool {
		if reqErr, ok := apperrors.AsRequestError(err); ok {
			// 4xx responses are contract failures, not transient ones
			return reqErr.StatusCode >= 500
		}
		return true
	}

	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		limiter:  limiter,
		breaker:  circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("portal-api")),
		retryCfg: retryCfg,
	}
}

// Login authenticates a user; no credential is attached
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignupAdmin registers a new admin account and returns its session payload
func (c *Client) SignupAdmin(ctx context.Context, req models.AdminSignupRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, "signupAdmin", http.MethodPost, "/api/auth/admin-signup", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminMentors lists every mentor visible to an admin
func (c *Client) AdminMentors(ctx context.Context, token string) ([]models.UserRecord, error) {
	return c.getList(ctx, "adminMentors", "/api/admin/mentors", token)
}

// AdminMentees lists every mentee visible to an admin
func (c *Client) AdminMentees(ctx context.Context, token string) ([]models.UserRecord, error) {
	return c.getList(ctx, "adminMentees", "/api/admin/mentees", token)
}

// CreateMentor creates a mentor account (admin)
func (c *Client) CreateMentor(ctx context.Context, token string, req models.CreateMentorRequest) error {
	return c.do(ctx, "createMentor", http.MethodPost, "/api/admin/users/mentor", token, req, nil)
}

// CreateMentee creates a mentee account (admin)
func (c *Client) CreateMentee(ctx context.Context, token string, req models.CreateMenteeRequest) error {
	return c.do(ctx, "createMentee", http.MethodPost, "/api/admin/users/mentee", token, req, nil)
}

// AssignMentor assigns a mentor to a mentee (admin)
func (c *Client) AssignMentor(ctx context.Context, token string, req models.AssignmentRequest) error {
	return c.do(ctx, "assignMentor", http.MethodPost, "/api/admin/assignments", token, req, nil)
}

// MentorProfile fetches the authenticated mentor's own profile
func (c *Client) MentorProfile(ctx context.Context, token string) (*models.MentorProfileRecord, error) {
	var out models.MentorProfileRecord
	if err := c.do(ctx, "mentorProfile", http.MethodGet, "/api/mentor/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MentorMentees lists the mentees assigned to the authenticated mentor
func (c *Client) MentorMentees(ctx context.Context, token string) ([]models.UserRecord, error) {
	return c.getList(ctx, "mentorMentees", "/api/mentor/mentees", token)
}

// CreateTask creates a task for one of the mentor's mentees
func (c *Client) CreateTask(ctx context.Context, token string, req models.CreateTaskRequest) (*models.TaskRecord, error) {
	var out models.TaskRecord
	if err := c.do(ctx, "createTask", http.MethodPost, "/api/mentor/tasks", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewTask records the mentor's feedback on a completed task
func (c *Client) ReviewTask(ctx context.Context, token string, taskID int, req models.FeedbackRequest) (*models.TaskRecord, error) {
	var out models.TaskRecord
	path := fmt.Sprintf("/api/mentor/tasks/%d/review", taskID)
	if err := c.do(ctx, "reviewTask", http.MethodPost, path, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMeeting schedules a meeting with one of the mentor's mentees
func (c *Client) CreateMeeting(ctx context.Context, token string, req models.CreateMeetingRequest) (*models.MeetingRecord, error) {
	var out models.MeetingRecord
	if err := c.do(ctx, "createMeeting", http.MethodPost, "/api/mentor/meetings", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MentorMenteeTasks lists the tasks a mentor created for one mentee
func (c *Client) MentorMenteeTasks(ctx context.Context, token string, menteeID int) ([]models.TaskRecord, error) {
	path := fmt.Sprintf("/api/mentor/tasks/%d", menteeID)
	return listThroughBreaker[models.TaskRecord](c, ctx, "mentorMenteeTasks", path, token)
}

// MentorMenteeMeetings lists the meetings a mentor scheduled with one mentee
func (c *Client) MentorMenteeMeetings(ctx context.Context, token string, menteeID int) ([]models.MeetingRecord, error) {
	path := fmt.Sprintf("/api/mentor/meetings/%d", menteeID)
	return listThroughBreaker[models.MeetingRecord](c, ctx, "mentorMenteeMeetings", path, token)
}

// MenteeProfile fetches the authenticated mentee's own profile
func (c *Client) MenteeProfile(ctx context.Context, token string) (*models.MenteeProfileRecord, error) {
	var out models.MenteeProfileRecord
	if err := c.do(ctx, "menteeProfile", http.MethodGet, "/api/mentee/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MenteeTasks lists the authenticated mentee's tasks
func (c *Client) MenteeTasks(ctx context.Context, token string) ([]models.TaskRecord, error) {
	return listThroughBreaker[models.TaskRecord](c, ctx, "menteeTasks", "/api/mentee/tasks", token)
}

// MenteeMeetings lists the authenticated mentee's meetings
func (c *Client) MenteeMeetings(ctx context.Context, token string) ([]models.MeetingRecord, error) {
	return listThroughBreaker[models.MeetingRecord](c, ctx, "menteeMeetings", "/api/mentee/meetings", token)
}

// CompleteTask marks one of the mentee's tasks done with feedback for
// the mentor
func (c *Client) CompleteTask(ctx context.Context, token string, taskID int, req models.FeedbackRequest) (*models.TaskRecord, error) {
	var out models.TaskRecord
	path := fmt.Sprintf("/api/mentee/tasks/%d/complete", taskID)
	if err := c.do(ctx, "completeTask", http.MethodPost, path, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getList fetches a user list endpoint through the circuit breaker
func (c *Client) getList(ctx context.Context, operation, path, token string) ([]models.UserRecord, error) {
	return listThroughBreaker[models.UserRecord](c, ctx, operation, path, token)
}

// listThroughBreaker wraps a list fetch with circuit breaker protection
func listThroughBreaker[T any](c *Client, ctx context.Context, operation, path, token string) ([]T, error) {
	result, err := circuitbreaker.Execute(c.breaker, func() ([]T, error) {
		var out []T
		if err := c.do(ctx, operation, http.MethodGet, path, token, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, circuitbreaker.FormatError(c.breaker.Name(), err)
	}
	return result, nil
}

// do executes one API call: rate limit, tracing span, retry for reads,
// metrics, and uniform error mapping.
func (c *Client) do(ctx context.Context, operation, method, path, token string, body, out interface{}) error {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "portalapi."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var raw json.RawMessage
	var err error

	if method == http.MethodGet {
		raw, err = retry.DoWithResult(ctx, c.retryCfg, operation, func() (json.RawMessage, error) {
			return c.send(ctx, method, path, token, body)
		})
	} else {
		// Writes are not idempotent, never retry them
		raw, err = c.send(ctx, method, path, token, body)
	}

	duration := metrics.MeasureDuration(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.PortalRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.PortalRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("portal", operation, "error", duration, zap.Error(err))
		return err
	}

	metrics.PortalRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.PortalRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("portal", operation, "success", duration)

	// An empty or non-JSON 2xx body means "no data", never an error
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Debug("Discarding undecodable response body",
			zap.String("operation", operation),
			zap.Error(err))
	}
	return nil
}

// send performs a single HTTP round trip and maps non-2xx responses to
// RequestError
func (c *Client) send(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
		}
		if len(data) > 0 {
			_ = json.Unmarshal(data, &errBody)
		}
		return nil, apperrors.NewRequestError(resp.StatusCode, errBody.Message)
	}

	if len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}
