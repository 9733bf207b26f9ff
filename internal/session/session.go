package session

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/MohitSinha11/hackcareer-client/internal/repository"
	"github.com/MohitSinha11/hackcareer-client/pkg/jwt"
	"github.com/MohitSinha11/hackcareer-client/pkg/logger"
	"github.com/MohitSinha11/hackcareer-client/pkg/metrics"
	"github.com/MohitSinha11/hackcareer-client/pkg/storage"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Persisted client state lives under two independent keys, each holding
// one JSON-encoded value. Both are written on every change and removed
// on logout.
const (
	StorageKeyToken       = "hackcareer_token"
	StorageKeyCurrentUser = "hackcareer_current_user"
)

const msgPleaseLogIn = "Please log in first."

// CreateUserInput is the admin's create-account form
type CreateUserInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Role     string `validate:"required,oneof=mentor mentee"`
	Password string `validate:"required"`
	About    string
}

// CreateTaskInput is the mentor's create-task form
type CreateTaskInput struct {
	MenteeID    int    `validate:"required"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
	DueDate     string `validate:"required"`
}

// FeedbackInput carries a rating/comment pair. Rating arrives as the
// form string and is coerced to a number.
type FeedbackInput struct {
	TaskID  int    `validate:"required"`
	Rating  string `validate:"required"`
	Comment string `validate:"required"`
}

// CreateMeetingInput is the mentor's schedule-meeting form. A blank
// title falls back to the default meeting title.
type CreateMeetingInput struct {
	MenteeID    int    `validate:"required"`
	Title       string
	Date        string `validate:"required"`
	Time        string `validate:"required"`
	MeetingLink string
}

// Session owns the authenticated identity, the bearer credential, and
// the three role-scoped collections. All mutation goes through its
// operations; overlapping mutating calls against the same collection
// need external sequencing, read accessors can be called freely.
type Session struct {
	source   repository.DataSource
	store    storage.Store
	validate *validator.Validate

	mu       sync.RWMutex
	identity *models.Identity
	token    string
	users    []models.UserSummary
	tasks    []models.Task
	meetings []models.Meeting
}

// New creates an anonymous session over the given data source and
// persistence store
func New(source repository.DataSource, store storage.Store) *Session {
	return &Session{
		source:   source,
		store:    store,
		validate: validator.New(),
	}
}

// Restore attempts to resume a persisted session at startup. A missing
// key or an expired credential leaves the session anonymous and clears
// whatever was persisted. The follow-up role data load may fail without
// dropping the restored session; the collections just stay empty.
func (s *Session) Restore(ctx context.Context) bool {
	var token string
	var identity models.Identity

	foundToken, err := s.store.Get(StorageKeyToken, &token)
	if err != nil {
		logger.Warn("Failed to read persisted credential", zap.Error(err))
	}
	foundUser, err := s.store.Get(StorageKeyCurrentUser, &identity)
	if err != nil {
		logger.Warn("Failed to read persisted identity", zap.Error(err))
	}

	if !foundToken || !foundUser || token == "" || identity.ID == 0 {
		if foundToken || foundUser {
			s.clearPersisted()
		}
		return false
	}

	if jwt.IsExpired(token, time.Now()) {
		logger.Info("Persisted session expired, starting anonymous")
		s.clearPersisted()
		return false
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = token
	s.resetCollectionsLocked()
	s.mu.Unlock()

	if err := s.refreshRoleData(ctx); err != nil {
		logger.Warn("Role data load after restore failed", zap.Error(err))
	}
	return true
}

// Login authenticates and performs the role-scoped bulk load. On
// failure the prior session state is left untouched. A bulk load
// failure after successful authentication resets the collections but
// does not fail the login.
func (s *Session) Login(ctx context.Context, email, password, role string) Result {
	email = models.NormalizeEmail(email)
	role = models.NormalizeRole(role)

	identity, token, err := s.source.Login(ctx, email, password, role)
	if err != nil {
		return s.done("login", failureFromError(err, "Login failed."))
	}

	s.establish(identity, token)

	if err := s.refreshRoleData(ctx); err != nil {
		logger.Warn("Role data load after login failed", zap.Error(err))
	}
	return s.done("login", success())
}

// SignupAdmin creates an admin account and logs it in immediately
func (s *Session) SignupAdmin(ctx context.Context, fullName, email, password string) Result {
	fullName = strings.TrimSpace(fullName)
	email = models.NormalizeEmail(email)

	identity, token, err := s.source.SignupAdmin(ctx, fullName, email, password)
	if err != nil {
		return s.done("signupAdmin", failureFromError(err, "Admin signup failed."))
	}

	s.establish(identity, token)

	if err := s.refreshRoleData(ctx); err != nil {
		logger.Warn("Role data load after signup failed", zap.Error(err))
	}
	return s.done("signupAdmin", success())
}

// Logout clears the identity, the credential, the collections and the
// persisted state. Always succeeds.
func (s *Session) Logout() {
	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.resetCollectionsLocked()
	s.mu.Unlock()

	s.clearPersisted()
	metrics.SessionOperationTotal.WithLabelValues("logout", "success").Inc()
}

// CreateUser creates a mentor or mentee account and reloads the admin
// collections so the new account is visible
func (s *Session) CreateUser(ctx context.Context, in CreateUserInput) Result {
	const op = "createUser"

	token, _, ok := s.authed()
	if !ok {
		return s.done(op, failure(msgPleaseLogIn))
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = models.NormalizeEmail(in.Email)
	in.Role = models.NormalizeRole(in.Role)
	if msg, ok := s.checkInput(in); !ok {
		return s.done(op, failure(msg))
	}

	err := s.source.CreateUser(ctx, token, repository.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Password: in.Password,
		About:    in.About,
	})
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to create user."))
	}

	if err := s.refreshRoleData(ctx); err != nil {
		return s.done(op, failureFromError(err, "Failed to create user."))
	}
	return s.done(op, success())
}

// AssignMentor sets the mentee's mentor and reloads the admin
// collections. Reassignment overwrites the previous mentor.
func (s *Session) AssignMentor(ctx context.Context, mentorID, menteeID int) Result {
	const op = "assignMentor"

	token, _, ok := s.authed()
	if !ok {
		return s.done(op, failure(msgPleaseLogIn))
	}

	if err := s.source.AssignMentor(ctx, token, mentorID, menteeID); err != nil {
		return s.done(op, failureFromError(err, "Failed to assign mentor."))
	}

	if err := s.refreshRoleData(ctx); err != nil {
		return s.done(op, failureFromError(err, "Failed to assign mentor."))
	}
	return s.done(op, success())
}

// CreateTask creates a pending task for one of the mentor's mentees.
// The created record is merged into the task collection, most recent
// first, without a reload.
func (s *Session) CreateTask(ctx context.Context, in CreateTaskInput) Result {
	const op = "createTask"

	token, identity, ok := s.authed()
	if !ok {
		return s.done(op, failure(msgPleaseLogIn))
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if msg, ok := s.checkInput(in); !ok {
		return s.done(op, failure(msg))
	}

	task, err := s.source.CreateTask(ctx, token, identity.ID, repository.CreateTaskInput{
		MenteeID:    in.MenteeID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to create task."))
	}

	s.mu.Lock()
	s.tasks = MergeByID(append([]models.Task{*task}, s.tasks...), taskID)
	s.mu.Unlock()

	return s.done(op, success())
}

// CompleteTask marks one of the mentee's tasks done with feedback for
// the mentor. The updated record replaces its stale copy in place.
func (s *Session) CompleteTask(ctx context.Context, in FeedbackInput) Result {
	const op = "completeTask"

	token, _, ok := s.authed()
	if !ok {
		return s.done(op, failure(msgPleaseLogIn))
	}

	in.Comment = strings.TrimSpace(in.Comment)
	if msg, ok := s.checkInput(in); !ok {
		return s.done(op, failure(msg))
	}
	rating, err := parseRating(in.Rating)
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to complete task."))
	}

	task, err := s.source.CompleteTask(ctx, token, in.TaskID, rating, in.Comment)
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to complete task."))
	}

	s.foldTask(*task)
	return s.done(op, success())
}

// ReviewTask records the mentor's feedback on a completed task without
// changing its status
func (s *Session) ReviewTask(ctx context.Context, in FeedbackInput) Result {
	const op = "reviewTask"

	token, _, ok := s.authed()
	if !ok {
		return s.done(op, failure(msgPleaseLogIn))
	}

	in.Comment = strings.TrimSpace(in.Comment)
	if msg, ok := s.checkInput(in); !ok {
		return s.done(op, failure(msg))
	}
	rating, err := parseRating(in.Rating)
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to review task."))
	}

	task, err := s.source.ReviewTask(ctx, token, in.TaskID, rating, in.Comment)
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to review task."))
	}

	s.foldTask(*task)
	return s.done(op, success())
}

// CreateMeeting schedules a meeting with one of the mentor's mentees
// and merges it into the meeting collection, most recent first
func (s *Session) CreateMeeting(ctx context.Context, in CreateMeetingInput) Result {
	const op = "createMeeting"

	token, identity, ok := s.authed()
	if !ok {
		return s.done(op, failure(msgPleaseLogIn))
	}

	in.Title = strings.TrimSpace(in.Title)
	in.MeetingLink = strings.TrimSpace(in.MeetingLink)
	if msg, ok := s.checkInput(in); !ok {
		return s.done(op, failure(msg))
	}

	meeting, err := s.source.CreateMeeting(ctx, token, identity.ID, repository.CreateMeetingInput{
		MenteeID:    in.MenteeID,
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		MeetingLink: in.MeetingLink,
	})
	if err != nil {
		return s.done(op, failureFromError(err, "Failed to create meeting."))
	}

	s.mu.Lock()
	s.meetings = MergeByID(append([]models.Meeting{*meeting}, s.meetings...), meetingID)
	s.mu.Unlock()

	return s.done(op, success())
}

// LoadMentorMenteeItems replaces the task and meeting collections with
// exactly those belonging to the given mentee under this mentor. Any
// failure leaves both collections empty rather than stale.
func (s *Session) LoadMentorMenteeItems(ctx context.Context, menteeID int) Result {
	const op = "loadMentorMenteeItems"

	token, identity, ok := s.authed()
	if !ok || menteeID == 0 {
		s.mu.Lock()
		s.tasks = []models.Task{}
		s.meetings = []models.Meeting{}
		s.mu.Unlock()
		return s.done(op, failure(msgPleaseLogIn))
	}

	tasks, meetings, err := s.source.MenteeItems(ctx, token, identity.ID, menteeID)
	if err != nil {
		s.mu.Lock()
		s.tasks = []models.Task{}
		s.meetings = []models.Meeting{}
		s.mu.Unlock()
		return s.done(op, failureFromError(err, "Failed to load mentee items."))
	}

	s.mu.Lock()
	s.tasks = tasks
	s.meetings = meetings
	s.mu.Unlock()

	return s.done(op, success())
}

// CurrentUser returns a copy of the authenticated identity, or nil when
// anonymous
func (s *Session) CurrentUser() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Token returns the session credential, empty when anonymous
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Users returns a copy of the role-scoped user collection
func (s *Session) Users() []models.UserSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.UserSummary(nil), s.users...)
}

// Tasks returns a copy of the role-scoped task collection
func (s *Session) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task(nil), s.tasks...)
}

// Meetings returns a copy of the role-scoped meeting collection
func (s *Session) Meetings() []models.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Meeting(nil), s.meetings...)
}

// establish replaces the session identity and credential after a
// successful authentication and persists both
func (s *Session) establish(identity models.Identity, token string) {
	s.mu.Lock()
	s.identity = &identity
	s.token = token
	s.resetCollectionsLocked()
	s.mu.Unlock()

	s.persistSession()
}

// refreshRoleData performs the role-scoped bulk load and replaces the
// collections. On failure the collections are reset to empty: a
// half-populated mix is worse than an empty one.
func (s *Session) refreshRoleData(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	identityPtr := s.identity
	s.mu.RUnlock()

	if token == "" || identityPtr == nil {
		return nil
	}
	identity := *identityPtr

	start := time.Now()
	data, err := s.source.LoadRoleData(ctx, token, identity)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.RoleDataLoadDuration.WithLabelValues(identity.Role, "error").Observe(duration)
		s.mu.Lock()
		s.resetCollectionsLocked()
		s.mu.Unlock()
		return err
	}

	metrics.RoleDataLoadDuration.WithLabelValues(identity.Role, "success").Observe(duration)

	s.mu.Lock()
	if data.Identity != nil {
		s.identity = data.Identity
	}
	s.users = data.Users
	s.tasks = data.Tasks
	s.meetings = data.Meetings
	if s.users == nil {
		s.users = []models.UserSummary{}
	}
	if s.tasks == nil {
		s.tasks = []models.Task{}
	}
	if s.meetings == nil {
		s.meetings = []models.Meeting{}
	}
	s.mu.Unlock()

	if data.Identity != nil {
		s.persistSession()
	}
	return nil
}

// foldTask replaces the task with the same id in place; unknown ids are
// ignored
func (s *Session) foldTask(updated models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			return
		}
	}
}

// authed returns the credential and identity when the session is
// authenticated
func (s *Session) authed() (string, models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || s.identity == nil {
		return "", models.Identity{}, false
	}
	return s.token, *s.identity, true
}

// checkInput validates a form input struct and renders the first
// violation as a short message
func (s *Session) checkInput(in interface{}) (string, bool) {
	err := s.validate.Struct(in)
	if err == nil {
		return "", true
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "oneof" {
			return field + " must be one of: " + fe.Param(), false
		}
		return field + " is required", false
	}
	return "invalid input", false
}

// resetCollectionsLocked empties the three collections. Caller holds
// the write lock.
func (s *Session) resetCollectionsLocked() {
	s.users = []models.UserSummary{}
	s.tasks = []models.Task{}
	s.meetings = []models.Meeting{}
}

// persistSession writes the credential and identity synchronously.
// Persistence failures are logged, never surfaced: the live session is
// the source of truth.
func (s *Session) persistSession() {
	s.mu.RLock()
	token := s.token
	identityPtr := s.identity
	s.mu.RUnlock()

	if err := s.store.Set(StorageKeyToken, token); err != nil {
		logger.Warn("Failed to persist credential", zap.Error(err))
	}
	if identityPtr != nil {
		if err := s.store.Set(StorageKeyCurrentUser, *identityPtr); err != nil {
			logger.Warn("Failed to persist identity", zap.Error(err))
		}
	}
}

// clearPersisted removes both persisted keys
func (s *Session) clearPersisted() {
	if err := s.store.Delete(StorageKeyToken); err != nil {
		logger.Warn("Failed to clear persisted credential", zap.Error(err))
	}
	if err := s.store.Delete(StorageKeyCurrentUser); err != nil {
		logger.Warn("Failed to clear persisted identity", zap.Error(err))
	}
}

// done records the operation outcome metric and passes the result through
func (s *Session) done(op string, res Result) Result {
	status := "success"
	if !res.OK {
		status = "failure"
	}
	metrics.SessionOperationTotal.WithLabelValues(op, status).Inc()
	return res
}

// parseRating coerces a form rating string to its numeric value
func parseRating(raw string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	return rating, nil
}

func taskID(t models.Task) int       { return t.ID }
func meetingID(m models.Meeting) int { return m.ID }
