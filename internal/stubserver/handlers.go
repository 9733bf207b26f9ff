package stubserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid login payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	for _, a := range s.accounts {
		if strings.ToLower(a.Email) == email && a.Password == req.Password && a.Role == role {
			s.respondAuth(c, a)
			return
		}
	}
	respondMessage(c, http.StatusUnauthorized, "Invalid credentials")
}

func (s *Server) adminSignup(c *gin.Context) {
	var req models.AdminSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid signup payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, a := range s.accounts {
		if strings.ToLower(a.Email) == email {
			respondMessage(c, http.StatusConflict, "Email already registered")
			return
		}
	}

	a := account{
		ID:       s.nextID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Role:     roleAdmin,
		Password: req.Password,
	}
	s.nextID++
	s.accounts = append(s.accounts, a)
	s.respondAuth(c, a)
}

// respondAuth mints a token for the account. Caller holds the lock.
func (s *Server) respondAuth(c *gin.Context, a account) {
	token, err := s.tokens.GenerateToken(a.ID, a.Email, a.FullName, a.Role)
	if err != nil {
		respondMessage(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{
		Token:    token,
		UserID:   a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		Role:     a.Role,
	})
}

func (s *Server) listMentors(c *gin.Context) {
	c.JSON(http.StatusOK, s.usersByRole(roleMentor))
}

func (s *Server) listMentees(c *gin.Context) {
	c.JSON(http.StatusOK, s.usersByRole(roleMentee))
}

func (s *Server) usersByRole(role string) []models.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.UserRecord{}
	for _, a := range s.accounts {
		if a.Role == role {
			out = append(out, models.UserRecord{ID: a.ID, FullName: a.FullName, Email: a.Email, Role: a.Role})
		}
	}
	return out
}

func (s *Server) createMentor(c *gin.Context) {
	var req models.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid mentor payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(req.Email) {
		respondMessage(c, http.StatusConflict, "Email already registered")
		return
	}
	s.accounts = append(s.accounts, account{
		ID:       s.nextID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     roleMentor,
		Password: req.Password,
		About:    req.About,
		Review:   req.Review,
		Rating:   req.Rating,
	})
	s.nextID++
	c.Status(http.StatusCreated)
}

func (s *Server) createMentee(c *gin.Context) {
	var req models.CreateMenteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid mentee payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(req.Email) {
		respondMessage(c, http.StatusConflict, "Email already registered")
		return
	}
	s.accounts = append(s.accounts, account{
		ID:       s.nextID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     roleMentee,
		Password: req.Password,
		Bio:      req.Bio,
	})
	s.nextID++
	c.Status(http.StatusCreated)
}

func (s *Server) assignMentor(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid assignment payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(req.MentorID, roleMentor) == nil {
		respondMessage(c, http.StatusNotFound, "mentor not found")
		return
	}
	mentee := s.findLocked(req.MenteeID, roleMentee)
	if mentee == nil {
		respondMessage(c, http.StatusNotFound, "mentee not found")
		return
	}
	mentee.MentorID = req.MentorID
	c.Status(http.StatusOK)
}

func (s *Server) mentorProfile(c *gin.Context) {
	claims := callerClaims(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findLocked(claims.UserID, roleMentor)
	if a == nil {
		respondMessage(c, http.StatusNotFound, "mentor not found")
		return
	}
	c.JSON(http.StatusOK, models.MentorProfileRecord{
		MentorID: a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		About:    a.About,
		Review:   a.Review,
		Rating:   a.Rating,
	})
}

func (s *Server) mentorMentees(c *gin.Context) {
	claims := callerClaims(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.UserRecord{}
	for _, a := range s.accounts {
		if a.Role == roleMentee && a.MentorID == claims.UserID {
			out = append(out, models.UserRecord{ID: a.ID, FullName: a.FullName, Email: a.Email})
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createTask(c *gin.Context) {
	claims := callerClaims(c)

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid task payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mentee := s.findLocked(req.MenteeID, roleMentee)
	if mentee == nil || mentee.MentorID != claims.UserID {
		respondMessage(c, http.StatusNotFound, "mentee not found")
		return
	}

	task := models.TaskRecord{
		ID:          s.nextID,
		MentorID:    claims.UserID,
		MenteeID:    req.MenteeID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      "PENDING",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		MentorName:  claims.Name,
	}
	s.nextID++
	s.tasks = append([]models.TaskRecord{task}, s.tasks...)
	c.JSON(http.StatusCreated, task)
}

func (s *Server) reviewTask(c *gin.Context) {
	claims := callerClaims(c)
	taskID, _ := strconv.Atoi(c.Param("id"))

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid feedback payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(taskID)
	if task == nil || task.MentorID != claims.UserID {
		respondMessage(c, http.StatusNotFound, "task not found")
		return
	}
	if !strings.EqualFold(task.Status, "DONE") {
		respondMessage(c, http.StatusBadRequest, "task is not completed yet")
		return
	}

	rating := req.Rating
	comment := req.Comment
	task.MentorRatingForMentee = &rating
	task.MentorReviewForMentee = &comment
	c.JSON(http.StatusOK, *task)
}

func (s *Server) createMeeting(c *gin.Context) {
	claims := callerClaims(c)

	var req models.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid meeting payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mentee := s.findLocked(req.MenteeID, roleMentee)
	if mentee == nil || mentee.MentorID != claims.UserID {
		respondMessage(c, http.StatusNotFound, "mentee not found")
		return
	}

	meeting := models.MeetingRecord{
		ID:          s.nextID,
		MentorID:    claims.UserID,
		MenteeID:    req.MenteeID,
		ScheduledAt: req.ScheduledAt,
		Agenda:      req.Agenda,
		MeetingLink: req.MeetingLink,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		MentorName:  claims.Name,
	}
	s.nextID++
	s.meetings = append([]models.MeetingRecord{meeting}, s.meetings...)
	c.JSON(http.StatusCreated, meeting)
}

func (s *Server) mentorMenteeTasks(c *gin.Context) {
	claims := callerClaims(c)
	menteeID, _ := strconv.Atoi(c.Param("menteeId"))
	c.JSON(http.StatusOK, s.tasksFor(claims.UserID, menteeID))
}

func (s *Server) mentorMenteeMeetings(c *gin.Context) {
	claims := callerClaims(c)
	menteeID, _ := strconv.Atoi(c.Param("menteeId"))
	c.JSON(http.StatusOK, s.meetingsFor(claims.UserID, menteeID))
}

func (s *Server) menteeProfile(c *gin.Context) {
	claims := callerClaims(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findLocked(claims.UserID, roleMentee)
	if a == nil {
		respondMessage(c, http.StatusNotFound, "mentee not found")
		return
	}
	c.JSON(http.StatusOK, models.MenteeProfileRecord{
		ID:       a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		Bio:      a.Bio,
	})
}

func (s *Server) menteeTasks(c *gin.Context) {
	claims := callerClaims(c)
	c.JSON(http.StatusOK, s.tasksFor(0, claims.UserID))
}

func (s *Server) menteeMeetings(c *gin.Context) {
	claims := callerClaims(c)
	c.JSON(http.StatusOK, s.meetingsFor(0, claims.UserID))
}

func (s *Server) completeTask(c *gin.Context) {
	claims := callerClaims(c)
	taskID, _ := strconv.Atoi(c.Param("id"))

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid feedback payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(taskID)
	if task == nil || task.MenteeID != claims.UserID {
		respondMessage(c, http.StatusNotFound, "task not found")
		return
	}

	task.Status = "DONE"
	if task.CompletedAt == nil {
		completed := time.Now().UTC().Format(time.RFC3339)
		task.CompletedAt = &completed
	}
	rating := req.Rating
	comment := req.Comment
	task.MenteeRatingForMentor = &rating
	task.MenteeReviewForMentor = &comment
	c.JSON(http.StatusOK, *task)
}

// tasksFor filters tasks by mentor and mentee; a zero id matches all
func (s *Server) tasksFor(mentorID, menteeID int) []models.TaskRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.TaskRecord{}
	for _, t := range s.tasks {
		if (mentorID == 0 || t.MentorID == mentorID) && (menteeID == 0 || t.MenteeID == menteeID) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Server) meetingsFor(mentorID, menteeID int) []models.MeetingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.MeetingRecord{}
	for _, m := range s.meetings {
		if (mentorID == 0 || m.MentorID == mentorID) && (menteeID == 0 || m.MenteeID == menteeID) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Server) emailTakenLocked(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.accounts {
		if strings.ToLower(a.Email) == email {
			return true
		}
	}
	return false
}

func (s *Server) findLocked(id int, role string) *account {
	for i := range s.accounts {
		if s.accounts[i].ID == id && s.accounts[i].Role == role {
			return &s.accounts[i]
		}
	}
	return nil
}

func (s *Server) findTaskLocked(id int) *models.TaskRecord {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}
