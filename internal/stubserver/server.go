// Package stubserver is an in-process double of the portal service. It
// speaks the same JSON contract the client consumes, backed by an
// in-memory dataset, and is used by integration tests and the demo
// binary when no real deployment is reachable.
package stubserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MohitSinha11/hackcareer-client/internal/models"
	"github.com/MohitSinha11/hackcareer-client/pkg/jwt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	claimsKey = "sessionClaims"

	roleAdmin  = "ADMIN"
	roleMentor = "MENTOR"
	roleMentee = "MENTEE"
)

// account is a portal user row with its credential. Passwords stay
// inside the stub; every serialized shape is projected from this.
type account struct {
	ID       int
	FullName string
	Email    string
	Role     string
	Password string
	About    string
	Bio      string
	Review   string
	Rating   float64
	MentorID int
}

// Server holds the stub's dataset and issues real signed tokens so the
// client's credential handling can be tested end to end.
type Server struct {
	engine *gin.Engine
	tokens *jwt.TokenManager

	mu       sync.Mutex
	accounts []account
	tasks    []models.TaskRecord
	meetings []models.MeetingRecord
	nextID   int
}

// New builds a stub seeded with the standard demo dataset: one admin,
// one mentor, one mentee already assigned to that mentor.
func New(secret string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		tokens: jwt.NewTokenManager(secret, "hackcareer-stub", 24),
		accounts: []account{
			{ID: 1, FullName: "HackCareer Admin", Email: "admin@hackcareer.com", Role: roleAdmin, Password: "Admin@123"},
			{ID: 2, FullName: "Demo Mentor", Email: "mentor1@hackcareer.com", Role: roleMentor, Password: "Mentor@123",
				About: "Senior engineer, 10 years in backend systems.", Review: "Great mentor", Rating: 4.8},
			{ID: 3, FullName: "Demo Mentee", Email: "mentee1@hackcareer.com", Role: roleMentee, Password: "Mentee@123",
				Bio: "Aspiring developer learning the craft.", MentorID: 2},
		},
		nextID: 4,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/admin-signup", s.adminSignup)

	admin := api.Group("/admin", s.requireRole(roleAdmin))
	admin.GET("/mentors", s.listMentors)
	admin.GET("/mentees", s.listMentees)
	admin.POST("/users/mentor", s.createMentor)
	admin.POST("/users/mentee", s.createMentee)
	admin.POST("/assignments", s.assignMentor)

	mentor := api.Group("/mentor", s.requireRole(roleMentor))
	mentor.GET("/profile", s.mentorProfile)
	mentor.GET("/mentees", s.mentorMentees)
	mentor.POST("/tasks", s.createTask)
	mentor.POST("/tasks/:id/review", s.reviewTask)
	mentor.POST("/meetings", s.createMeeting)
	mentor.GET("/tasks/:menteeId", s.mentorMenteeTasks)
	mentor.GET("/meetings/:menteeId", s.mentorMenteeMeetings)

	mentee := api.Group("/mentee", s.requireRole(roleMentee))
	mentee.GET("/profile", s.menteeProfile)
	mentee.GET("/tasks", s.menteeTasks)
	mentee.GET("/meetings", s.menteeMeetings)
	mentee.POST("/tasks/:id/complete", s.completeTask)

	s.engine = engine
	return s
}

// ServeHTTP lets the stub be mounted directly under httptest.Server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// requireRole validates the bearer token and checks the caller's role
func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondMessage(c, http.StatusUnauthorized, "Missing authentication token")
			c.Abort()
			return
		}

		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			respondMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		if claims.Role != role {
			respondMessage(c, http.StatusForbidden, "Access denied for this role")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func callerClaims(c *gin.Context) *jwt.SessionClaims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*jwt.SessionClaims)
	return claims
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
