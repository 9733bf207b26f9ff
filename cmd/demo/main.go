package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/MohitSinha11/hackcareer-client/config"
	"github.com/MohitSinha11/hackcareer-client/internal/repository"
	"github.com/MohitSinha11/hackcareer-client/internal/session"
	"github.com/MohitSinha11/hackcareer-client/internal/stubserver"
	"github.com/MohitSinha11/hackcareer-client/pkg/httpclient"
	"github.com/MohitSinha11/hackcareer-client/pkg/logger"
	"github.com/MohitSinha11/hackcareer-client/pkg/storage"
	"github.com/MohitSinha11/hackcareer-client/pkg/tracing"
	"go.uber.org/zap"
)

// Scripted walkthrough of the portal client: admin provisions accounts,
// the mentor assigns work, the mentee completes it, the mentor reviews.
// With no base URL configured an in-process stub service is started so
// the remote path can be exercised without a deployment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Client.AppEnv,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	shutdownTracing, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Client.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Tracing shutdown failed", zap.Error(err))
		}
	}()

	if !cfg.Client.DemoMode && cfg.API.BaseURL == "" {
		baseURL, stop, err := startStub(cfg.Session.JWTSecret)
		if err != nil {
			logger.Fatal("Failed to start stub service", zap.Error(err))
		}
		defer stop()
		cfg.API.BaseURL = baseURL
		logger.Info("Started in-process stub service", zap.String("base_url", baseURL))
	}

	httpClient := httpclient.NewStandardClientWithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)
	source := repository.Select(cfg, httpClient)

	store, err := storage.NewFileStore(cfg.Client.StateFile)
	if err != nil {
		logger.Fatal("Failed to open state file", zap.Error(err))
	}

	sess := session.New(source, store)
	ctx := context.Background()

	if sess.Restore(ctx) {
		fmt.Printf("Restored session for %s, logging out to run the walkthrough\n", sess.CurrentUser().Email)
		sess.Logout()
	}

	run(ctx, sess)
}

func run(ctx context.Context, sess *session.Session) {
	step("admin login", sess.Login(ctx, "admin@hackcareer.com", "Admin@123", "admin"))
	fmt.Printf("  admin sees %d accounts\n", len(sess.Users()))

	step("create mentor", sess.CreateUser(ctx, session.CreateUserInput{
		Name:     "Priya Sharma",
		Email:    "priya@hackcareer.com",
		Role:     "mentor",
		Password: "Priya@123",
		About:    "Staff engineer, ten years in backend systems.",
	}))
	step("create mentee", sess.CreateUser(ctx, session.CreateUserInput{
		Name:     "Jane Doe",
		Email:    "jane@hackcareer.com",
		Role:     "mentee",
		Password: "Jane@123",
		About:    "Switching careers into software.",
	}))

	janeID := 0
	for _, u := range sess.Users() {
		if u.Email == "jane@hackcareer.com" {
			janeID = u.ID
		}
	}
	step("assign mentor", sess.AssignMentor(ctx, 2, janeID))
	sess.Logout()

	step("mentor login", sess.Login(ctx, "mentor1@hackcareer.com", "Mentor@123", "mentor"))
	step("create task", sess.CreateTask(ctx, session.CreateTaskInput{
		MenteeID:    3,
		Title:       "Build a REST API",
		Description: "Design and implement a small CRUD service.",
		DueDate:     "2026-09-15",
	}))
	step("schedule meeting", sess.CreateMeeting(ctx, session.CreateMeetingInput{
		MenteeID: 3,
		Title:    "Sprint check-in",
		Date:     "2026-09-01",
		Time:     "14:30",
	}))
	step("load mentee items", sess.LoadMentorMenteeItems(ctx, 3))
	fmt.Printf("  mentee 3 has %d tasks, %d meetings\n", len(sess.Tasks()), len(sess.Meetings()))

	taskID := 0
	if tasks := sess.Tasks(); len(tasks) > 0 {
		taskID = tasks[0].ID
	}
	sess.Logout()

	step("mentee login", sess.Login(ctx, "mentee1@hackcareer.com", "Mentee@123", "mentee"))
	step("complete task", sess.CompleteTask(ctx, session.FeedbackInput{
		TaskID:  taskID,
		Rating:  "4",
		Comment: "Clear requirements, learned a lot.",
	}))
	sess.Logout()

	step("mentor login", sess.Login(ctx, "mentor1@hackcareer.com", "Mentor@123", "mentor"))
	step("load mentee items", sess.LoadMentorMenteeItems(ctx, 3))
	step("review task", sess.ReviewTask(ctx, session.FeedbackInput{
		TaskID:  taskID,
		Rating:  "5",
		Comment: "Solid implementation, good error handling.",
	}))
	sess.Logout()

	fmt.Println("Walkthrough complete")
}

func step(name string, res session.Result) {
	if res.OK {
		fmt.Printf("ok   %s\n", name)
		return
	}
	fmt.Printf("FAIL %s: %s\n", name, res.Message)
}

// startStub serves the stub portal on a loopback listener
func startStub(secret string) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	srv := &http.Server{Handler: stubserver.New(secret)}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("Stub service stopped", zap.Error(err))
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return "http://" + ln.Addr().String(), stop, nil
}
