package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/somnathbasteai/jeni-bot/internal/completion"
	"github.com/somnathbasteai/jeni-bot/internal/handlers"
	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
	"github.com/somnathbasteai/jeni-bot/internal/logger"
	"github.com/somnathbasteai/jeni-bot/internal/middleware"
	"github.com/somnathbasteai/jeni-bot/internal/services"
	"github.com/somnathbasteai/jeni-bot/internal/testutil"
	"github.com/somnathbasteai/jeni-bot/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Completer *scriptedCompleter
}

// scriptedCompleter answers every request with reply, or fails with err.
type scriptedCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
	reqs  []completion.Request
}

func (s *scriptedCompleter) Complete(_ context.Context, req completion.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	return s.reply, s.err
}

func (s *scriptedCompleter) Model() string { return "llama-3.3-70b-versatile" }

func (s *scriptedCompleter) requests() []completion.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]completion.Request(nil), s.reqs...)
}

// appClock pins "now" to 2026-10-19 10:00 in Kolkata.
var appClock = func() time.Time { return time.Date(2026, 10, 19, 4, 30, 0, 0, time.UTC) }

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	completer := &scriptedCompleter{reply: "Sab theek hai, bhai."}

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	recordService := services.NewRecordService(db, loc.String())
	entryService := services.NewEntryService(recordService, auditService)
	aggregator := lifecontext.NewAggregator(recordService, loc, appClock)
	chatService := services.NewChatService(recordService, entryService,
		interpreter.NewDefaultRouter(loc, appClock), aggregator, completer)
	tokens := middleware.NewTokens("integration-secret", 15*time.Minute)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService, tokens)
	chatHandler := handlers.NewChatHandler(chatService)
	contextHandler := handlers.NewContextHandler(aggregator)
	recordHandler := handlers.NewRecordHandler(entryService, handlers.Clock{Loc: loc, Now: appClock})

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))

	protected.GET("/me", authHandler.Me)
	protected.POST("/chat", chatHandler.Chat)
	protected.GET("/chat/sessions/:id", chatHandler.GetSession)
	protected.GET("/context", contextHandler.GetContext)
	protected.GET("/context/prompt", contextHandler.GetPrompt)
	protected.PUT("/profile", recordHandler.UpsertProfile)
	protected.POST("/income", recordHandler.CreateIncome)
	protected.POST("/emis", recordHandler.CreateEMI)
	protected.POST("/subscriptions", recordHandler.CreateSubscription)
	protected.POST("/expenses", recordHandler.CreateExpense)
	protected.POST("/projects", recordHandler.CreateProject)
	protected.POST("/tasks", recordHandler.CreateTask)
	protected.POST("/goals", recordHandler.CreateGoal)
	protected.POST("/schedule", recordHandler.CreateScheduleItem)
	protected.PUT("/health", recordHandler.UpsertHealth)

	return &testApp{DB: db, Router: router, Completer: completer}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Rahul"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// chat sends one message and returns the decoded reply.
func (app *testApp) chat(t *testing.T, token, sessionID, message string) map[string]interface{} {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"message": message, "sessionId": sessionID})
	rec := app.request("POST", "/api/v1/chat", string(body), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat %q failed: %d %s", message, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}
