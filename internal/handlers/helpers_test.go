package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task-tracker-api/internal/auth"
	"task-tracker-api/internal/config"
	"task-tracker-api/internal/middleware"
	"task-tracker-api/internal/service"
	"task-tracker-api/internal/store"
	"task-tracker-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret-long-enough-123456"

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	tokens *auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := service.NewTaskService(store.NewGormTaskStore(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
	tokens := auth.NewTokenService(config.AuthConfig{
		JWTSecret:      testSecret,
		Issuer:         "task-management-api",
		Audience:       "task-management-clients",
		TokenTTL:       time.Hour,
		ClaimsCacheTTL: time.Minute,
	})

	h := NewTaskHandler(svc, 50)
	r := gin.New()
	r.POST("/api/login", NewAuthHandler(tokens).Login)
	g := r.Group("/api/tasks", middleware.JWTAuthMiddleware(tokens))
	g.GET("", h.ListTasks)
	g.POST("", h.CreateTask)
	g.GET("/stats", h.GetStats)
	g.GET("/:id", h.GetTaskByID)
	g.PUT("/:id", h.UpdateTask)
	g.DELETE("/:id", h.DeleteTask)
	g.PATCH("/:id/status", h.ChangeStatus)
	g.PATCH("/:id/assignee", h.SetAssignee)
	g.POST("/:id/comments", h.AddComment)

	return &testAPI{t: t, router: r, tokens: tokens}
}

func (a *testAPI) token(email string) string {
	a.t.Helper()
	token, err := a.tokens.GenerateToken(email)
	require.NoError(a.t, err)
	return token
}

// tokenWithoutEmail is a valid token whose claims lack an email.
func (a *testAPI) tokenWithoutEmail() string {
	a.t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "robot",
		"iss": "task-management-api",
		"aud": "task-management-clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(a.t, err)
	return token
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func taskBody(assignee string) map[string]any {
	body := map[string]any{
		"header":      "Implement authentication",
		"description": "Implement user authentication",
		"priority":    "HIGH",
		"status":      "PENDING",
	}
	if assignee != "" {
		body["assignee"] = assignee
	}
	return body
}

func (a *testAPI) createTask(creator, assignee string) TaskView {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/tasks", a.token(creator), taskBody(assignee))
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[TaskView](a.t, w)
}
