package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"ultima-todo-api/internal/auth"
	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/middleware"
	"ultima-todo-api/internal/testutil"
)

// setupHandlerDB points the shared connection at a fresh in-memory database.
func setupHandlerDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
}

// apiRouter builds a router with the JWT middleware and the task-facing
// routes, mirroring the production route table.
func apiRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.POST("/login", Login)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())
	protected.GET("/tasks", GetTasks)
	protected.GET("/tasks/:id", GetTaskByID)
	protected.POST("/tasks", CreateTask)
	protected.POST("/tasks/parse", ParseTask)
	protected.PUT("/tasks/:id", UpdateTask)
	protected.PATCH("/tasks/:id/status", UpdateTaskStatus)
	protected.POST("/tasks/:id/toggle", ToggleTaskStatus)
	protected.DELETE("/tasks/:id", DeleteTask)
	protected.POST("/tasks/:id/timer", ToggleTimer)
	protected.GET("/timer", GetTimer)
	protected.POST("/timer/pomodoro", SetPomodoro)
	protected.POST("/tasks/:id/subtasks", AddSubtask)
	protected.POST("/tasks/:id/subtasks/:subtaskId/toggle", ToggleSubtask)
	protected.PATCH("/tasks/:id/subtasks/:subtaskId", EditSubtask)
	protected.DELETE("/tasks/:id/subtasks/:subtaskId", DeleteSubtask)
	protected.POST("/tasks/:id/breakdown", GenerateSubtasks)
	protected.GET("/templates", GetTemplates)
	protected.POST("/templates", CreateTemplate)
	protected.POST("/templates/:id/apply", ApplyTemplate)
	protected.GET("/projects", GetProjects)
	protected.POST("/projects", CreateProject)
	protected.DELETE("/projects/:id", DeleteProject)
	protected.GET("/teams", GetTeams)
	protected.POST("/teams", CreateTeam)
	protected.POST("/teams/:id/invitations", InviteMember)
	protected.POST("/invitations/:token/accept", AcceptInvitation)
	protected.POST("/ai/suggest", GetSuggestion)
	protected.GET("/stats", GetStats)
	return r
}

func testToken(t *testing.T, userID, username string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, username)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
