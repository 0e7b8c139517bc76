package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ultima-todo-api/internal/ai"
	"ultima-todo-api/internal/cache"
	"ultima-todo-api/internal/models"
)

// aiClient is the shared text-completion client, wired during startup (and
// swapped for an httptest-backed one in tests).
var aiClient *ai.Client

// SetAIClient installs the completion client used by the AI handlers.
func SetAIClient(c *ai.Client) {
	aiClient = c
}

const aiCacheTTL = 5 * time.Minute

var (
	// suggestionCache keeps one productivity suggestion per user.
	suggestionCache = cache.New[string, string]()
	// breakdownCache keeps generated subtask titles per task description,
	// so repeat breakdowns of the same title skip the upstream call. Ids
	// are minted fresh on every use.
	breakdownCache = cache.New[string, []string]()
)

// currentUserID extracts the authenticated user id or writes a 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return "", false
	}
	return userID, true
}

// parseIDParam parses a numeric path parameter or writes a 400.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// withProgress recomputes the derived completion percentage before a task
// leaves the API.
func withProgress(task models.Task) models.Task {
	task.RecomputeProgress()
	return task
}

func withProgressAll(tasks []models.Task) []models.Task {
	for i := range tasks {
		tasks[i].RecomputeProgress()
	}
	return tasks
}
