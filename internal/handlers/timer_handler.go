package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ultima-todo-api/internal/realtime"
	"ultima-todo-api/internal/store"
	"ultima-todo-api/internal/tracker"
)

// ToggleTimer handles POST /api/tasks/:id/timer
// Starts the timer for the task, or pauses it if it is already the active
// one. Starting a timer while another task is active stops the previous one
// first; at most one timer runs at any instant.
func ToggleTimer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// The timer only ever accrues onto tasks the caller owns.
	if _, err := store.GetTask(userID, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	state := tracker.Get().Toggle(userID, taskID)

	event := "timer_stopped"
	if state.Running {
		event = "timer_started"
	}
	realtime.Publish(userID, event, map[string]any{"task_id": taskID})
	c.JSON(http.StatusOK, state)
}

// GetTimer handles GET /api/timer
func GetTimer(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, tracker.Get().State())
}

// PomodoroRequest switches pomodoro mode on or off.
type PomodoroRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetPomodoro handles POST /api/timer/pomodoro
// Engaging pomodoro mode redirects the timer to a 25-minute countdown not
// tied to any task; the countdown starts paused.
func SetPomodoro(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PomodoroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := tracker.Get().SetPomodoro(userID, *req.Enabled)
	c.JSON(http.StatusOK, state)
}
