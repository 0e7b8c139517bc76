package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/realtime"
	"ultima-todo-api/internal/store"
)

func parseSubtaskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("subtaskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtaskId"})
		return 0, false
	}
	return id, true
}

func writeSubtaskError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task or subtask not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subtasks"})
	}
}

func publishSubtasksUpdated(userID string, task models.Task) {
	realtime.Publish(userID, "task_updated", map[string]any{
		"task_id":  task.ID,
		"progress": task.Subtasks.Progress(),
	})
}

// AddSubtaskRequest carries the title of a new subtask.
type AddSubtaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// AddSubtask handles POST /api/tasks/:id/subtasks
func AddSubtask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := store.AddSubtask(userID, taskID, req.Title)
	if err != nil {
		writeSubtaskError(c, err)
		return
	}

	publishSubtasksUpdated(userID, task)
	c.JSON(http.StatusOK, withProgress(task))
}

// ToggleSubtask handles POST /api/tasks/:id/subtasks/:subtaskId/toggle
func ToggleSubtask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subtaskID, ok := parseSubtaskIDParam(c)
	if !ok {
		return
	}

	task, err := store.ToggleSubtask(userID, taskID, subtaskID)
	if err != nil {
		writeSubtaskError(c, err)
		return
	}

	publishSubtasksUpdated(userID, task)
	c.JSON(http.StatusOK, withProgress(task))
}

// EditSubtaskRequest carries the new title of an existing subtask.
type EditSubtaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// EditSubtask handles PATCH /api/tasks/:id/subtasks/:subtaskId
func EditSubtask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subtaskID, ok := parseSubtaskIDParam(c)
	if !ok {
		return
	}

	var req EditSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := store.EditSubtask(userID, taskID, subtaskID, req.Title)
	if err != nil {
		writeSubtaskError(c, err)
		return
	}

	publishSubtasksUpdated(userID, task)
	c.JSON(http.StatusOK, withProgress(task))
}

// DeleteSubtask handles DELETE /api/tasks/:id/subtasks/:subtaskId
func DeleteSubtask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subtaskID, ok := parseSubtaskIDParam(c)
	if !ok {
		return
	}

	task, err := store.DeleteSubtask(userID, taskID, subtaskID)
	if err != nil {
		writeSubtaskError(c, err)
		return
	}

	publishSubtasksUpdated(userID, task)
	c.JSON(http.StatusOK, withProgress(task))
}

// GenerateSubtasks handles POST /api/tasks/:id/breakdown
// Asks the completion service to decompose the task title into subtasks and
// appends whatever comes back. An empty reply adds nothing and is not an
// error.
func GenerateSubtasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := store.GetTask(userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	var subtasks []models.Subtask
	if titles, hit := breakdownCache.Get(task.Title); hit {
		base := time.Now().UnixMilli()
		for i, title := range titles {
			subtasks = append(subtasks, models.Subtask{
				ID:        base + int64(i),
				Title:     title,
				Completed: false,
			})
		}
	} else {
		subtasks, err = aiClient.BreakdownTask(c.Request.Context(), task.Title)
		if err != nil {
			log.Error().Err(err).Uint("task_id", taskID).Msg("failed to generate subtasks")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate subtasks"})
			return
		}
		titles := make([]string, 0, len(subtasks))
		for _, sub := range subtasks {
			titles = append(titles, sub.Title)
		}
		breakdownCache.Set(task.Title, titles, aiCacheTTL)
	}

	if len(subtasks) == 0 {
		c.JSON(http.StatusOK, withProgress(task))
		return
	}

	task, err = store.AppendSubtasks(userID, taskID, subtasks)
	if err != nil {
		writeSubtaskError(c, err)
		return
	}

	publishSubtasksUpdated(userID, task)
	c.JSON(http.StatusOK, withProgress(task))
}
