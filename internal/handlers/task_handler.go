package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/realtime"
	"ultima-todo-api/internal/store"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title        string              `json:"title" binding:"required"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	DueDate      string              `json:"due_date"`
	Description  string              `json:"description"`
	Assignees    models.StringList   `json:"assignees"`
	Tags         models.StringList   `json:"tags"`
	Dependencies models.IDList       `json:"dependencies"`
	Subtasks     models.Subtasks     `json:"subtasks"`
	Project      string              `json:"project"`
	Recurrence   models.Recurrence   `json:"recurrence"`
	Importance   int                 `json:"importance"`
	Urgency      int                 `json:"urgency"`
	TeamID       *uint               `json:"team_id"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title        *string              `json:"title"`
	Status       *models.TaskStatus   `json:"status"`
	Priority     *models.TaskPriority `json:"priority"`
	DueDate      *string              `json:"due_date"`
	Description  *string              `json:"description"`
	Assignees    *models.StringList   `json:"assignees"`
	Tags         *models.StringList   `json:"tags"`
	Dependencies *models.IDList       `json:"dependencies"`
	Project      *string              `json:"project"`
	Recurrence   *models.Recurrence   `json:"recurrence"`
	Importance   *int                 `json:"importance"`
	Urgency      *int                 `json:"urgency"`
	TeamID       *uint                `json:"team_id"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

func validSlider(v int) bool {
	return v >= 0 && v <= 10
}

// GetTasks handles GET /api/tasks
// Returns all tasks owned by the authenticated user, ordered by id.
func GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := store.ListTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": withProgressAll(tasks),
		"count": len(tasks),
	})
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
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

	c.JSON(http.StatusOK, withProgress(task))
}

// CreateTask handles POST /api/tasks
func CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusToDo
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	if !req.Recurrence.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurrence"})
		return
	}

	if !validSlider(req.Importance) || !validSlider(req.Urgency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "importance and urgency must be between 0 and 10"})
		return
	}

	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().Format(time.RFC3339)
	} else if _, parsed := models.ParseDueDate(dueDate); !parsed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date"})
		return
	}

	task := models.Task{
		Title:        req.Title,
		Status:       status,
		Priority:     priority,
		DueDate:      dueDate,
		Description:  req.Description,
		Assignees:    req.Assignees,
		Tags:         req.Tags,
		Dependencies: req.Dependencies,
		Subtasks:     req.Subtasks,
		Project:      req.Project,
		Recurrence:   req.Recurrence,
		Importance:   req.Importance,
		Urgency:      req.Urgency,
		UserID:       userID,
		TeamID:       req.TeamID,
	}

	if err := store.CreateTask(&task); err != nil {
		log.Error().Err(err).Msg("failed to create task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	realtime.Publish(userID, "task_created", map[string]any{"task_id": task.ID})
	c.JSON(http.StatusCreated, withProgress(task))
}

// UpdateTask handles PUT /api/tasks/:id
func UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
			return
		}
		fields["title"] = *req.Title
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		fields["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		if _, parsed := models.ParseDueDate(*req.DueDate); !parsed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date"})
			return
		}
		fields["due_date"] = *req.DueDate
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Assignees != nil {
		fields["assignees"] = *req.Assignees
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.Dependencies != nil {
		fields["dependencies"] = *req.Dependencies
	}
	if req.Project != nil {
		fields["project"] = *req.Project
	}
	if req.Recurrence != nil {
		if !req.Recurrence.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurrence"})
			return
		}
		fields["recurrence"] = *req.Recurrence
	}
	if req.Importance != nil {
		if !validSlider(*req.Importance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "importance must be between 0 and 10"})
			return
		}
		fields["importance"] = *req.Importance
	}
	if req.Urgency != nil {
		if !validSlider(*req.Urgency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "urgency must be between 0 and 10"})
			return
		}
		fields["urgency"] = *req.Urgency
	}
	if req.TeamID != nil {
		fields["team_id"] = *req.TeamID
	}

	task, err := store.UpdateTaskFields(userID, taskID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	realtime.Publish(userID, "task_updated", map[string]any{"task_id": task.ID})
	c.JSON(http.StatusOK, withProgress(task))
}

// ToggleTaskStatus handles POST /api/tasks/:id/toggle
// Flips a task between Complete and To Do; any non-Complete status becomes
// Complete.
func ToggleTaskStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := store.ToggleTaskStatus(userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle status"})
		}
		return
	}

	realtime.Publish(userID, "task_status_changed", map[string]any{
		"task_id": task.ID,
		"status":  task.Status,
	})
	c.JSON(http.StatusOK, withProgress(task))
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
// Unconditional overwrite to one of the four statuses.
func UpdateTaskStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	task, err := store.UpdateTaskFields(userID, taskID, map[string]any{"status": req.Status})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	realtime.Publish(userID, "task_status_changed", map[string]any{
		"task_id": task.ID,
		"status":  task.Status,
	})
	c.JSON(http.StatusOK, withProgress(task))
}

// DeleteTask handles DELETE /api/tasks/:id
func DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteTask(userID, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	realtime.Publish(userID, "task_deleted", map[string]any{"task_id": taskID})
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// ParseTaskRequest carries one free-text line to turn into a task.
type ParseTaskRequest struct {
	Input string `json:"input" binding:"required"`
}

// ParseTask handles POST /api/tasks/parse
// Sends the input to the completion service and creates a task from the
// structured guess. Parsing failure is a hard failure: no task is created.
func ParseTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ParseTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
		return
	}

	parsed, err := aiClient.ParseTask(c.Request.Context(), req.Input)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse task input")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to parse task"})
		return
	}

	priority := models.TaskPriority(parsed.Priority)
	if !priority.Valid() {
		priority = models.PriorityMedium
	}
	dueDate := parsed.DueDate
	if _, parsedDate := models.ParseDueDate(dueDate); !parsedDate {
		dueDate = time.Now().Format(time.RFC3339)
	}

	task := models.Task{
		Title:    parsed.Title,
		Status:   models.StatusToDo,
		Priority: priority,
		DueDate:  dueDate,
		Tags:     models.StringList(parsed.Tags),
		UserID:   userID,
	}
	if err := store.CreateTask(&task); err != nil {
		log.Error().Err(err).Msg("failed to create parsed task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	realtime.Publish(userID, "task_created", map[string]any{"task_id": task.ID})
	c.JSON(http.StatusCreated, withProgress(task))
}
