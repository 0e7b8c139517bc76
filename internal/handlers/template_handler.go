package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/realtime"
	"ultima-todo-api/internal/store"
)

// CreateTemplateRequest snapshots a set of existing tasks into a template.
type CreateTemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	TaskIDs []uint `json:"task_ids" binding:"required,min=1"`
}

// GetTemplates handles GET /api/templates
func GetTemplates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	templates, err := store.ListTemplates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"count":     len(templates),
	})
}

// CreateTemplate handles POST /api/templates
// Captures an immutable snapshot of the named tasks: every field except the
// id and the accumulated timer.
func CreateTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshots := make(models.TaskSnapshots, 0, len(req.TaskIDs))
	for _, taskID := range req.TaskIDs {
		task, err := store.GetTask(userID, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Task not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
			}
			return
		}
		snapshots = append(snapshots, models.Snapshot(task))
	}

	template := models.Template{
		Name:   req.Name,
		Tasks:  snapshots,
		UserID: userID,
	}
	if err := store.CreateTemplate(&template); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	realtime.Publish(userID, "template_created", map[string]any{"template_id": template.ID})
	c.JSON(http.StatusCreated, template)
}

// ApplyTemplate handles POST /api/templates/:id/apply
// Clones every task definition in the template into a new task with a fresh
// id and a zeroed timer.
func ApplyTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	created, err := store.ApplyTemplate(userID, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply template"})
		}
		return
	}

	realtime.Publish(userID, "template_applied", map[string]any{
		"template_id": templateID,
		"count":       len(created),
	})
	c.JSON(http.StatusCreated, gin.H{
		"tasks": withProgressAll(created),
		"count": len(created),
	})
}
