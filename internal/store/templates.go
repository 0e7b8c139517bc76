package store

import (
	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
)

// ListTemplates returns all templates owned by the user, ordered by id.
func ListTemplates(userID string) ([]models.Template, error) {
	var templates []models.Template
	err := database.GetDB().
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&templates).Error
	return templates, err
}

// CreateTemplate inserts a template and fills in the generated id.
func CreateTemplate(template *models.Template) error {
	return database.GetDB().Create(template).Error
}

// ApplyTemplate clones every snapshot in a template into a new task with a
// freshly generated id and a zeroed timer, and returns the created tasks.
func ApplyTemplate(userID string, templateID uint) ([]models.Task, error) {
	var template models.Template
	err := database.GetDB().
		Where("id = ? AND user_id = ?", templateID, userID).
		First(&template).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}

	created := make([]models.Task, 0, len(template.Tasks))
	for _, snapshot := range template.Tasks {
		task := snapshot.NewTask(userID)
		if err := CreateTask(&task); err != nil {
			return created, err
		}
		created = append(created, task)
	}
	return created, nil
}
