package store

import (
	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
)

// ListProjects returns all projects owned by the user, ordered by id.
func ListProjects(userID string) ([]models.Project, error) {
	var projects []models.Project
	err := database.GetDB().
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&projects).Error
	return projects, err
}

// CreateProject inserts a project and fills in the generated id.
func CreateProject(project *models.Project) error {
	return database.GetDB().Create(project).Error
}

// DeleteProject removes a project. Tasks referencing it by name are left
// untouched; the dangling name reference is accepted.
func DeleteProject(userID string, id uint) error {
	var project models.Project
	err := database.GetDB().
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error
	if err != nil {
		return wrapNotFound(err)
	}
	return database.GetDB().Delete(&project).Error
}
