package store

import (
	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
)

// GetUserByUsername looks up a user account by its unique username.
func GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := database.GetDB().Where("username = ?", username).First(&user).Error
	return user, wrapNotFound(err)
}

// CreateUser inserts a new user account.
func CreateUser(user *models.User) error {
	return database.GetDB().Create(user).Error
}

// ListUsers returns all user accounts.
func ListUsers() ([]models.User, error) {
	var users []models.User
	err := database.GetDB().Order("id asc").Find(&users).Error
	return users, err
}
