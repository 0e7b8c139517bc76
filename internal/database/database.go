package database

import (
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ultima-todo-api/internal/models"
)

var DB *gorm.DB

// InitDB opens the SQLite database at the given path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func InitDB(path string) {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to connect to database")
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Project{},
		&models.Template{},
		&models.Team{},
		&models.TeamMember{},
		&models.Invitation{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", path).Msg("database connected and migrated")
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
