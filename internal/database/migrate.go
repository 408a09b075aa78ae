package database

import (
	"github.com/s/librekpi/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Teacher{},
		&models.User{},
		&models.SocialAuth{},
		&models.Course{},
		&models.Rating{},
		&models.Comment{},
	)
}
