package database

import (
	"fmt"

	"github.com/s/librekpi/internal/jsoncol"
	"github.com/s/librekpi/internal/models"
	"gorm.io/gorm"
)

// Seed inserts a demo teacher with one course if they do not exist yet.
func Seed(db *gorm.DB) error {
	teacher := models.Teacher{
		Name:        "Ігор",
		MidInit:     "Іванович",
		Surname:     "Сікорський",
		Faculty:     "ФІОТ",
		Departments: jsoncol.StringList("ОТ"),
		Degree:      "д.т.н.",
		Position:    "професор",
	}
	err := db.Where(models.Teacher{Name: teacher.Name, Surname: teacher.Surname}).
		FirstOrCreate(&teacher).Error
	if err != nil {
		return fmt.Errorf("failed to seed teacher: %w", err)
	}

	course := models.Course{
		Title:     "Основи програмування",
		TeacherID: teacher.ID,
		Tags:      jsoncol.StringList("programming", "first-year"),
		Topics:    jsoncol.StringList("variables", "loops", "functions"),
	}
	err = db.Where(models.Course{Title: course.Title, TeacherID: teacher.ID}).
		FirstOrCreate(&course).Error
	if err != nil {
		return fmt.Errorf("failed to seed course: %w", err)
	}

	return nil
}
