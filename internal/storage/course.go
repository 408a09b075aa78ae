package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/s/librekpi/internal/models"
)

// CourseRepository stores courses. Columns listed in models.CourseDeferred
// are only read by LoadDeferred.
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := models.Validate(course); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// Update saves every column; load the deferred columns first.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course %d: %w", course.ID, err)
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Omit(models.CourseDeferred...).First(&course, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find course %d: %w", id, notFound(err, "course"))
	}
	return &course, nil
}

func (r *CourseRepository) LoadDeferred(ctx context.Context, course *models.Course) error {
	err := r.db.WithContext(ctx).
		Select(append([]string{"id"}, models.CourseDeferred...)).
		First(course, course.ID).Error
	if err != nil {
		return fmt.Errorf("failed to load course %d details: %w", course.ID, notFound(err, "course"))
	}
	return nil
}

// ListByTeacher is CoursesOf with the teacher preloaded on each course.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Omit(models.CourseDeferred...).
		Preload("Teacher", func(db *gorm.DB) *gorm.DB {
			return db.Omit(models.TeacherDeferred...)
		}).
		Where("teacher_id = ?", teacherID).
		Order("title").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses of teacher %d: %w", teacherID, err)
	}
	return courses, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "course")
	}
	return nil
}
