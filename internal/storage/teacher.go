package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/database"
	"github.com/s/librekpi/internal/models"
)

// TeacherRepository stores teacher profiles. Large columns listed in
// models.TeacherDeferred are only read by LoadDeferred.
type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := models.Validate(teacher); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	return nil
}

// Update saves every column; load the deferred columns first or they are
// written back empty.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Omit("created").Save(teacher).Error; err != nil {
		return fmt.Errorf("failed to update teacher %d: %w", teacher.ID, err)
	}
	return nil
}

func (r *TeacherRepository) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).Omit(models.TeacherDeferred...).First(&teacher, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find teacher %d: %w", id, notFound(err, "teacher"))
	}
	return &teacher, nil
}

// LoadDeferred fills the deferred columns of an already loaded teacher.
func (r *TeacherRepository) LoadDeferred(ctx context.Context, teacher *models.Teacher) error {
	err := r.db.WithContext(ctx).
		Select(append([]string{"id"}, models.TeacherDeferred...)).
		First(teacher, teacher.ID).Error
	if err != nil {
		return fmt.Errorf("failed to load teacher %d details: %w", teacher.ID, notFound(err, "teacher"))
	}
	return nil
}

// CoursesOf lists a teacher's courses without their deferred columns.
func (r *TeacherRepository) CoursesOf(ctx context.Context, teacherID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Omit(models.CourseDeferred...).
		Where("teacher_id = ?", teacherID).
		Order("id").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses of teacher %d: %w", teacherID, err)
	}
	return courses, nil
}

// LinkUser makes userID the account of teacherID. A teacher has at most one
// account.
func (r *TeacherRepository) LinkUser(ctx context.Context, teacherID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Teacher{}).Where("id = ?", teacherID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("teacher %d not found", teacherID))
		}

		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("teacher_id", teacherID)
		if res.Error != nil {
			if database.IsUniqueViolation(res.Error, "teacher_id") {
				return apperrors.NewCustomError(apperrors.ErrConflict,
					fmt.Sprintf("teacher %d is already linked to another user", teacherID))
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
}

func notFound(err error, what string) error {
	if database.IsNotFound(err) {
		return apperrors.NewResourceNotFoundError(what + " not found")
	}
	return err
}
