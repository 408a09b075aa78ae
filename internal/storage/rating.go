package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/models"
)

// RatingRepository stores grades given by users to teachers and courses.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// targetModel returns the model whose table holds ratings of entityType.
func targetModel(entityType models.EntityType) (interface{}, error) {
	switch entityType {
	case models.EntityTeacher:
		return &models.Teacher{}, nil
	case models.EntityCourse:
		return &models.Course{}, nil
	}
	return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
		fmt.Sprintf("unknown rating entity type %q", entityType))
}

// Rate stores the voter's grade for the target, replacing an earlier grade
// by the same voter. The target must exist.
func (r *RatingRepository) Rate(ctx context.Context, rating *models.Rating) error {
	if err := models.Validate(rating); err != nil {
		return err
	}
	target, err := targetModel(rating.EntityType)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(target).Where("id = ?", rating.EntityID).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check rating target: %w", err)
		}
		if n == 0 {
			return apperrors.NewCustomError(apperrors.ErrRatingTargetNotFound,
				fmt.Sprintf("%s %d not found", rating.EntityType, rating.EntityID))
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "voter_id"}, {Name: "entity_type"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(rating).Error
		if err != nil {
			return fmt.Errorf("failed to save rating: %w", err)
		}
		return nil
	})
}

func (r *RatingRepository) ForEntity(ctx context.Context, entityType models.EntityType, entityID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings of %s %d: %w", entityType, entityID, err)
	}
	return ratings, nil
}

// GradeCount is one row of a rating summary.
type GradeCount struct {
	Value models.Grade
	Count int64
}

// Summary counts the grades of one target, best grade first.
func (r *RatingRepository) Summary(ctx context.Context, entityType models.EntityType, entityID uint) ([]GradeCount, error) {
	var rows []GradeCount
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("value, count(*) as count").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Group("value").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ratings of %s %d: %w", entityType, entityID, err)
	}
	return SortGradeCounts(rows), nil
}

// SortGradeCounts orders counts by grade rank and fills in missing grades
// with zero.
func SortGradeCounts(rows []GradeCount) []GradeCount {
	byGrade := make(map[models.Grade]int64, len(rows))
	for _, row := range rows {
		byGrade[row.Value] += row.Count
	}
	out := make([]GradeCount, 0, len(models.Grades))
	for _, g := range models.Grades {
		out = append(out, GradeCount{Value: g, Count: byGrade[g]})
	}
	return out
}
