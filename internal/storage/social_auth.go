package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/database"
	"github.com/s/librekpi/internal/models"
)

// SocialAuthRepository defines the interface for social login records.
type SocialAuthRepository interface {
	Upsert(ctx context.Context, social *models.SocialAuth) error
	FindBySocID(ctx context.Context, socID int64) (*models.SocialAuth, error)
	ListByUser(ctx context.Context, userID uint) ([]models.SocialAuth, error)
	SaveUser(ctx context.Context, userInfo models.User, social models.SocialAuth, linkByEmail bool) (uint, error)
}

type socialAuthRepository struct {
	db *gorm.DB
}

func NewSocialAuthRepository(db *gorm.DB) SocialAuthRepository {
	return &socialAuthRepository{db: db}
}

// Upsert inserts the record or refreshes token and payload of the record with
// the same social id. A social id already linked to another user is refused.
func (r *socialAuthRepository) Upsert(ctx context.Context, social *models.SocialAuth) error {
	if social.SocID == nil {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "social id is required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SocialAuth
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("soc_id = ?", *social.SocID).First(&existing).Error

		switch {
		case database.IsNotFound(err):
			if err := tx.Create(social).Error; err != nil {
				if database.IsUniqueViolation(err, "soc_id") {
					return apperrors.ErrSocialIDTaken
				}
				return fmt.Errorf("failed to create social auth: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to find social auth: %w", err)
		}

		if existing.UserID != social.UserID {
			return apperrors.ErrSocialIDTaken
		}
		existing.Token = social.Token
		existing.SocData = social.SocData
		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update social auth %d: %w", existing.ID, err)
		}
		*social = existing
		return nil
	})
}

func (r *socialAuthRepository) FindBySocID(ctx context.Context, socID int64) (*models.SocialAuth, error) {
	var social models.SocialAuth
	if err := r.db.WithContext(ctx).Where("soc_id = ?", socID).First(&social).Error; err != nil {
		return nil, fmt.Errorf("failed to find social auth %d: %w", socID, notFound(err, "social auth"))
	}
	return &social, nil
}

func (r *socialAuthRepository) ListByUser(ctx context.Context, userID uint) ([]models.SocialAuth, error) {
	var socials []models.SocialAuth
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&socials).Error; err != nil {
		return nil, fmt.Errorf("failed to list social auths of user %d: %w", userID, err)
	}
	return socials, nil
}

// SaveUser runs SaveSocialUser on the repository's database.
func (r *socialAuthRepository) SaveUser(ctx context.Context, userInfo models.User, social models.SocialAuth, linkByEmail bool) (uint, error) {
	return SaveSocialUser(ctx, r.db, userInfo, social, linkByEmail)
}
