// Package storage holds the gorm-backed repositories.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/auth"
	"github.com/s/librekpi/internal/database"
	"github.com/s/librekpi/internal/models"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByFBID(ctx context.Context, fbid int64) (*models.User, error)
	AssignSalt(ctx context.Context, user *models.User) (string, error)
	UsersByAge(ctx context.Context, minAge, maxAge int) ([]models.User, error)
	Touch(ctx context.Context, id uint, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", userConflict(err))
	}
	return nil
}

// Update saves every column of user. The salt column is never overwritten
// once set.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("salt", "created").Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user id %d: %w", user.ID, userConflict(err))
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, userNotFound(err))
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, userNotFound(err))
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, userNotFound(err))
	}
	return &user, nil
}

func (r *userRepository) FindByFBID(ctx context.Context, fbid int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("fbid = ?", fbid).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by fbid %d: %w", fbid, userNotFound(err))
	}
	return &user, nil
}

// AssignSalt gives a stored user without a salt exactly one salt. The update
// only applies while the column is still empty, so concurrent callers all end
// up with the salt of whichever update landed first.
func (r *userRepository) AssignSalt(ctx context.Context, user *models.User) (string, error) {
	salt, err := auth.GenerateSalt()
	if err != nil {
		return "", err
	}

	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND (salt IS NULL OR salt = '')", user.ID).
		UpdateColumn("salt", salt)
	if res.Error != nil {
		return "", fmt.Errorf("failed to assign salt to user %d: %w", user.ID, res.Error)
	}

	if res.RowsAffected == 0 {
		var stored models.User
		err := r.db.WithContext(ctx).Select("id", "salt").First(&stored, user.ID).Error
		if err != nil {
			return "", fmt.Errorf("failed to read salt of user %d: %w", user.ID, userNotFound(err))
		}
		salt = stored.Salt
	}

	user.Salt = salt
	return salt, nil
}

func (r *userRepository) UsersByAge(ctx context.Context, minAge, maxAge int) ([]models.User, error) {
	dialect := r.db.Dialector.Name()
	where, args, err := AgeBetween(dialect, minAge, maxAge)
	if err != nil {
		return nil, err
	}
	order, _, err := AgeExpr(dialect).ToSql()
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = r.db.WithContext(ctx).
		Where(where, args...).
		Order(order).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users aged %d-%d: %w", minAge, maxAge, err)
	}
	return users, nil
}

func (r *userRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("lastaccessed", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch user %d: %w", id, err)
	}
	return nil
}

// SaveSocialUser finds the user behind a social login or registers one, and
// stores the latest token and payload on the users_social row. It returns the
// user ID. An unknown social account is attached to the user with the same
// e-mail only when linkByEmail is set, that is when the provider vouches for
// the address; otherwise an existing e-mail is ErrEmailAlreadyExists.
func SaveSocialUser(ctx context.Context, db *gorm.DB, userInfo models.User, social models.SocialAuth, linkByEmail bool) (uint, error) {
	if social.SocID == nil {
		return 0, fmt.Errorf("social id is required")
	}

	var userID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SocialAuth
		result := tx.Where("soc_id = ?", *social.SocID).First(&existing)

		switch {
		case result.Error == nil:
			// Known account: refresh the token and the display details.
			existing.Token = social.Token
			existing.SocData = social.SocData
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if userInfo.DisplayName != "" {
				err := tx.Model(&models.User{}).Where("id = ?", existing.UserID).
					Update("displayname", userInfo.DisplayName).Error
				if err != nil {
					return err
				}
			}
			userID = existing.UserID
			return nil

		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			var user models.User
			err := tx.Where("email = ?", userInfo.Email).First(&user).Error
			switch {
			case err == nil && !linkByEmail:
				return apperrors.ErrEmailAlreadyExists
			case errors.Is(err, gorm.ErrRecordNotFound):
				user = userInfo
				if user.Role == "" {
					user.Role = models.RoleStudent
				}
				if err := tx.Create(&user).Error; err != nil {
					return userConflict(err)
				}
			case err != nil:
				return err
			}

			social.UserID = user.ID
			if err := tx.Create(&social).Error; err != nil {
				if database.IsUniqueViolation(err, "soc_id") {
					return apperrors.ErrSocialIDTaken
				}
				return err
			}
			userID = user.ID
			return nil

		default:
			return result.Error
		}
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save social user: %w", err)
	}
	return userID, nil
}

func userNotFound(err error) error {
	if database.IsNotFound(err) {
		return apperrors.ErrUserNotFound
	}
	return err
}

func userConflict(err error) error {
	switch {
	case database.IsUniqueViolation(err, "username"):
		return apperrors.ErrUsernameTaken
	case database.IsUniqueViolation(err, "email"):
		return apperrors.ErrEmailAlreadyExists
	case database.IsUniqueViolation(err, "fbid"):
		return apperrors.ErrSocialIDTaken
	}
	return err
}
