// Package service implements account workflows on top of the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/auth"
	"github.com/s/librekpi/internal/jsoncol"
	"github.com/s/librekpi/internal/logger"
	"github.com/s/librekpi/internal/models"
	"github.com/s/librekpi/internal/storage"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
	Locale      string
	Timezone    *int16
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	LinkSocial(ctx context.Context, userID uint, socID int64, tok *oauth2.Token, payload map[string]interface{}) (*models.SocialAuth, error)
	LoginSocial(ctx context.Context, profile SocialProfile, tok *oauth2.Token) (*models.User, error)
}

// SocialProfile is what a provider tells about the person behind a login.
// EmailVerified must only be set when the provider confirmed the person owns
// Email; it decides whether the login may take over an existing account.
type SocialProfile struct {
	SocID         int64
	Username      string
	DisplayName   string
	Email         string
	EmailVerified bool
	Locale        string
	Payload       map[string]interface{}
}

type accountService struct {
	users   storage.UserRepository
	socials storage.SocialAuthRepository
	now     func() time.Time
}

func NewAccountService(users storage.UserRepository, socials storage.SocialAuthRepository) AccountService {
	return &accountService{
		users:   users,
		socials: socials,
		now:     time.Now,
	}
}

// Register creates a student account. The salt is assigned here, before the
// row exists, and never changes afterwards.
func (s *accountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Password == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "password is required")
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Username
	}

	user := &models.User{
		Username:     in.Username,
		DisplayName:  displayName,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         models.RoleStudent,
		Locale:       in.Locale,
		Timezone:     in.Timezone,
		LastAccessed: s.now().UTC(),
	}
	if err := models.Validate(user); err != nil {
		return nil, err
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate accepts a username or an e-mail address as login.
func (s *accountService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.FindByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.users.FindByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := user.VerifyPassword(password)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", user.ID).Msg("stored credentials are corrupt")
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.Touch(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last access")
	} else {
		user.LastAccessed = now
	}
	return user, nil
}

func (s *accountService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "password is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Password != "" {
		ok, err := user.VerifyPassword(oldPassword)
		if err != nil {
			logger.Error().Err(err).Uint("user_id", user.ID).Msg("stored credentials are corrupt")
			return err
		}
		if !ok {
			return apperrors.ErrInvalidCredentials
		}
	}

	// Rows created before salts were assigned at creation get theirs here.
	if user.Salt == "" {
		if _, err := s.users.AssignSalt(ctx, user); err != nil {
			return err
		}
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}

// LoginSocial signs in the owner of a social account. An unknown account is
// registered as a new student without a password. It is matched to an
// existing user by e-mail only when the provider verified the address, since
// anyone can claim an unverified e-mail at some providers.
func (s *accountService) LoginSocial(ctx context.Context, profile SocialProfile, tok *oauth2.Token) (*models.User, error) {
	captured, err := auth.CaptureToken(tok)
	if err != nil {
		return nil, err
	}

	username := profile.Username
	if username == "" {
		username = fmt.Sprintf("soc%d", profile.SocID)
	}
	displayName := profile.DisplayName
	if displayName == "" {
		displayName = username
	}
	userInfo := models.User{
		Username:     username,
		DisplayName:  displayName,
		Email:        strings.ToLower(strings.TrimSpace(profile.Email)),
		Role:         models.RoleStudent,
		Locale:       profile.Locale,
		LastAccessed: s.now().UTC(),
	}
	if err := models.Validate(&userInfo); err != nil {
		return nil, err
	}

	socID := profile.SocID
	social := models.SocialAuth{
		SocID:   &socID,
		Token:   captured.Token,
		SocData: mergePayload(captured.Payload, profile.Payload),
	}

	userID, err := s.socials.SaveUser(ctx, userInfo, social, profile.EmailVerified)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if err := s.users.Touch(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last access")
	} else {
		user.LastAccessed = now
	}

	logger.Info().Uint("user_id", user.ID).Int64("soc_id", socID).Msg("social login")
	return user, nil
}

// LinkSocial records a social login for the user. payload is merged over the
// token description captured from tok.
func (s *accountService) LinkSocial(ctx context.Context, userID uint, socID int64, tok *oauth2.Token, payload map[string]interface{}) (*models.SocialAuth, error) {
	captured, err := auth.CaptureToken(tok)
	if err != nil {
		return nil, err
	}

	social := &models.SocialAuth{
		UserID:  userID,
		SocID:   &socID,
		Token:   captured.Token,
		SocData: mergePayload(captured.Payload, payload),
	}
	if err := s.socials.Upsert(ctx, social); err != nil {
		return nil, err
	}
	return social, nil
}

func mergePayload(token, provider map[string]interface{}) jsoncol.Dict {
	data := jsoncol.Dict(token)
	for k, v := range provider {
		data[k] = v
	}
	return data
}
