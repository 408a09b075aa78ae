package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/s/librekpi/internal/auth"
)

// User is a registered account. Passwords are kept as a salted SHA-256 digest.
type User struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FBID        *int64  `gorm:"column:fbid;uniqueIndex" json:"fbid,omitempty"`
	Username    string  `gorm:"size:35;uniqueIndex" json:"username" validate:"required,max=35"`
	Role        Role    `gorm:"type:varchar(13);not null;default:'student'" json:"role" validate:"omitempty,oneof=administrator moderator student"`
	DisplayName string  `gorm:"column:displayname;size:64;not null" json:"displayname" validate:"required,max=64"`
	Email       string  `gorm:"size:64;uniqueIndex;not null" json:"email" validate:"required,email,max=64"`
	Salt        string  `gorm:"column:salt;size:12" json:"-"`
	Password    string  `gorm:"column:password;size:64" json:"-"`
	City        *string `gorm:"size:30;index" json:"city,omitempty" validate:"omitempty,max=30"`
	Gender      *Gender `gorm:"type:varchar(6)" json:"gender,omitempty" validate:"omitempty,oneof=male female"`

	DateOfBirth *datatypes.Date `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Locale      string          `gorm:"size:10" json:"locale" validate:"max=10"`
	Timezone    *int16          `gorm:"type:smallint" json:"timezone,omitempty" validate:"omitempty,min=-12,max=14"`

	TeacherID *uint    `gorm:"uniqueIndex" json:"teacher_id,omitempty"`
	Teacher   *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty" validate:"-"`

	Created      time.Time `gorm:"column:created;autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created"`
	LastModified time.Time `gorm:"column:lastmodified;autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"lastmodified"`
	LastAccessed time.Time `gorm:"column:lastaccessed;not null;default:CURRENT_TIMESTAMP" json:"lastaccessed"`

	SocialAuths []SocialAuth `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Votes       []Rating     `gorm:"foreignKey:VoterID" json:"-" validate:"-"`
	Comments    []Comment    `gorm:"foreignKey:UserID" json:"-" validate:"-"`
}

func (User) TableName() string {
	return "users"
}

// EnsureSalt assigns a fresh salt if the user has none and returns the salt.
// Once assigned the salt never changes.
func (u *User) EnsureSalt() (string, error) {
	if u.Salt == "" {
		salt, err := auth.GenerateSalt()
		if err != nil {
			return "", err
		}
		u.Salt = salt
	}
	return u.Salt, nil
}

// SetPassword stores the digest of password under the user's salt.
func (u *User) SetPassword(password string) error {
	salt, err := u.EnsureSalt()
	if err != nil {
		return err
	}
	raw, err := auth.DecodeSalt(salt)
	if err != nil {
		return err
	}
	u.Password = auth.HashPassword(password, raw)
	return nil
}

// VerifyPassword reports whether password matches the stored digest. A wrong
// password is not an error; a malformed salt is.
func (u *User) VerifyPassword(password string) (bool, error) {
	if u.Salt == "" || u.Password == "" {
		return false, nil
	}
	raw, err := auth.DecodeSalt(u.Salt)
	if err != nil {
		return false, err
	}
	return auth.CheckPassword(u.Password, password, raw), nil
}

// Age returns the user's age in whole years in their own timezone, or
// UnknownAge.
func (u *User) Age(now time.Time) int {
	var birth *time.Time
	if u.DateOfBirth != nil {
		b := time.Time(*u.DateOfBirth)
		birth = &b
	}
	tz := 0
	if u.Timezone != nil {
		tz = int(*u.Timezone)
	}
	return AgeAt(birth, tz, now)
}

// IsTeacher reports whether the account is linked to a teacher profile.
func (u *User) IsTeacher() bool {
	return u.TeacherID != nil
}

// BeforeCreate assigns the salt before the row becomes visible to anyone else.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.LastAccessed.IsZero() {
		u.LastAccessed = time.Now().UTC()
	}
	_, err := u.EnsureSalt()
	return err
}
