package models

import (
	"gorm.io/gorm"

	"github.com/s/librekpi/internal/jsoncol"
)

// SocialAuth links a user to an account on a social network.
type SocialAuth struct {
	ID      uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint         `gorm:"not null;index" json:"user_id" validate:"required"`
	User    *User        `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	SocID   *int64       `gorm:"column:soc_id;uniqueIndex" json:"soc_id,omitempty"`
	Token   string       `gorm:"size:64" json:"-" validate:"max=64"`
	SocData jsoncol.Dict `gorm:"column:soc_data;size:1024" json:"soc_data"`
}

func (SocialAuth) TableName() string {
	return "users_social"
}

func (s *SocialAuth) BeforeSave(tx *gorm.DB) error {
	return checkWidths(jsonColumn{"soc_data", s.SocData, jsoncol.WidthSocData})
}
