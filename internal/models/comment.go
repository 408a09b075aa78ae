package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a course comment; ReplyTo points at the parent comment of a
// threaded reply.
type Comment struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user_id" validate:"required"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	CourseID *uint     `gorm:"index" json:"course_id,omitempty"`
	ReplyTo  *uint     `gorm:"column:reply_to;index" json:"reply_to,omitempty"`
	Replies  []Comment `gorm:"foreignKey:ReplyTo" json:"replies,omitempty" validate:"-"`
	Text     string    `gorm:"type:text" json:"text" validate:"required"`
	Created  time.Time `gorm:"column:created;not null" json:"created"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Created.IsZero() {
		c.Created = time.Now().UTC()
	}
	return nil
}
