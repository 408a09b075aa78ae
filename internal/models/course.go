package models

import (
	"gorm.io/gorm"

	"github.com/s/librekpi/internal/jsoncol"
)

// CourseDeferred lists the course columns left out of default queries.
var CourseDeferred = []string{"icon", "description", "tags", "schedule", "topics"}

// Course belongs to exactly one teacher.
type Course struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Icon  string `gorm:"type:text" json:"icon,omitempty"`
	Title string `gorm:"size:64;not null" json:"title" validate:"required,max=64"`

	TeacherID uint     `gorm:"not null;index" json:"teacher_id" validate:"required"`
	Teacher   *Teacher `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"teacher,omitempty" validate:"-"`

	Tags        jsoncol.List `gorm:"size:512" json:"tags,omitempty"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	// Schedule has no fixed structure yet.
	Schedule jsoncol.Dict `gorm:"size:512" json:"schedule,omitempty"`
	Topics   jsoncol.List `gorm:"size:512" json:"topics,omitempty"`

	Comments []Comment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"comments,omitempty" validate:"-"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	return checkWidths(
		jsonColumn{"tags", c.Tags, jsoncol.WidthTags},
		jsonColumn{"schedule", c.Schedule, jsoncol.WidthSchedule},
		jsonColumn{"topics", c.Topics, jsoncol.WidthTopics},
	)
}
