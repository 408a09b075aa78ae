package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/s/librekpi/internal/jsoncol"
)

// TeacherDeferred lists the teacher columns left out of default queries.
var TeacherDeferred = []string{"photo", "bio", "contacts", "departments", "publications"}

// Teacher is a lecturer profile that owns courses.
type Teacher struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:35;not null" json:"name" validate:"required,max=35"`
	MidInit string `gorm:"column:midinit;size:35;not null" json:"midinit" validate:"max=35"`
	Surname string `gorm:"size:35;not null" json:"surname" validate:"required,max=35"`

	Photo   string   `gorm:"type:text" json:"photo,omitempty"`
	Courses []Course `gorm:"foreignKey:TeacherID" json:"courses,omitempty" validate:"-"`

	Faculty     string       `gorm:"size:64;not null" json:"faculty" validate:"required,max=64"`
	Departments jsoncol.List `gorm:"size:512" json:"departments,omitempty"`

	Bio string `gorm:"type:text" json:"bio,omitempty"`

	Degree   string `gorm:"size:35;not null" json:"degree" validate:"max=35"`
	Position string `gorm:"size:35;not null" json:"position" validate:"max=35"`

	// title/link records, free-form
	Publications jsoncol.Dict `gorm:"size:512" json:"publications,omitempty"`

	Contacts string `gorm:"type:text" json:"contacts,omitempty"`

	Created      time.Time `gorm:"column:created;autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created"`
	LastModified time.Time `gorm:"column:lastmodified;autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"lastmodified"`
	LastAccessed time.Time `gorm:"column:lastaccessed;not null;default:CURRENT_TIMESTAMP" json:"lastaccessed"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// FullName renders "Surname Name MidInit", skipping empty parts.
func (t *Teacher) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.Surname, t.Name, t.MidInit} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.LastAccessed.IsZero() {
		t.LastAccessed = time.Now().UTC()
	}
	return nil
}

func (t *Teacher) BeforeSave(tx *gorm.DB) error {
	return checkWidths(
		jsonColumn{"departments", t.Departments, jsoncol.WidthDepartments},
		jsonColumn{"publications", t.Publications, jsoncol.WidthPublications},
	)
}
