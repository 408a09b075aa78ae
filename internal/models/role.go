package models

// Role is the access level of a user. Teachers are not a role: a user is a
// teacher when linked to a Teacher profile.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleModerator     Role = "moderator"
	RoleStudent       Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleModerator, RoleStudent:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// EntityType names the table a Rating points at.
type EntityType string

const (
	EntityTeacher EntityType = "teacher"
	EntityCourse  EntityType = "course"
)

func (e EntityType) Valid() bool {
	return e == EntityTeacher || e == EntityCourse
}

// Grade is an ECTS grade, best first.
type Grade string

const (
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeE  Grade = "E"
	GradeF  Grade = "F"
	GradeFx Grade = "Fx"
)

// Grades lists every grade in order.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE, GradeF, GradeFx}

// Rank returns the position of g in Grades, or -1 for an unknown grade.
func (g Grade) Rank() int {
	for i, v := range Grades {
		if v == g {
			return i
		}
	}
	return -1
}

func (g Grade) Valid() bool {
	return g.Rank() >= 0
}

// Better reports whether g ranks above other.
func (g Grade) Better(other Grade) bool {
	return g.Rank() < other.Rank()
}
