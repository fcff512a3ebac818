package entity

import (
	"strings"
	"time"
)

type Course struct {
	ID        int64     `json:"id" bson:"id"`
	Code      string    `json:"code" bson:"code"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (c *Course) Validate() error {
	switch {
	case c == nil:
		return malformed("course", "document")
	case c.ID <= 0:
		return malformed("course", "id")
	case c.Code == "":
		return malformed("course", "code")
	case c.CreatedAt.IsZero():
		return malformed("course", "createdAt")
	}
	return nil
}

type Teacher struct {
	ID        int64     `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (t *Teacher) Validate() error {
	switch {
	case t == nil:
		return malformed("teacher", "document")
	case t.ID <= 0:
		return malformed("teacher", "id")
	case t.Name == "":
		return malformed("teacher", "name")
	}
	return nil
}

type CourseTeacher struct {
	ID        int64     `json:"id" bson:"id"`
	CourseID  int64     `json:"courseId" bson:"courseId"`
	TeacherID int64     `json:"teacherId" bson:"teacherId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// NormalizeTeacherName trims, collapses inner whitespace and lower-cases a teacher name.
func NormalizeTeacherName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CanonicalTeacherName trims and collapses whitespace while keeping case.
func CanonicalTeacherName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
