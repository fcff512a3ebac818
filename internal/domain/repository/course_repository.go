package repository

import (
	"context"

	"studymarket/internal/domain/entity"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	GetByID(ctx context.Context, id int64) (*entity.Course, error)
	GetByCode(ctx context.Context, code string) (*entity.Course, error)
	// Search matches query case-insensitively against code and name, ordered by code.
	Search(ctx context.Context, query string) ([]entity.Course, error)
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *entity.Teacher) error
	GetByID(ctx context.Context, id int64) (*entity.Teacher, error)
	GetByName(ctx context.Context, name string) (*entity.Teacher, error)
	// LinkCourse records that teacherID teaches courseID; linking twice is a no-op.
	LinkCourse(ctx context.Context, link *entity.CourseTeacher) error
	ListByCourse(ctx context.Context, courseID int64) ([]entity.Teacher, error)
}
