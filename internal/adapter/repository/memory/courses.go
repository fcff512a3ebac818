package memory

import (
	"context"
	"strings"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
)

type courseRepo struct{ s *Store }

func (r *courseRepo) Create(ctx context.Context, course *entity.Course) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.courses, func(c entity.Course) bool { return c.Code == course.Code }) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.courses, course.ID, *course)
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*entity.Course, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.courses, id)
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*entity.Course, error) {
	defer r.s.acquire(ctx)()
	return findOne(r.s.data.courses, func(c entity.Course) bool { return c.Code == code })
}

func (r *courseRepo) Search(ctx context.Context, query string) ([]entity.Course, error) {
	defer r.s.acquire(ctx)()
	q := strings.ToLower(query)
	return collect(r.s.data.courses,
		func(c entity.Course) bool {
			return q == "" || strings.Contains(strings.ToLower(c.Code), q) || strings.Contains(strings.ToLower(c.Name), q)
		},
		func(a, b entity.Course) bool { return a.Code < b.Code }), nil
}

type teacherRepo struct{ s *Store }

func (r *teacherRepo) Create(ctx context.Context, teacher *entity.Teacher) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.teachers, func(t entity.Teacher) bool { return t.Name == teacher.Name }) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.teachers, teacher.ID, *teacher)
}

func (r *teacherRepo) GetByID(ctx context.Context, id int64) (*entity.Teacher, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.teachers, id)
}

func (r *teacherRepo) GetByName(ctx context.Context, name string) (*entity.Teacher, error) {
	defer r.s.acquire(ctx)()
	return findOne(r.s.data.teachers, func(t entity.Teacher) bool { return t.Name == name })
}

func (r *teacherRepo) LinkCourse(ctx context.Context, link *entity.CourseTeacher) error {
	defer r.s.acquire(ctx)()
	if exists(r.s.data.courseTeachers, func(ct entity.CourseTeacher) bool {
		return ct.CourseID == link.CourseID && ct.TeacherID == link.TeacherID
	}) {
		return nil
	}
	return insert(r.s.data.courseTeachers, link.ID, *link)
}

func (r *teacherRepo) ListByCourse(ctx context.Context, courseID int64) ([]entity.Teacher, error) {
	defer r.s.acquire(ctx)()
	out := make([]entity.Teacher, 0)
	for _, link := range r.s.data.courseTeachers {
		if link.CourseID != courseID {
			continue
		}
		if t, ok := r.s.data.teachers[link.TeacherID]; ok {
			out = append(out, t)
		}
	}
	sortBy(out, func(a, b entity.Teacher) bool { return a.Name < b.Name })
	return out, nil
}
