package usecase

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
)

type CourseUseCase struct {
	courseRepo        repository.CourseRepository
	teacherRepo       repository.TeacherRepository
	reviewRepo        repository.ReviewRepository
	teacherReviewRepo repository.TeacherReviewRepository
	tx                *Transactor
}

func NewCourseUseCase(
	courseRepo repository.CourseRepository,
	teacherRepo repository.TeacherRepository,
	reviewRepo repository.ReviewRepository,
	teacherReviewRepo repository.TeacherReviewRepository,
	tx *Transactor,
) *CourseUseCase {
	return &CourseUseCase{
		courseRepo:        courseRepo,
		teacherRepo:       teacherRepo,
		reviewRepo:        reviewRepo,
		teacherReviewRepo: teacherReviewRepo,
		tx:                tx,
	}
}

// CourseSummary is the public view of a course in search results.
type CourseSummary struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func (uc *CourseUseCase) Search(ctx context.Context, query string) ([]CourseSummary, error) {
	courses, err := uc.courseRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	out := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseSummary{ID: c.ID, Code: c.Code, Name: c.Name})
	}
	return out, nil
}

func (uc *CourseUseCase) Create(ctx context.Context, code, name string) (*entity.Course, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if _, err := uc.courseRepo.GetByCode(ctx, code); err == nil {
		return nil, errors.Conflict("Course code already exists")
	} else if !isNotFound(err) {
		return nil, err
	}

	id, err := uc.tx.NextID(ctx, repository.SeqCourses)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	course := &entity.Course{ID: id, Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		if isDuplicate(err) {
			return nil, errors.Conflict("Course code already exists")
		}
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) ListTeachers(ctx context.Context, courseID int64) ([]entity.Teacher, error) {
	return uc.teacherRepo.ListByCourse(ctx, courseID)
}

// AddTeacher links a teacher to the course, creating the teacher on first use.
func (uc *CourseUseCase) AddTeacher(ctx context.Context, courseID int64, teacherName string) (*entity.Teacher, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, lookupError(err, "Course")
	}

	teacher, err := findOrCreateTeacher(ctx, uc.teacherRepo, uc.tx, teacherName)
	if err != nil {
		return nil, err
	}
	if err := linkCourseTeacher(ctx, uc.teacherRepo, uc.tx, courseID, teacher.ID); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (uc *CourseUseCase) ListReviews(ctx context.Context, courseID int64) ([]entity.Review, error) {
	return uc.reviewRepo.ListByCourse(ctx, courseID, entity.ReviewVisible)
}

// ListTeacherReviews returns the course's visible teacher reviews plus those
// of viewerID still under review. viewerID 0 means anonymous.
func (uc *CourseUseCase) ListTeacherReviews(ctx context.Context, courseID, viewerID int64) ([]entity.TeacherReview, error) {
	return uc.teacherReviewRepo.ListByCourse(ctx, courseID, viewerID)
}

func (uc *CourseUseCase) ListReviewsForTeacher(ctx context.Context, courseID, teacherID int64) ([]entity.TeacherReview, error) {
	return uc.teacherReviewRepo.ListByCourseTeacher(ctx, courseID, teacherID)
}

// findOrCreateCourse resolves a course by code, creating it with the code as
// its name. A concurrent creator winning the unique index is not an error.
func findOrCreateCourse(ctx context.Context, courseRepo repository.CourseRepository, tx *Transactor, code string) (*entity.Course, error) {
	course, err := courseRepo.GetByCode(ctx, code)
	if err == nil {
		return course, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	id, err := tx.NextID(ctx, repository.SeqCourses)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	course = &entity.Course{ID: id, Code: code, Name: code, CreatedAt: now, UpdatedAt: now}
	if err := courseRepo.Create(ctx, course); err != nil {
		if isDuplicate(err) {
			return courseRepo.GetByCode(ctx, code)
		}
		return nil, err
	}
	return course, nil
}

func findOrCreateTeacher(ctx context.Context, teacherRepo repository.TeacherRepository, tx *Transactor, name string) (*entity.Teacher, error) {
	name = entity.CanonicalTeacherName(name)
	if name == "" {
		return nil, errors.BadRequest("teacherName is required", nil)
	}

	teacher, err := teacherRepo.GetByName(ctx, name)
	if err == nil {
		return teacher, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	id, err := tx.NextID(ctx, repository.SeqTeachers)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	teacher = &entity.Teacher{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := teacherRepo.Create(ctx, teacher); err != nil {
		if isDuplicate(err) {
			return teacherRepo.GetByName(ctx, name)
		}
		return nil, err
	}
	return teacher, nil
}

func linkCourseTeacher(ctx context.Context, teacherRepo repository.TeacherRepository, tx *Transactor, courseID, teacherID int64) error {
	id, err := tx.NextID(ctx, repository.SeqCourseTeachers)
	if err != nil {
		return err
	}
	link := &entity.CourseTeacher{
		ID:        id,
		CourseID:  courseID,
		TeacherID: teacherID,
		CreatedAt: time.Now().UTC(),
	}
	if err := teacherRepo.LinkCourse(ctx, link); err != nil && !isDuplicate(err) {
		return err
	}
	return nil
}
