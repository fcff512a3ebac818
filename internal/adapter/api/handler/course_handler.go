package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/usecase"
	"studymarket/pkg/response"
)

type CourseHandler struct {
	courseUseCase *usecase.CourseUseCase
}

func NewCourseHandler(courseUseCase *usecase.CourseUseCase) *CourseHandler {
	return &CourseHandler{
		courseUseCase: courseUseCase,
	}
}

type createCourseRequest struct {
	Code string `json:"code" validate:"required,min=1"`
	Name string `json:"name" validate:"required,min=1"`
}

func (r *createCourseRequest) normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
}

type addTeacherRequest struct {
	TeacherName string `json:"teacherName" validate:"required,min=1"`
}

func (r *addTeacherRequest) normalize() {
	r.TeacherName = strings.TrimSpace(r.TeacherName)
}

func (h *CourseHandler) Search(c echo.Context) error {
	courses, err := h.courseUseCase.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, courses)
}

func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	course, err := h.courseUseCase.Create(c.Request().Context(), req.Code, req.Name)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, course)
}

func (h *CourseHandler) ListTeachers(c echo.Context) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	teachers, err := h.courseUseCase.ListTeachers(c.Request().Context(), courseID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, teachers)
}

func (h *CourseHandler) AddTeacher(c echo.Context) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req addTeacherRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	teacher, err := h.courseUseCase.AddTeacher(c.Request().Context(), courseID, req.TeacherName)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, teacher)
}

func (h *CourseHandler) ListReviews(c echo.Context) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.courseUseCase.ListReviews(c.Request().Context(), courseID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

// ListTeacherReviews also shows the caller's own pending reviews when a token is present.
func (h *CourseHandler) ListTeacherReviews(c echo.Context) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.courseUseCase.ListTeacherReviews(c.Request().Context(), courseID, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

func (h *CourseHandler) ListReviewsForTeacher(c echo.Context) error {
	courseID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	teacherID, err := parseID(c, "teacherId")
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.courseUseCase.ListReviewsForTeacher(c.Request().Context(), courseID, teacherID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}
