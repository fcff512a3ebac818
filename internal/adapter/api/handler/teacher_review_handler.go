package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/response"
)

type TeacherReviewHandler struct {
	teacherReviewUseCase *usecase.TeacherReviewUseCase
	reportUseCase        *usecase.ReportUseCase
}

func NewTeacherReviewHandler(teacherReviewUseCase *usecase.TeacherReviewUseCase, reportUseCase *usecase.ReportUseCase) *TeacherReviewHandler {
	return &TeacherReviewHandler{
		teacherReviewUseCase: teacherReviewUseCase,
		reportUseCase:        reportUseCase,
	}
}

type createTeacherReviewRequest struct {
	CourseID    int64  `json:"courseId" validate:"required,gt=0"`
	TeacherName string `json:"teacherName" validate:"required,min=1"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Text        string `json:"text" validate:"required,min=1"`
}

func (r *createTeacherReviewRequest) normalize() {
	r.TeacherName = strings.TrimSpace(r.TeacherName)
	r.Text = strings.TrimSpace(r.Text)
}

// Teacher review reports may be filed without a reason.
type reportTeacherReviewRequest struct {
	Reason *string `json:"reason"`
}

func (h *TeacherReviewHandler) Create(c echo.Context) error {
	var req createTeacherReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.teacherReviewUseCase.CreateTeacherReview(c.Request().Context(), getUserID(c), usecase.CreateTeacherReviewInput{
		CourseID:    req.CourseID,
		TeacherName: req.TeacherName,
		Rating:      req.Rating,
		Text:        req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *TeacherReviewHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.teacherReviewUseCase.UpdateTeacherReview(c.Request().Context(), id, getUserID(c), req.Rating, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *TeacherReviewHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.teacherReviewUseCase.DeleteTeacherReview(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *TeacherReviewHandler) Upvote(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	vote, err := h.teacherReviewUseCase.Upvote(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, vote)
}

func (h *TeacherReviewHandler) RemoveUpvote(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.teacherReviewUseCase.RemoveUpvote(c.Request().Context(), id, getUserID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"success": true})
}

func (h *TeacherReviewHandler) Report(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req reportTeacherReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	reason := ""
	if req.Reason != nil {
		reason = strings.TrimSpace(*req.Reason)
	}

	report, err := h.reportUseCase.File(c.Request().Context(), getUserID(c), entity.ReportTargetTeacherReview, id, reason)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, report)
}
