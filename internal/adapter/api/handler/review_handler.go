package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
	reportUseCase *usecase.ReportUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase, reportUseCase *usecase.ReportUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
		reportUseCase: reportUseCase,
	}
}

type createReviewRequest struct {
	CourseID int64  `json:"courseId" validate:"required,gt=0"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Text     string `json:"text" validate:"required,min=1"`
}

func (r *createReviewRequest) normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

type updateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required,min=1"`
}

func (r *updateReviewRequest) normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

type reportReviewRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

func (r *reportReviewRequest) normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), getUserID(c), usecase.CreateReviewInput{
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Text:     req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), id, getUserID(c), req.Rating, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.DeleteReview(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *ReviewHandler) Upvote(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	vote, err := h.reviewUseCase.Upvote(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, vote)
}

func (h *ReviewHandler) RemoveUpvote(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.reviewUseCase.RemoveUpvote(c.Request().Context(), id, getUserID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"success": true})
}

func (h *ReviewHandler) Report(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req reportReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.File(c.Request().Context(), getUserID(c), entity.ReportTargetReview, id, req.Reason)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, report)
}
