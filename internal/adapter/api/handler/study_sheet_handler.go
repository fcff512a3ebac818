package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/usecase"
	"studymarket/pkg/response"
	"studymarket/pkg/utils"
)

type StudySheetHandler struct {
	studySheetUseCase *usecase.StudySheetUseCase
}

func NewStudySheetHandler(studySheetUseCase *usecase.StudySheetUseCase) *StudySheetHandler {
	return &StudySheetHandler{
		studySheetUseCase: studySheetUseCase,
	}
}

type createStudySheetRequest struct {
	Title       string  `json:"title" validate:"required,min=1"`
	Description *string `json:"description"`
	FileURL     string  `json:"fileUrl" validate:"required,min=1"`
	PriceCents  *int64  `json:"priceCents" validate:"required,gte=0"`
	CourseCode  string  `json:"courseCode" validate:"required,min=1"`
}

func (r *createStudySheetRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimPtr(r.Description)
	r.FileURL = strings.TrimSpace(r.FileURL)
	r.CourseCode = strings.TrimSpace(r.CourseCode)
}

type updateStudySheetRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	FileURL     *string `json:"fileUrl" validate:"omitempty,min=1"`
	PriceCents  *int64  `json:"priceCents" validate:"omitempty,gte=0"`
}

func (r *updateStudySheetRequest) normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.FileURL = trimPtr(r.FileURL)
}

func (h *StudySheetHandler) Create(c echo.Context) error {
	var req createStudySheetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	sheet, err := h.studySheetUseCase.Create(c.Request().Context(), getUserID(c), usecase.CreateStudySheetInput{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		PriceCents:  *req.PriceCents,
		CourseCode:  req.CourseCode,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, sheet)
}

func (h *StudySheetHandler) List(c echo.Context) error {
	sheets, err := h.studySheetUseCase.ListApproved(c.Request().Context(), c.QueryParam("courseCode"), utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sheets)
}

func (h *StudySheetHandler) ListMine(c echo.Context) error {
	sheets, err := h.studySheetUseCase.ListMine(c.Request().Context(), getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sheets)
}

func (h *StudySheetHandler) ListPurchased(c echo.Context) error {
	purchased, err := h.studySheetUseCase.ListPurchased(c.Request().Context(), getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, purchased)
}

func (h *StudySheetHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateStudySheetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	sheet, err := h.studySheetUseCase.Update(c.Request().Context(), id, getUserID(c), usecase.UpdateStudySheetInput{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sheet)
}

func (h *StudySheetHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	sheet, err := h.studySheetUseCase.Delete(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sheet)
}

func (h *StudySheetHandler) Purchase(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	receipt, err := h.studySheetUseCase.Purchase(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, receipt)
}
