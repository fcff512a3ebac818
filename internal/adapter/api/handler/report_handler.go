package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/response"
	"studymarket/pkg/utils"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type updateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=RESOLVED REJECTED"`
}

func (r *updateReportStatusRequest) normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

func (h *ReportHandler) List(c echo.Context) error {
	status, err := statusQuery(c, entity.ReportPending)
	if err != nil {
		return response.Error(c, err)
	}

	reports, err := h.reportUseCase.List(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reports)
}

func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateReportStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.reportUseCase.UpdateStatus(c.Request().Context(), id, getUserID(c), entity.ReportStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *ReportHandler) RemoveTarget(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.reportUseCase.RemoveTarget(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}
