package handler

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/response"
	"studymarket/pkg/utils"
)

type WithdrawalHandler struct {
	withdrawalUseCase *usecase.WithdrawalUseCase
}

func NewWithdrawalHandler(withdrawalUseCase *usecase.WithdrawalUseCase) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalUseCase: withdrawalUseCase,
	}
}

type requestWithdrawalRequest struct {
	AmountCents int64 `json:"amountCents" validate:"required,gt=0"`
}

func (h *WithdrawalHandler) Request(c echo.Context) error {
	var req requestWithdrawalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	withdrawal, err := h.withdrawalUseCase.Request(c.Request().Context(), getUserID(c), req.AmountCents)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, withdrawal)
}

func (h *WithdrawalHandler) ListMine(c echo.Context) error {
	withdrawals, err := h.withdrawalUseCase.ListMine(c.Request().Context(), getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, withdrawals)
}

func (h *WithdrawalHandler) List(c echo.Context) error {
	status, err := statusQuery(c, entity.WithdrawalPending)
	if err != nil {
		return response.Error(c, err)
	}

	withdrawals, err := h.withdrawalUseCase.List(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, withdrawals)
}

func (h *WithdrawalHandler) Approve(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	withdrawal, err := h.withdrawalUseCase.Approve(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, withdrawal)
}

// Reject refunds the held amount to the seller's wallet.
func (h *WithdrawalHandler) Reject(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	withdrawal, err := h.withdrawalUseCase.Reject(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, withdrawal)
}
