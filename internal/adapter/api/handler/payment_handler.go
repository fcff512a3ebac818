package handler

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/response"
	"studymarket/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) List(c echo.Context) error {
	status, err := statusQuery[entity.PaymentStatus](c, "")
	if err != nil {
		return response.Error(c, err)
	}

	payments, err := h.paymentUseCase.List(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, payments)
}

// Confirm marks the buyer's transfer as received (PENDING -> APPROVED).
func (h *PaymentHandler) Confirm(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.Confirm(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, payment)
}

// Release pays the seller out of escrow (APPROVED -> RELEASED).
func (h *PaymentHandler) Release(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.Release(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, payment)
}
