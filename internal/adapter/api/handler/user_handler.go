package handler

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/usecase"
	"studymarket/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	LineID *string `json:"lineId" validate:"omitempty,min=1"`
}

func (r *updateProfileRequest) normalize() {
	r.Name = trimPtr(r.Name)
	r.LineID = trimPtr(r.LineID)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=1"`
	NewPassword     string `json:"newPassword" validate:"required,min=1"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userUseCase.GetMe(c.Request().Context(), getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateMe(c.Request().Context(), getUserID(c), usecase.UpdateProfileInput{
		Name:   req.Name,
		LineID: req.LineID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	err := h.userUseCase.ChangePassword(c.Request().Context(), getUserID(c), usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"success": true})
}

func (h *UserHandler) GetWallet(c echo.Context) error {
	summary, err := h.userUseCase.WalletSummary(c.Request().Context(), getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, summary)
}
