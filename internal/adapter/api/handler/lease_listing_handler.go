package handler

import (
	"encoding/json"
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/errors"
	"studymarket/pkg/response"
	"studymarket/pkg/utils"
)

type LeaseListingHandler struct {
	leaseListingUseCase *usecase.LeaseListingUseCase
}

func NewLeaseListingHandler(leaseListingUseCase *usecase.LeaseListingUseCase) *LeaseListingHandler {
	return &LeaseListingHandler{
		leaseListingUseCase: leaseListingUseCase,
	}
}

// nullableString tells an absent JSON field apart from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type createLeaseListingRequest struct {
	Title        string  `json:"title" validate:"required,min=1"`
	Description  *string `json:"description"`
	LineID       *string `json:"lineId"`
	Location     string  `json:"location" validate:"required,min=1"`
	RentCents    *int64  `json:"rentCents" validate:"required,gte=0"`
	DepositCents *int64  `json:"depositCents" validate:"required,gte=0"`
	StartDate    string  `json:"startDate" validate:"required,min=1"`
	EndDate      string  `json:"endDate" validate:"required,min=1"`
}

func (r *createLeaseListingRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimPtr(r.Description)
	r.LineID = trimPtr(r.LineID)
	r.Location = strings.TrimSpace(r.Location)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
}

type updateLeaseListingRequest struct {
	Title        *string        `json:"title" validate:"omitempty,min=1"`
	Description  *string        `json:"description"`
	LineID       nullableString `json:"lineId"`
	Location     *string        `json:"location" validate:"omitempty,min=1"`
	RentCents    *int64         `json:"rentCents" validate:"omitempty,gte=0"`
	DepositCents *int64         `json:"depositCents" validate:"omitempty,gte=0"`
	StartDate    *string        `json:"startDate" validate:"omitempty,min=1"`
	EndDate      *string        `json:"endDate" validate:"omitempty,min=1"`
}

func (r *updateLeaseListingRequest) normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.LineID.Value = trimPtr(r.LineID.Value)
	r.Location = trimPtr(r.Location)
	r.StartDate = trimPtr(r.StartDate)
	r.EndDate = trimPtr(r.EndDate)
}

func (r *updateLeaseListingRequest) toUpdate() entity.LeaseListingUpdate {
	return entity.LeaseListingUpdate{
		Title:        r.Title,
		Description:  r.Description,
		LineID:       r.LineID.Value,
		ClearLineID:  r.LineID.Set && r.LineID.Value == nil,
		Location:     r.Location,
		RentCents:    r.RentCents,
		DepositCents: r.DepositCents,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

func (h *LeaseListingHandler) Create(c echo.Context) error {
	var req createLeaseListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.leaseListingUseCase.Create(c.Request().Context(), getUserID(c), usecase.CreateLeaseListingInput{
		Title:        req.Title,
		Description:  req.Description,
		LineID:       req.LineID,
		Location:     req.Location,
		RentCents:    *req.RentCents,
		DepositCents: *req.DepositCents,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *LeaseListingHandler) List(c echo.Context) error {
	listings, err := h.leaseListingUseCase.ListApproved(c.Request().Context(), utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *LeaseListingHandler) ListMine(c echo.Context) error {
	listings, err := h.leaseListingUseCase.ListMine(c.Request().Context(), getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *LeaseListingHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.leaseListingUseCase.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *LeaseListingHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateLeaseListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	if req.LineID.Value != nil && *req.LineID.Value == "" {
		return response.Error(c, errors.BadRequest("lineId must be at least 1", nil))
	}

	listing, err := h.leaseListingUseCase.Update(c.Request().Context(), id, getUserID(c), req.toUpdate())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *LeaseListingHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.leaseListingUseCase.Delete(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *LeaseListingHandler) RegisterInterest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	request, err := h.leaseListingUseCase.RegisterInterest(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, request)
}

func (h *LeaseListingHandler) Transfer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.leaseListingUseCase.Transfer(c.Request().Context(), id, getUserID(c), getRole(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}
