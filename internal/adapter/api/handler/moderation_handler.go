package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/response"
	"studymarket/pkg/utils"
)

type ModerationHandler struct {
	moderationUseCase *usecase.ModerationUseCase
}

func NewModerationHandler(moderationUseCase *usecase.ModerationUseCase) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
	}
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

func (r *rejectRequest) normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

type removeRequest struct {
	Reason *string `json:"reason" validate:"omitempty,min=1"`
}

func (r *removeRequest) normalize() {
	r.Reason = trimPtr(r.Reason)
	if r.Reason != nil && *r.Reason == "" {
		r.Reason = nil
	}
}

// decision builds the moderator verdict for the :id in the path. Rejections
// must carry a reason in the body.
func decision(c echo.Context, d entity.Decision) (usecase.DecisionInput, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return usecase.DecisionInput{}, err
	}
	in := usecase.DecisionInput{EntityID: id, ActorID: getUserID(c), Decision: d}
	if d == entity.DecisionRejected {
		var req rejectRequest
		if err := bindAndValidate(c, &req); err != nil {
			return in, err
		}
		in.Reason = &req.Reason
	}
	return in, nil
}

func (h *ModerationHandler) ListStudySheets(c echo.Context) error {
	status, err := statusQuery[entity.StudySheetStatus](c, "")
	if err != nil {
		return response.Error(c, err)
	}

	sheets, err := h.moderationUseCase.ListStudySheets(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sheets)
}

func (h *ModerationHandler) ApproveStudySheet(c echo.Context) error {
	return h.decideStudySheet(c, entity.DecisionApproved)
}

func (h *ModerationHandler) RejectStudySheet(c echo.Context) error {
	return h.decideStudySheet(c, entity.DecisionRejected)
}

func (h *ModerationHandler) decideStudySheet(c echo.Context, d entity.Decision) error {
	in, err := decision(c, d)
	if err != nil {
		return response.Error(c, err)
	}

	sheet, err := h.moderationUseCase.DecideStudySheet(c.Request().Context(), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sheet)
}

func (h *ModerationHandler) ListLeaseListings(c echo.Context) error {
	status, err := statusQuery[entity.LeaseListingStatus](c, "")
	if err != nil {
		return response.Error(c, err)
	}

	listings, err := h.moderationUseCase.ListLeaseListings(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *ModerationHandler) ApproveLeaseListing(c echo.Context) error {
	return h.decideLeaseListing(c, entity.DecisionApproved)
}

func (h *ModerationHandler) RejectLeaseListing(c echo.Context) error {
	return h.decideLeaseListing(c, entity.DecisionRejected)
}

func (h *ModerationHandler) decideLeaseListing(c echo.Context, d entity.Decision) error {
	in, err := decision(c, d)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.moderationUseCase.DecideLeaseListing(c.Request().Context(), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ModerationHandler) ListReviews(c echo.Context) error {
	status, err := statusQuery[entity.ReviewStatus](c, "")
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.moderationUseCase.ListReviews(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

func (h *ModerationHandler) ApproveReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.moderationUseCase.ApproveReview(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *ModerationHandler) RemoveReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.moderationUseCase.RemoveReview(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *ModerationHandler) ListTeacherReviews(c echo.Context) error {
	status, err := statusQuery(c, entity.ReviewUnderReview)
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.moderationUseCase.ListTeacherReviews(c.Request().Context(), status, utils.GetPaginationParams(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

func (h *ModerationHandler) ApproveTeacherReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.moderationUseCase.ApproveTeacherReview(c.Request().Context(), id, getUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}

func (h *ModerationHandler) RemoveTeacherReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req removeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.moderationUseCase.RemoveTeacherReview(c.Request().Context(), id, getUserID(c), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, review)
}
