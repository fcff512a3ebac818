package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"studymarket/internal/domain/entity"
	"studymarket/internal/usecase"
	"studymarket/pkg/errors"
)

var (
	authHandler          *AuthHandler
	userHandler          *UserHandler
	courseHandler        *CourseHandler
	studySheetHandler    *StudySheetHandler
	leaseListingHandler  *LeaseListingHandler
	reviewHandler        *ReviewHandler
	teacherReviewHandler *TeacherReviewHandler
	moderationHandler    *ModerationHandler
	paymentHandler       *PaymentHandler
	reportHandler        *ReportHandler
	withdrawalHandler    *WithdrawalHandler
)

// UseCases bundles everything the HTTP layer calls into.
type UseCases struct {
	Auth          *usecase.AuthUseCase
	User          *usecase.UserUseCase
	Course        *usecase.CourseUseCase
	StudySheet    *usecase.StudySheetUseCase
	LeaseListing  *usecase.LeaseListingUseCase
	Review        *usecase.ReviewUseCase
	TeacherReview *usecase.TeacherReviewUseCase
	Moderation    *usecase.ModerationUseCase
	Payment       *usecase.PaymentUseCase
	Report        *usecase.ReportUseCase
	Withdrawal    *usecase.WithdrawalUseCase
}

func Setup(uc UseCases) {
	authHandler = NewAuthHandler(uc.Auth)
	userHandler = NewUserHandler(uc.User)
	courseHandler = NewCourseHandler(uc.Course)
	studySheetHandler = NewStudySheetHandler(uc.StudySheet)
	leaseListingHandler = NewLeaseListingHandler(uc.LeaseListing)
	reviewHandler = NewReviewHandler(uc.Review, uc.Report)
	teacherReviewHandler = NewTeacherReviewHandler(uc.TeacherReview, uc.Report)
	moderationHandler = NewModerationHandler(uc.Moderation)
	paymentHandler = NewPaymentHandler(uc.Payment)
	reportHandler = NewReportHandler(uc.Report)
	withdrawalHandler = NewWithdrawalHandler(uc.Withdrawal)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetCourseHandler() *CourseHandler {
	return courseHandler
}

func GetStudySheetHandler() *StudySheetHandler {
	return studySheetHandler
}

func GetLeaseListingHandler() *LeaseListingHandler {
	return leaseListingHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetTeacherReviewHandler() *TeacherReviewHandler {
	return teacherReviewHandler
}

func GetModerationHandler() *ModerationHandler {
	return moderationHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetWithdrawalHandler() *WithdrawalHandler {
	return withdrawalHandler
}

// normalizer is implemented by request bodies that trim their fields before validation.
type normalizer interface {
	normalize()
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Validation failed", err)
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

// getUserID returns the authenticated user id, 0 for anonymous requests.
func getUserID(c echo.Context) int64 {
	uid, _ := c.Get("uid").(int64)
	return uid
}

func getRole(c echo.Context) entity.Role {
	role, _ := c.Get("role").(entity.Role)
	return role
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Validation failed", err)
	}
	return id, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type statusEnum interface {
	~string
	Valid() bool
}

// statusQuery reads ?status. An empty fallback makes the parameter mandatory.
func statusQuery[S statusEnum](c echo.Context, fallback S) (S, error) {
	raw := strings.TrimSpace(c.QueryParam("status"))
	if raw == "" {
		raw = string(fallback)
	}
	status := S(strings.ToUpper(raw))
	if !status.Valid() {
		return status, errors.BadRequest("Validation failed", nil)
	}
	return status, nil
}
