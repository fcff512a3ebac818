package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiters *middleware.Limiters) {
	SetupHealthRouter(e)

	v1 := e.Group("/v1", limiters.GeneralRateLimit())
	SetupAuthRouter(v1, limiters)
	SetupUserRouter(v1, authMiddleware)
	SetupCourseRouter(v1, authMiddleware)
	SetupStudySheetRouter(v1, authMiddleware)
	SetupLeaseListingRouter(v1, authMiddleware)
	SetupReviewRouter(v1, authMiddleware)
	SetupTeacherReviewRouter(v1, authMiddleware)
	SetupModerationRouter(v1, authMiddleware)
	SetupAdminRouter(v1, authMiddleware)
	SetupWithdrawalRouter(v1, authMiddleware)
}
