package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupModerationRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	moderationHandler := handler.GetModerationHandler()

	moderation := v1.Group("/moderation", authMiddleware.Authenticate, middleware.StaffOnly())

	moderation.GET("/study-sheets", moderationHandler.ListStudySheets)
	moderation.POST("/study-sheets/:id/approve", moderationHandler.ApproveStudySheet)
	moderation.POST("/study-sheets/:id/reject", moderationHandler.RejectStudySheet)

	moderation.GET("/lease-listings", moderationHandler.ListLeaseListings)
	moderation.POST("/lease-listings/:id/approve", moderationHandler.ApproveLeaseListing)
	moderation.POST("/lease-listings/:id/reject", moderationHandler.RejectLeaseListing)

	moderation.GET("/reviews", moderationHandler.ListReviews)
	moderation.POST("/reviews/:id/approve", moderationHandler.ApproveReview)
	moderation.POST("/reviews/:id/remove", moderationHandler.RemoveReview)

	moderation.GET("/teacher-reviews", moderationHandler.ListTeacherReviews)
	moderation.POST("/teacher-reviews/:id/approve", moderationHandler.ApproveTeacherReview)
	moderation.POST("/teacher-reviews/:id/remove", moderationHandler.RemoveTeacherReview)
}
