package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupReviewRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := v1.Group("/reviews", authMiddleware.Authenticate)
	reviews.PATCH("/:id", reviewHandler.Update)
	reviews.DELETE("/:id", reviewHandler.Delete)

	students := reviews.Group("", middleware.StudentOnly())
	students.POST("", reviewHandler.Create)
	students.POST("/:id/upvote", reviewHandler.Upvote)
	students.DELETE("/:id/upvote", reviewHandler.RemoveUpvote)
	students.POST("/:id/report", reviewHandler.Report)
}

func SetupTeacherReviewRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	teacherReviewHandler := handler.GetTeacherReviewHandler()

	reviews := v1.Group("/teacher-reviews", authMiddleware.Authenticate)
	reviews.PATCH("/:id", teacherReviewHandler.Update)
	reviews.DELETE("/:id", teacherReviewHandler.Delete)

	students := reviews.Group("", middleware.StudentOnly())
	students.POST("", teacherReviewHandler.Create)
	students.POST("/:id/upvote", teacherReviewHandler.Upvote)
	students.DELETE("/:id/upvote", teacherReviewHandler.RemoveUpvote)
	students.POST("/:id/report", teacherReviewHandler.Report)
}
