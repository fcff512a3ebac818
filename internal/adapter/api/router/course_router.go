package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupCourseRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	courseHandler := handler.GetCourseHandler()

	courses := v1.Group("/courses")
	courses.GET("", courseHandler.Search)
	courses.GET("/:id/teachers", courseHandler.ListTeachers)
	courses.GET("/:id/reviews", courseHandler.ListReviews)
	courses.GET("/:id/teacher-reviews", courseHandler.ListTeacherReviews, authMiddleware.Optional)
	courses.GET("/:id/teachers/:teacherId/reviews", courseHandler.ListReviewsForTeacher)

	courses.POST("", courseHandler.Create, authMiddleware.Authenticate, middleware.StudentOnly())
	courses.POST("/:id/teachers", courseHandler.AddTeacher, authMiddleware.Authenticate, middleware.AdminOnly())
}
