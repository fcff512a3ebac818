package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupAdminRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()
	reportHandler := handler.GetReportHandler()

	admin := v1.Group("/admin", authMiddleware.Authenticate, middleware.AdminOnly())

	admin.GET("/payments", paymentHandler.List)
	admin.POST("/payments/:id/confirm", paymentHandler.Confirm)
	admin.POST("/payments/:id/release", paymentHandler.Release)

	admin.GET("/reports", reportHandler.List)
	admin.PATCH("/reports/:id/status", reportHandler.UpdateStatus)
	admin.POST("/reports/:id/remove-target", reportHandler.RemoveTarget)
}
