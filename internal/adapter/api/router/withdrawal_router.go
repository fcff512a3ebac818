package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupWithdrawalRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	withdrawalHandler := handler.GetWithdrawalHandler()

	withdrawals := v1.Group("/withdrawals", authMiddleware.Authenticate)

	withdrawals.POST("", withdrawalHandler.Request, middleware.StudentOnly())
	withdrawals.GET("/mine", withdrawalHandler.ListMine, middleware.StudentOnly())

	withdrawals.GET("", withdrawalHandler.List, middleware.AdminOnly())
	withdrawals.POST("/:id/approve", withdrawalHandler.Approve, middleware.AdminOnly())
	withdrawals.POST("/:id/reject", withdrawalHandler.Reject, middleware.AdminOnly())
}
