package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupUserRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	me := v1.Group("/me", authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.PATCH("", userHandler.UpdateMe)
	me.PATCH("/password", userHandler.ChangePassword)
	me.GET("/wallet", userHandler.GetWallet, middleware.StudentOnly())
}
