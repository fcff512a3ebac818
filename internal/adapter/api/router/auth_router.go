package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupAuthRouter(v1 *echo.Group, limiters *middleware.Limiters) {
	authHandler := handler.GetAuthHandler()

	auth := v1.Group("/auth", limiters.AuthRateLimit())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
}
