package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/infrastructure/metrics"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
