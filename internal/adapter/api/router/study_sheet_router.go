package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupStudySheetRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	studySheetHandler := handler.GetStudySheetHandler()

	sheets := v1.Group("/study-sheets")
	sheets.GET("", studySheetHandler.List)

	authenticated := sheets.Group("", authMiddleware.Authenticate)
	authenticated.GET("/mine", studySheetHandler.ListMine)
	authenticated.GET("/purchased", studySheetHandler.ListPurchased)
	authenticated.PATCH("/:id", studySheetHandler.Update)
	authenticated.DELETE("/:id", studySheetHandler.Delete)

	authenticated.POST("", studySheetHandler.Create, middleware.StudentOnly())
	authenticated.POST("/:id/purchase", studySheetHandler.Purchase, middleware.StudentOnly())
}
