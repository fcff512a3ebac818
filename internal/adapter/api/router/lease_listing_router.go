package router

import (
	"github.com/labstack/echo/v4"

	"studymarket/internal/adapter/api/handler"
	"studymarket/internal/adapter/api/middleware"
)

func SetupLeaseListingRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	leaseListingHandler := handler.GetLeaseListingHandler()

	listings := v1.Group("/lease-listings")
	listings.GET("", leaseListingHandler.List)

	authenticated := listings.Group("", authMiddleware.Authenticate)
	authenticated.GET("/mine", leaseListingHandler.ListMine)
	authenticated.PATCH("/:id", leaseListingHandler.Update)
	authenticated.DELETE("/:id", leaseListingHandler.Delete)
	// owner or admin, checked in the use case
	authenticated.POST("/:id/transfer", leaseListingHandler.Transfer)

	authenticated.POST("", leaseListingHandler.Create, middleware.StudentOnly())
	authenticated.POST("/:id/interest", leaseListingHandler.RegisterInterest, middleware.StudentOnly())

	listings.GET("/:id", leaseListingHandler.Get)
}
