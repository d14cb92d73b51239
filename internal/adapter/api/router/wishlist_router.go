package router

import (
	"vehiql/internal/adapter/api/handler"
	"vehiql/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWishlistRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	wishlistHandler := handler.GetWishlistHandler()

	// All saved car endpoints require authentication
	savedCars := v1.Group("/saved-cars")
	savedCars.Use(authMiddleware.Authenticate)

	savedCars.GET("", wishlistHandler.GetSavedCars)
	savedCars.POST("/:carId/toggle", wishlistHandler.ToggleSavedCar)
}
