package router

import (
	"vehiql/internal/adapter/api/handler"
	"vehiql/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCarRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	carHandler := handler.GetCarHandler()
	imageSearchHandler := handler.GetImageSearchHandler()

	// Public listing; a valid token only adds wishlist flags
	cars := v1.Group("/cars")
	cars.GET("/filters", carHandler.GetFilters)
	cars.GET("/featured", carHandler.GetFeaturedCars)
	cars.GET("", carHandler.ListCars, authMiddleware.OptionalAuth)
	cars.GET("/:id", carHandler.GetCarByID, authMiddleware.OptionalAuth)
	cars.POST("/image-search", imageSearchHandler.SearchByImage, authMiddleware.OptionalAuth)
}
