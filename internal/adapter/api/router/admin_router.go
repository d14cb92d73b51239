package router

import (
	"vehiql/internal/adapter/api/handler"
	"vehiql/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()
	settingsHandler := handler.GetSettingsHandler()

	// Admin routes - require authentication and admin role
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	// Inventory
	admin.GET("/cars", adminHandler.ListCars)
	admin.POST("/cars", adminHandler.CreateCar)
	admin.PATCH("/cars/:id/status", adminHandler.UpdateCarStatus)
	admin.DELETE("/cars/:id", adminHandler.DeleteCar)

	// Dealership settings
	admin.GET("/settings/dealership", settingsHandler.GetDealershipInfo)
	admin.PUT("/settings/working-hours", settingsHandler.SaveWorkingHours)
}
