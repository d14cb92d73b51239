package router

import (
	"vehiql/internal/adapter/api/handler"
	"vehiql/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	v1.GET("/me", userHandler.GetMe, authMiddleware.Authenticate)

	users := v1.Group("/admin/users")
	users.Use(authMiddleware.Authenticate)
	users.Use(adminMiddleware.AdminOnly)

	users.GET("", userHandler.ListUsers)
	users.PATCH("/:id/role", userHandler.UpdateUserRole)
}
