package router

import (
	"github.com/labstack/echo/v4"

	"vehiql/internal/adapter/api/middleware"
)

// Setup mounts every route. rateLimit guards the /v1 API and may be nil.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimit echo.MiddlewareFunc) {
	SetupHealthRouter(e)

	v1 := e.Group("/v1")
	if rateLimit != nil {
		v1.Use(rateLimit)
	}

	SetupCarRouter(v1, authMiddleware)
	SetupWishlistRouter(v1, authMiddleware)
	SetupUserRouter(v1, authMiddleware, adminMiddleware)
	SetupAdminRouter(v1, authMiddleware, adminMiddleware)
}
