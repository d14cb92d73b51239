package handler

import (
	"github.com/labstack/echo/v4"

	"vehiql/internal/usecase"
)

var (
	carHandler         *CarHandler
	wishlistHandler    *WishlistHandler
	imageSearchHandler *ImageSearchHandler
	userHandler        *UserHandler
	settingsHandler    *SettingsHandler
	adminHandler       *AdminHandler
)

func Setup(
	carUseCase *usecase.CarUseCase,
	wishlistUseCase *usecase.WishlistUseCase,
	imageSearchUseCase *usecase.ImageSearchUseCase,
	userUseCase *usecase.UserUseCase,
	settingsUseCase *usecase.SettingsUseCase,
	adminCarUseCase *usecase.AdminCarUseCase,
) {
	carHandler = NewCarHandler(carUseCase)
	wishlistHandler = NewWishlistHandler(wishlistUseCase)
	imageSearchHandler = NewImageSearchHandler(imageSearchUseCase)
	userHandler = NewUserHandler(userUseCase)
	settingsHandler = NewSettingsHandler(settingsUseCase)
	adminHandler = NewAdminHandler(adminCarUseCase)
}

func GetCarHandler() *CarHandler {
	return carHandler
}

func GetWishlistHandler() *WishlistHandler {
	return wishlistHandler
}

func GetImageSearchHandler() *ImageSearchHandler {
	return imageSearchHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSettingsHandler() *SettingsHandler {
	return settingsHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

// currentUID is empty for anonymous requests.
func currentUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
