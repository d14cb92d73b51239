package handler

import (
	"github.com/labstack/echo/v4"

	"vehiql/internal/domain/entity"
	"vehiql/internal/usecase"
	"vehiql/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), currentUID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUseCase.GetUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateUserRole(
		c.Request().Context(),
		currentUID(c),
		c.Param("id"),
		entity.Role(req.Role),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
