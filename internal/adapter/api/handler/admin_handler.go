package handler

import (
	"github.com/labstack/echo/v4"

	"vehiql/internal/domain/entity"
	"vehiql/internal/usecase"
	"vehiql/pkg/response"
)

// AdminHandler serves inventory management for admins.
type AdminHandler struct {
	adminCarUseCase *usecase.AdminCarUseCase
}

func NewAdminHandler(adminCarUseCase *usecase.AdminCarUseCase) *AdminHandler {
	return &AdminHandler{
		adminCarUseCase: adminCarUseCase,
	}
}

type createCarRequest struct {
	Make         string   `json:"make" validate:"required,max=64"`
	Model        string   `json:"model" validate:"required,max=64"`
	Year         int      `json:"year" validate:"required,min=1900,max=2100"`
	Price        float64  `json:"price" validate:"min=0"`
	Mileage      int      `json:"mileage" validate:"min=0"`
	Color        string   `json:"color" validate:"required,max=32"`
	FuelType     string   `json:"fuel_type" validate:"required,max=32"`
	Transmission string   `json:"transmission" validate:"required,max=32"`
	BodyType     string   `json:"body_type" validate:"required,max=32"`
	Seats        *int     `json:"seats" validate:"omitempty,min=1,max=20"`
	Description  string   `json:"description" validate:"max=5000"`
	Status       string   `json:"status" validate:"omitempty,oneof=AVAILABLE UNAVAILABLE SOLD"`
	Featured     bool     `json:"featured"`
	Images       []string `json:"images" validate:"dive,url"`
}

type updateCarStatusRequest struct {
	Status   string `json:"status" validate:"omitempty,oneof=AVAILABLE UNAVAILABLE SOLD"`
	Featured *bool  `json:"featured"`
}

func (h *AdminHandler) ListCars(c echo.Context) error {
	cars, err := h.adminCarUseCase.ListCars(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cars)
}

func (h *AdminHandler) CreateCar(c echo.Context) error {
	var req createCarRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	car, err := h.adminCarUseCase.CreateCar(c.Request().Context(), usecase.CreateCarInput{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Seats:        req.Seats,
		Description:  req.Description,
		Status:       entity.CarStatus(req.Status),
		Featured:     req.Featured,
		Images:       req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, car)
}

func (h *AdminHandler) UpdateCarStatus(c echo.Context) error {
	var req updateCarStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	car, err := h.adminCarUseCase.UpdateCarStatus(
		c.Request().Context(),
		c.Param("id"),
		entity.CarStatus(req.Status),
		req.Featured,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, car)
}

func (h *AdminHandler) DeleteCar(c echo.Context) error {
	if err := h.adminCarUseCase.DeleteCar(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Car deleted successfully",
	})
}
