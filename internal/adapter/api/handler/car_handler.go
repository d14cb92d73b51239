package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"vehiql/internal/domain/entity"
	"vehiql/internal/usecase"
	"vehiql/pkg/errors"
	"vehiql/pkg/response"
)

type CarHandler struct {
	carUseCase *usecase.CarUseCase
}

func NewCarHandler(carUseCase *usecase.CarUseCase) *CarHandler {
	return &CarHandler{
		carUseCase: carUseCase,
	}
}

func (h *CarHandler) GetFilters(c echo.Context) error {
	facets, err := h.carUseCase.GetFilters(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, facets)
}

func (h *CarHandler) ListCars(c echo.Context) error {
	sel := entity.FilterSelectionFromQuery(c.QueryParams())

	result, err := h.carUseCase.ListCars(c.Request().Context(), currentUID(c), sel)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, result.Items, result.Pagination)
}

func (h *CarHandler) GetFeaturedCars(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	cars, err := h.carUseCase.GetFeaturedCars(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cars)
}

func (h *CarHandler) GetCarByID(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Car ID is required", nil))
	}

	car, err := h.carUseCase.GetCarByID(c.Request().Context(), currentUID(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, car)
}
