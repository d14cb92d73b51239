package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
)

type AdminCarUseCase struct {
	carRepo repository.CarRepository
	cache   repository.CarCache
}

func NewAdminCarUseCase(carRepo repository.CarRepository, cache repository.CarCache) *AdminCarUseCase {
	return &AdminCarUseCase{
		carRepo: carRepo,
		cache:   cache,
	}
}

type CreateCarInput struct {
	Make         string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	Color        string
	FuelType     string
	Transmission string
	BodyType     string
	Seats        *int
	Description  string
	Status       entity.CarStatus
	Featured     bool
	Images       []string
}

func (uc *AdminCarUseCase) CreateCar(ctx context.Context, input CreateCarInput) (*CarView, error) {
	status := input.Status
	if status == "" {
		status = entity.CarStatusAvailable
	}
	if !status.Valid() {
		return nil, errors.ValidationFailed("Invalid car status", nil)
	}
	if input.Price < 0 {
		return nil, errors.ValidationFailed("Price cannot be negative", nil)
	}

	car := &entity.Car{
		Make:         strings.TrimSpace(input.Make),
		Model:        strings.TrimSpace(input.Model),
		Year:         input.Year,
		Price:        decimal.NewFromFloat(input.Price).Round(2),
		Mileage:      input.Mileage,
		Color:        strings.TrimSpace(input.Color),
		FuelType:     strings.TrimSpace(input.FuelType),
		Transmission: strings.TrimSpace(input.Transmission),
		BodyType:     strings.TrimSpace(input.BodyType),
		Seats:        input.Seats,
		Description:  strings.TrimSpace(input.Description),
		Status:       status,
		Featured:     input.Featured,
		Images:       input.Images,
	}

	if err := uc.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}
	uc.invalidateFacets(ctx)

	view := SerializeCar(car, false)
	return &view, nil
}

// ListCars returns cars of every status, newest first.
func (uc *AdminCarUseCase) ListCars(ctx context.Context, search string) ([]CarView, error) {
	cars, err := uc.carRepo.ListAll(ctx, search)
	if err != nil {
		return nil, err
	}
	return serializeCars(cars, nil), nil
}

// UpdateCarStatus changes status, the featured flag, or both. An empty
// status keeps the current one.
func (uc *AdminCarUseCase) UpdateCarStatus(ctx context.Context, id string, status entity.CarStatus, featured *bool) (*CarView, error) {
	if status == "" && featured == nil {
		return nil, errors.ValidationFailed("Nothing to update", nil)
	}

	if status == "" {
		current, err := uc.carRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		status = current.Status
	}
	if !status.Valid() {
		return nil, errors.ValidationFailed("Invalid car status", nil)
	}

	car, err := uc.carRepo.UpdateStatus(ctx, id, status, featured)
	if err != nil {
		return nil, err
	}
	uc.invalidateFacets(ctx)

	view := SerializeCar(car, false)
	return &view, nil
}

func (uc *AdminCarUseCase) DeleteCar(ctx context.Context, id string) error {
	if err := uc.carRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateFacets(ctx)
	return nil
}

func (uc *AdminCarUseCase) invalidateFacets(ctx context.Context) {
	if err := uc.cache.InvalidateFacets(ctx); err != nil {
		logger.Warn("facet cache invalidation failed: %v", err)
	}
}
