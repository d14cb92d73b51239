package repository

import (
	"context"

	"vehiql/internal/domain/entity"
)

type DealershipRepository interface {
	// Get returns a NOT_FOUND error until a dealership has been saved.
	Get(ctx context.Context) (*entity.Dealership, error)
	Save(ctx context.Context, dealership *entity.Dealership) error
	UpdateWorkingHours(ctx context.Context, hours []entity.WorkingHour) error
}
