package repository

import (
	"context"

	"vehiql/internal/domain/entity"
)

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	GetByID(ctx context.Context, id string) (*entity.Car, error)
	// GetByIDs returns the existing cars among ids, in the order of ids.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Car, error)
	// List returns one page of cars matching the predicate and the total match count.
	List(ctx context.Context, predicate entity.CarPredicate, skip, take int) ([]*entity.Car, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]*entity.Car, error)
	// ListAll ignores status; search matches make, model or description.
	ListAll(ctx context.Context, search string) ([]*entity.Car, error)
	UpdateStatus(ctx context.Context, id string, status entity.CarStatus, featured *bool) (*entity.Car, error)
	Delete(ctx context.Context, id string) error
	// Facets aggregates filter values over AVAILABLE cars only.
	Facets(ctx context.Context) (*entity.FacetSet, error)
}
