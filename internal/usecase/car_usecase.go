package usecase

import (
	"context"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
	"vehiql/pkg/utils"
)

const DefaultFeaturedLimit = 3

type CarUseCase struct {
	carRepo   repository.CarRepository
	savedRepo repository.SavedCarRepository
	cache     repository.CarCache
}

func NewCarUseCase(
	carRepo repository.CarRepository,
	savedRepo repository.SavedCarRepository,
	cache repository.CarCache,
) *CarUseCase {
	return &CarUseCase{
		carRepo:   carRepo,
		savedRepo: savedRepo,
		cache:     cache,
	}
}

type CarListResult struct {
	Items      []CarView
	Pagination utils.Pagination
}

// GetFilters returns the facets of available inventory, served from cache
// when possible. Cache failures degrade to a direct query.
func (uc *CarUseCase) GetFilters(ctx context.Context) (*entity.FacetSet, error) {
	facets, ok, err := uc.cache.GetFacets(ctx)
	if err != nil {
		logger.Warn("facet cache read failed: %v", err)
	}
	if ok {
		return facets, nil
	}

	facets, err = uc.carRepo.Facets(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetFacets(ctx, facets); err != nil {
		logger.Warn("facet cache write failed: %v", err)
	}

	return facets, nil
}

// ListCars runs a filtered, sorted and paginated listing. uid may be empty
// for anonymous shoppers, in which case nothing is marked wishlisted.
func (uc *CarUseCase) ListCars(ctx context.Context, uid string, sel entity.FilterSelection) (*CarListResult, error) {
	predicate := entity.BuildCarPredicate(sel)
	page, pageSize := utils.ClampPage(sel.Page, sel.PageSize)

	cars, total, err := uc.carRepo.List(ctx, predicate, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	saved, err := uc.savedSet(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &CarListResult{
		Items:      serializeCars(cars, saved),
		Pagination: utils.Paginate(total, page, pageSize),
	}, nil
}

func (uc *CarUseCase) GetFeaturedCars(ctx context.Context, limit int) ([]CarView, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}

	cars, err := uc.carRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}

	return serializeCars(cars, nil), nil
}

// GetCarByID returns an available car. Cars that are not AVAILABLE are
// reported as not found to shoppers.
func (uc *CarUseCase) GetCarByID(ctx context.Context, uid, id string) (*CarView, error) {
	car, err := uc.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.Status != entity.CarStatusAvailable {
		return nil, errors.NotFound("Car", nil)
	}

	saved, err := uc.savedSet(ctx, uid)
	if err != nil {
		return nil, err
	}

	_, wishlisted := saved[car.ID]
	view := SerializeCar(car, wishlisted)
	return &view, nil
}

func (uc *CarUseCase) savedSet(ctx context.Context, uid string) (map[string]struct{}, error) {
	if uid == "" {
		return map[string]struct{}{}, nil
	}

	ids, err := loadSavedCarIDs(ctx, uc.cache, uc.savedRepo, uid)
	if err != nil {
		return nil, err
	}
	return idSet(ids), nil
}

// loadSavedCarIDs reads a user's saved ids through the cache. A miss is
// filled under the generation observed before reading the repository, so a
// toggle committed meanwhile makes that fill unreachable instead of stale.
func loadSavedCarIDs(ctx context.Context, cache repository.CarCache, repo repository.SavedCarRepository, uid string) ([]string, error) {
	ids, generation, ok, cacheErr := cache.GetSavedCarIDs(ctx, uid)
	if cacheErr != nil {
		logger.Warn("saved cars cache read failed: %v", cacheErr)
	}
	if ok {
		return ids, nil
	}

	ids, err := repo.ListCarIDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	if cacheErr == nil {
		if err := cache.SetSavedCarIDs(ctx, uid, generation, ids); err != nil {
			logger.Warn("saved cars cache write failed: %v", err)
		}
	}
	return ids, nil
}
