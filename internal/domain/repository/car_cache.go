package repository

import (
	"context"

	"vehiql/internal/domain/entity"
)

// CarCache holds derived read models. A miss is reported with ok=false and a
// nil error; callers fall back to the repositories on any cache error.
type CarCache interface {
	GetFacets(ctx context.Context) (facets *entity.FacetSet, ok bool, err error)
	SetFacets(ctx context.Context, facets *entity.FacetSet) error
	InvalidateFacets(ctx context.Context) error

	// GetSavedCarIDs also returns the user's current generation, which must be
	// handed back to SetSavedCarIDs when filling a miss.
	GetSavedCarIDs(ctx context.Context, userID string) (ids []string, generation int64, ok bool, err error)
	// SetSavedCarIDs stores ids under generation. Entries written for a
	// generation that was invalidated in the meantime are never read.
	SetSavedCarIDs(ctx context.Context, userID string, generation int64, ids []string) error
	// InvalidateSavedCars starts a new generation for the user.
	InvalidateSavedCars(ctx context.Context, userID string) error
}
