package repository

import (
	"context"
)

type SavedCarRepository interface {
	// Toggle flips membership of (userID, carID) atomically and reports
	// whether the car is saved afterwards.
	Toggle(ctx context.Context, userID, carID string) (bool, error)

	// ListCarIDs returns the user's saved car ids, most recently saved first.
	ListCarIDs(ctx context.Context, userID string) ([]string, error)
}
