package usecase

import (
	"context"

	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
)

const (
	MessageCarSaved   = "Car added to favorites"
	MessageCarUnsaved = "Car removed from favorites"
)

type WishlistUseCase struct {
	savedRepo repository.SavedCarRepository
	carRepo   repository.CarRepository
	userRepo  repository.UserRepository
	cache     repository.CarCache
	recorder  ToggleRecorder
}

func NewWishlistUseCase(
	savedRepo repository.SavedCarRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	cache repository.CarCache,
) *WishlistUseCase {
	return &WishlistUseCase{
		savedRepo: savedRepo,
		carRepo:   carRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

// WithRecorder attaches an observer notified after every successful toggle.
func (u *WishlistUseCase) WithRecorder(recorder ToggleRecorder) *WishlistUseCase {
	u.recorder = recorder
	return u
}

type ToggleResult struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

// ToggleSavedCar flips whether carID is in the user's saved set.
func (u *WishlistUseCase) ToggleSavedCar(ctx context.Context, uid, carID string) (*ToggleResult, error) {
	if err := u.requireUser(ctx, uid); err != nil {
		return nil, err
	}

	if _, err := u.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}

	saved, err := u.savedRepo.Toggle(ctx, uid, carID)
	if err != nil {
		return nil, err
	}

	if err := u.cache.InvalidateSavedCars(ctx, uid); err != nil {
		logger.Warn("saved cars cache invalidation failed for %s: %v", uid, err)
	}
	if u.recorder != nil {
		u.recorder.RecordToggle(saved)
	}

	logger.Debug("saved car toggled %s", logger.Fields(map[string]interface{}{
		"user":  uid,
		"car":   carID,
		"saved": saved,
	}))

	result := &ToggleResult{Saved: saved, Message: MessageCarUnsaved}
	if saved {
		result.Message = MessageCarSaved
	}
	return result, nil
}

// GetSavedCars lists the user's saved cars, most recently saved first.
func (u *WishlistUseCase) GetSavedCars(ctx context.Context, uid string) ([]CarView, error) {
	if err := u.requireUser(ctx, uid); err != nil {
		return nil, err
	}

	ids, err := loadSavedCarIDs(ctx, u.cache, u.savedRepo, uid)
	if err != nil {
		return nil, err
	}

	cars, err := u.carRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]CarView, 0, len(cars))
	for _, car := range cars {
		views = append(views, SerializeCar(car, true))
	}
	return views, nil
}

func (u *WishlistUseCase) requireUser(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.Unauthorized("Unauthorized", nil)
	}

	if _, err := u.userRepo.GetByID(ctx, uid); err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return errors.Unauthorized("User not found", err)
		}
		return err
	}
	return nil
}
