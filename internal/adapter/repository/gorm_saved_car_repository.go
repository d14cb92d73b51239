package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
)

type gormSavedCarRepository struct {
	db *gorm.DB
}

func NewGormSavedCarRepository(db *gorm.DB) repository.SavedCarRepository {
	return &gormSavedCarRepository{db: db}
}

// Toggle deletes the pair if present, otherwise inserts it. Concurrent
// inserts for the same pair collapse on the unique index instead of failing.
func (r *gormSavedCarRepository) Toggle(ctx context.Context, userID, carID string) (bool, error) {
	var saved bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND car_id = ?", userID, carID).Delete(&entity.SavedCar{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}

		row := entity.SavedCar{
			ID:     uuid.NewString(),
			UserID: userID,
			CarID:  carID,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "car_id"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return err
		}

		saved = true
		return nil
	})
	if err != nil {
		return false, errors.Internal("Failed to toggle saved car", err)
	}

	return saved, nil
}

func (r *gormSavedCarRepository) ListCarIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&entity.SavedCar{}).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Pluck("car_id", &ids).Error
	if err != nil {
		return nil, errors.Internal("Failed to list saved cars", err)
	}
	return ids, nil
}
