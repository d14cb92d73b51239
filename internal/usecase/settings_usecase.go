package usecase

import (
	"context"
	"fmt"
	"time"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
	"vehiql/pkg/utils"
)

type SettingsUseCase struct {
	dealershipRepo repository.DealershipRepository
}

func NewSettingsUseCase(dealershipRepo repository.DealershipRepository) *SettingsUseCase {
	return &SettingsUseCase{
		dealershipRepo: dealershipRepo,
	}
}

func defaultDealership() *entity.Dealership {
	return &entity.Dealership{
		Name:         "Vehiql Motors",
		Address:      "69 Car Street, Autoville, CA 69420",
		Phone:        "+1 (555) 123-4567",
		Email:        "contact@vehiql.com",
		WorkingHours: entity.DefaultWorkingHours(),
	}
}

// GetDealershipInfo returns the dealership, creating the default one on first use.
func (uc *SettingsUseCase) GetDealershipInfo(ctx context.Context) (*entity.Dealership, error) {
	dealership, err := uc.dealershipRepo.Get(ctx)
	if err == nil {
		return dealership, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	dealership = defaultDealership()
	if err := uc.dealershipRepo.Save(ctx, dealership); err != nil {
		return nil, err
	}
	return dealership, nil
}

// SaveWorkingHours replaces the weekly schedule. Every day must appear once.
func (uc *SettingsUseCase) SaveWorkingHours(ctx context.Context, hours []entity.WorkingHour) (*entity.Dealership, error) {
	ordered, err := NormalizeWorkingHours(hours)
	if err != nil {
		return nil, err
	}

	dealership, err := uc.GetDealershipInfo(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.dealershipRepo.UpdateWorkingHours(ctx, ordered); err != nil {
		return nil, err
	}

	dealership.WorkingHours = ordered
	dealership.UpdatedAt = time.Now()
	return dealership, nil
}

// NormalizeWorkingHours validates a weekly schedule and returns it in week order.
func NormalizeWorkingHours(hours []entity.WorkingHour) ([]entity.WorkingHour, error) {
	if len(hours) != len(entity.Week) {
		return nil, errors.ValidationFailed(fmt.Sprintf("Working hours must cover all %d days", len(entity.Week)), nil)
	}

	byDay := make(map[entity.DayOfWeek]entity.WorkingHour, len(hours))
	for _, h := range hours {
		if _, dup := byDay[h.DayOfWeek]; dup {
			return nil, errors.ValidationFailed(fmt.Sprintf("Duplicate working hours for %s", h.DayOfWeek), nil)
		}
		byDay[h.DayOfWeek] = h
	}

	ordered := make([]entity.WorkingHour, 0, len(entity.Week))
	for _, day := range entity.Week {
		h, ok := byDay[day]
		if !ok {
			return nil, errors.ValidationFailed(fmt.Sprintf("Missing working hours for %s", day), nil)
		}
		if !utils.IsClock(h.OpenTime) || !utils.IsClock(h.CloseTime) {
			return nil, errors.ValidationFailed(fmt.Sprintf("Invalid time for %s, expected HH:MM", day), nil)
		}
		// Zero padded HH:MM compares correctly as text.
		if h.IsOpen && h.OpenTime >= h.CloseTime {
			return nil, errors.ValidationFailed(fmt.Sprintf("Opening time must be before closing time for %s", day), nil)
		}
		ordered = append(ordered, h)
	}

	return ordered, nil
}
