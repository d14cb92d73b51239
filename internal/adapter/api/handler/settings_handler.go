package handler

import (
	"github.com/labstack/echo/v4"

	"vehiql/internal/domain/entity"
	"vehiql/internal/usecase"
	"vehiql/pkg/response"
)

type SettingsHandler struct {
	settingsUseCase *usecase.SettingsUseCase
}

func NewSettingsHandler(settingsUseCase *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
	}
}

type workingHourRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	OpenTime  string `json:"open_time" validate:"required,clock"`
	CloseTime string `json:"close_time" validate:"required,clock"`
	IsOpen    bool   `json:"is_open"`
}

type saveWorkingHoursRequest struct {
	WorkingHours []workingHourRequest `json:"working_hours" validate:"required,len=7,dive"`
}

func (h *SettingsHandler) GetDealershipInfo(c echo.Context) error {
	dealership, err := h.settingsUseCase.GetDealershipInfo(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, dealership)
}

func (h *SettingsHandler) SaveWorkingHours(c echo.Context) error {
	var req saveWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	hours := make([]entity.WorkingHour, 0, len(req.WorkingHours))
	for _, wh := range req.WorkingHours {
		hours = append(hours, entity.WorkingHour{
			DayOfWeek: entity.DayOfWeek(wh.DayOfWeek),
			OpenTime:  wh.OpenTime,
			CloseTime: wh.CloseTime,
			IsOpen:    wh.IsOpen,
		})
	}

	dealership, err := h.settingsUseCase.SaveWorkingHours(c.Request().Context(), hours)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, dealership)
}
