package entity

import (
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Week lists the days in display order.
var Week = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type WorkingHour struct {
	DayOfWeek DayOfWeek `json:"day_of_week" firestore:"dayOfWeek"`
	OpenTime  string    `json:"open_time" firestore:"openTime"`
	CloseTime string    `json:"close_time" firestore:"closeTime"`
	IsOpen    bool      `json:"is_open" firestore:"isOpen"`
}

type Dealership struct {
	ID           string        `json:"id" firestore:"id"`
	Name         string        `json:"name" firestore:"name"`
	Address      string        `json:"address" firestore:"address"`
	Phone        string        `json:"phone" firestore:"phone"`
	Email        string        `json:"email" firestore:"email"`
	WorkingHours []WorkingHour `json:"working_hours" firestore:"workingHours"`
	CreatedAt    time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time     `json:"updated_at" firestore:"updatedAt"`
}

// DefaultWorkingHours opens Monday to Saturday 09:00-18:00 and closes Sunday.
func DefaultWorkingHours() []WorkingHour {
	hours := make([]WorkingHour, 0, len(Week))
	for _, day := range Week {
		hours = append(hours, WorkingHour{
			DayOfWeek: day,
			OpenTime:  "09:00",
			CloseTime: "18:00",
			IsOpen:    day != Sunday,
		})
	}
	return hours
}
