package entity

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusUnavailable CarStatus = "UNAVAILABLE"
	CarStatusSold        CarStatus = "SOLD"
)

func (s CarStatus) Valid() bool {
	switch s {
	case CarStatusAvailable, CarStatusUnavailable, CarStatusSold:
		return true
	}
	return false
}

// Car is an inventory item. Only AVAILABLE cars are visible to shoppers.
type Car struct {
	ID           string          `json:"id" gorm:"primaryKey;size:36"`
	Make         string          `json:"make" gorm:"size:64;not null;index"`
	Model        string          `json:"model" gorm:"size:64;not null"`
	Year         int             `json:"year" gorm:"not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;index"`
	Mileage      int             `json:"mileage" gorm:"not null;default:0"`
	Color        string          `json:"color" gorm:"size:32"`
	FuelType     string          `json:"fuel_type" gorm:"size:32;not null"`
	Transmission string          `json:"transmission" gorm:"size:32;not null"`
	BodyType     string          `json:"body_type" gorm:"size:32;not null"`
	Seats        *int            `json:"seats,omitempty"`
	Description  string          `json:"description" gorm:"type:text"`
	Status       CarStatus       `json:"status" gorm:"size:16;not null;default:'AVAILABLE';index"`
	Featured     bool            `json:"featured" gorm:"not null;default:false"`
	Images       pq.StringArray  `json:"images" gorm:"type:text[]"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Car) TableName() string {
	return "cars"
}

// SavedCar links an identity to a car it has wishlisted. Existence is the only state.
type SavedCar struct {
	ID      string    `json:"id" gorm:"primaryKey;size:36"`
	UserID  string    `json:"user_id" gorm:"size:128;not null;uniqueIndex:saved_cars_user_car_key;index"`
	CarID   string    `json:"car_id" gorm:"size:36;not null;uniqueIndex:saved_cars_user_car_key"`
	SavedAt time.Time `json:"saved_at" gorm:"autoCreateTime"`

	Car *Car `json:"car,omitempty" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
}

func (SavedCar) TableName() string {
	return "saved_cars"
}

// CarGuess is the image classifier's best-effort identification.
type CarGuess struct {
	Make       string  `json:"make"`
	BodyType   string  `json:"bodyType"`
	Color      string  `json:"color"`
	Confidence float64 `json:"confidence"`
}
