package usecase

import (
	"time"

	"vehiql/internal/domain/entity"
)

// CarView is the public representation of a car.
type CarView struct {
	ID           string   `json:"id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        float64  `json:"price"`
	Mileage      int      `json:"mileage"`
	Color        string   `json:"color"`
	FuelType     string   `json:"fuelType"`
	Transmission string   `json:"transmission"`
	BodyType     string   `json:"bodyType"`
	Seats        *int     `json:"seats,omitempty"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	Images       []string `json:"images"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
	Wishlisted   bool     `json:"wishlisted"`
}

// SerializeCar shapes a car for clients. Price leaves as a plain number.
func SerializeCar(car *entity.Car, wishlisted bool) CarView {
	images := make([]string, len(car.Images))
	copy(images, car.Images)

	return CarView{
		ID:           car.ID,
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		Price:        car.Price.InexactFloat64(),
		Mileage:      car.Mileage,
		Color:        car.Color,
		FuelType:     car.FuelType,
		Transmission: car.Transmission,
		BodyType:     car.BodyType,
		Seats:        car.Seats,
		Description:  car.Description,
		Status:       string(car.Status),
		Featured:     car.Featured,
		Images:       images,
		CreatedAt:    car.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    car.UpdatedAt.UTC().Format(time.RFC3339),
		Wishlisted:   wishlisted,
	}
}

func serializeCars(cars []*entity.Car, saved map[string]struct{}) []CarView {
	views := make([]CarView, 0, len(cars))
	for _, car := range cars {
		_, ok := saved[car.ID]
		views = append(views, SerializeCar(car, ok))
	}
	return views
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
