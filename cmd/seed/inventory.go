package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"vehiql/internal/domain/entity"
)

// InventoryItem is one car in a YAML fixture.
type InventoryItem struct {
	ID           string    `yaml:"id"`
	Make         string    `yaml:"make"`
	Model        string    `yaml:"model"`
	Year         int       `yaml:"year"`
	Price        string    `yaml:"price"`
	Mileage      int       `yaml:"mileage"`
	Color        string    `yaml:"color"`
	FuelType     string    `yaml:"fuelType"`
	Transmission string    `yaml:"transmission"`
	BodyType     string    `yaml:"bodyType"`
	Seats        *int      `yaml:"seats"`
	Description  string    `yaml:"description"`
	Status       string    `yaml:"status"`
	Featured     bool      `yaml:"featured"`
	Images       []string  `yaml:"images"`
	CreatedAt    time.Time `yaml:"createdAt"`
}

type inventoryFile struct {
	Cars []InventoryItem `yaml:"cars"`
}

// ParseInventory decodes a fixture of the form `cars: [...]` into cars ready
// to insert. Missing ids are generated and status defaults to AVAILABLE.
func ParseInventory(raw []byte) ([]*entity.Car, error) {
	var file inventoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}

	cars := make([]*entity.Car, 0, len(file.Cars))
	for i, item := range file.Cars {
		car, err := item.toCar()
		if err != nil {
			return nil, fmt.Errorf("car %d: %w", i, err)
		}
		cars = append(cars, car)
	}
	return cars, nil
}

func (item InventoryItem) toCar() (*entity.Car, error) {
	if strings.TrimSpace(item.Make) == "" || strings.TrimSpace(item.Model) == "" {
		return nil, fmt.Errorf("make and model are required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", item.Price, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("negative price %s", price)
	}

	status := entity.CarStatus(strings.ToUpper(strings.TrimSpace(item.Status)))
	if status == "" {
		status = entity.CarStatusAvailable
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", item.Status)
	}

	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &entity.Car{
		ID:           id,
		Make:         item.Make,
		Model:        item.Model,
		Year:         item.Year,
		Price:        price,
		Mileage:      item.Mileage,
		Color:        item.Color,
		FuelType:     item.FuelType,
		Transmission: item.Transmission,
		BodyType:     item.BodyType,
		Seats:        item.Seats,
		Description:  item.Description,
		Status:       status,
		Featured:     item.Featured,
		Images:       pq.StringArray(item.Images),
		CreatedAt:    item.CreatedAt,
	}, nil
}
