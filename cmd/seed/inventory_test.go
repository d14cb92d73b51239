package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehiql/internal/domain/entity"
)

func TestParseInventory(t *testing.T) {
	raw := []byte(`
cars:
  - id: car-1
    make: Toyota
    model: Camry
    year: 2022
    price: "24999.99"
    fuelType: Hybrid
    transmission: Automatic
    bodyType: Sedan
    featured: true
    images: [https://img.example.com/camry.jpg]
  - make: Ford
    model: Ranger
    price: "31000"
    status: sold
`)

	cars, err := ParseInventory(raw)
	require.NoError(t, err)
	require.Len(t, cars, 2)

	assert.Equal(t, "car-1", cars[0].ID)
	assert.Equal(t, "24999.99", cars[0].Price.StringFixed(2))
	assert.Equal(t, entity.CarStatusAvailable, cars[0].Status)
	assert.True(t, cars[0].Featured)
	assert.Equal(t, []string{"https://img.example.com/camry.jpg"}, []string(cars[0].Images))

	assert.NotEmpty(t, cars[1].ID)
	assert.Equal(t, entity.CarStatusSold, cars[1].Status)
}

func TestParseInventory_Rejects(t *testing.T) {
	tests := map[string]string{
		"missing model":  "cars:\n  - make: Toyota\n    price: \"1\"\n",
		"bad price":      "cars:\n  - make: Toyota\n    model: Camry\n    price: cheap\n",
		"negative price": "cars:\n  - make: Toyota\n    model: Camry\n    price: \"-5\"\n",
		"bad status":     "cars:\n  - make: Toyota\n    model: Camry\n    price: \"5\"\n    status: LEASED\n",
		"not yaml":       "cars: [",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInventory([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestParseInventory_ExampleFixture(t *testing.T) {
	raw, err := os.ReadFile("../../inventory.example.yaml")
	require.NoError(t, err)

	cars, err := ParseInventory(raw)
	require.NoError(t, err)
	assert.Len(t, cars, 3)
}
