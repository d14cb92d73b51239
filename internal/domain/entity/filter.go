package entity

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

const (
	// NoMaxPrice is the "no upper bound" sentinel for max price filters.
	NoMaxPrice = 9007199254740991
	// DefaultFacetMaxPrice is reported as the price ceiling when no car is available.
	DefaultFacetMaxPrice = 100000
)

// FilterSelection is the shopper's listing request, rebuilt from query
// parameters on every request. Prices stay raw so the predicate builder can
// apply its lenient coercion rules.
type FilterSelection struct {
	Search       string
	Make         string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     string
	MaxPrice     string
	SortBy       string
	Page         int
	PageSize     int
}

// FilterSelectionFromQuery reads the listing query parameters. Page and
// limit that are not integers are left at zero and defaulted by the paginator.
func FilterSelectionFromQuery(q url.Values) FilterSelection {
	page, _ := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	limit, _ := strconv.Atoi(strings.TrimSpace(q.Get("limit")))

	return FilterSelection{
		Search:       strings.TrimSpace(q.Get("search")),
		Make:         strings.TrimSpace(q.Get("make")),
		BodyType:     strings.TrimSpace(q.Get("bodyType")),
		FuelType:     strings.TrimSpace(q.Get("fuelType")),
		Transmission: strings.TrimSpace(q.Get("transmission")),
		MinPrice:     strings.TrimSpace(q.Get("minPrice")),
		MaxPrice:     strings.TrimSpace(q.Get("maxPrice")),
		SortBy:       strings.TrimSpace(q.Get("sortBy")),
		Page:         page,
		PageSize:     limit,
	}
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSet summarizes the filter values present among available cars.
type FacetSet struct {
	Makes         []string   `json:"makes"`
	BodyTypes     []string   `json:"bodyTypes"`
	FuelTypes     []string   `json:"fuelTypes"`
	Transmissions []string   `json:"transmissions"`
	PriceRange    PriceRange `json:"priceRange"`
}

// CarPredicate is the structured filter and order of a listing query.
type CarPredicate struct {
	Status       CarStatus
	Search       string
	Make         string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     float64
	MaxPrice     *float64
	Sort         SortKey
}

// BuildCarPredicate translates a selection into a predicate. Malformed
// numbers are coerced rather than rejected: an unusable minimum becomes 0 and
// an unusable maximum, or one at or above NoMaxPrice, means no upper bound.
func BuildCarPredicate(sel FilterSelection) CarPredicate {
	p := CarPredicate{
		Status:       CarStatusAvailable,
		Search:       strings.TrimSpace(sel.Search),
		Make:         strings.TrimSpace(sel.Make),
		BodyType:     strings.TrimSpace(sel.BodyType),
		FuelType:     strings.TrimSpace(sel.FuelType),
		Transmission: strings.TrimSpace(sel.Transmission),
		Sort:         ParseSortKey(sel.SortBy),
	}

	if lo, ok := parsePrice(sel.MinPrice); ok {
		p.MinPrice = lo
	}
	if hi, ok := parsePrice(sel.MaxPrice); ok && hi < NoMaxPrice {
		p.MaxPrice = &hi
	}

	return p
}

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

func parsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Matches reports whether car satisfies every condition of the predicate.
func (p CarPredicate) Matches(car *Car) bool {
	if car == nil || car.Status != p.Status {
		return false
	}

	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(car.Make), needle) &&
			!strings.Contains(strings.ToLower(car.Model), needle) &&
			!strings.Contains(strings.ToLower(car.Description), needle) {
			return false
		}
	}

	if !equalFoldIfSet(p.Make, car.Make) ||
		!equalFoldIfSet(p.BodyType, car.BodyType) ||
		!equalFoldIfSet(p.FuelType, car.FuelType) ||
		!equalFoldIfSet(p.Transmission, car.Transmission) {
		return false
	}

	if car.Price.LessThan(decimal.NewFromFloat(p.MinPrice)) {
		return false
	}
	if p.MaxPrice != nil && car.Price.GreaterThan(decimal.NewFromFloat(*p.MaxPrice)) {
		return false
	}

	return true
}

// Less orders cars the way the predicate's sort key asks for.
func (p CarPredicate) Less(a, b *Car) bool {
	switch p.Sort {
	case SortPriceAsc:
		return a.Price.LessThan(b.Price)
	case SortPriceDesc:
		return a.Price.GreaterThan(b.Price)
	default:
		return a.CreatedAt.After(b.CreatedAt)
	}
}

func equalFoldIfSet(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}
