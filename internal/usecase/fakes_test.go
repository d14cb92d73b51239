package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vehiql/internal/domain/entity"
	"vehiql/pkg/errors"
)

// memCarRepo evaluates predicates with CarPredicate.Matches and Less, the
// same semantics the SQL translation implements.
type memCarRepo struct {
	mu          sync.Mutex
	cars        map[string]*entity.Car
	facetCalls  int
	facetsError error
}

func newMemCarRepo(cars ...*entity.Car) *memCarRepo {
	r := &memCarRepo{cars: map[string]*entity.Car{}}
	for _, car := range cars {
		r.cars[car.ID] = car
	}
	return r
}

func (r *memCarRepo) Create(_ context.Context, car *entity.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	if car.CreatedAt.IsZero() {
		car.CreatedAt = time.Now()
	}
	r.cars[car.ID] = car
	return nil
}

func (r *memCarRepo) GetByID(_ context.Context, id string) (*entity.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	car, ok := r.cars[id]
	if !ok {
		return nil, errors.NotFound("Car", nil)
	}
	return car, nil
}

func (r *memCarRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cars := []*entity.Car{}
	for _, id := range ids {
		if car, ok := r.cars[id]; ok {
			cars = append(cars, car)
		}
	}
	return cars, nil
}

func (r *memCarRepo) sorted(less func(a, b *entity.Car) bool, keep func(*entity.Car) bool) []*entity.Car {
	matched := []*entity.Car{}
	for _, car := range r.cars {
		if keep(car) {
			matched = append(matched, car)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if less(matched[i], matched[j]) {
			return true
		}
		if less(matched[j], matched[i]) {
			return false
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}

func (r *memCarRepo) List(_ context.Context, p entity.CarPredicate, skip, take int) ([]*entity.Car, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := r.sorted(p.Less, p.Matches)
	total := int64(len(matched))
	if skip >= len(matched) {
		return []*entity.Car{}, total, nil
	}
	end := skip + take
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func newestFirst(a, b *entity.Car) bool { return a.CreatedAt.After(b.CreatedAt) }

func (r *memCarRepo) ListFeatured(_ context.Context, limit int) ([]*entity.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cars := r.sorted(newestFirst, func(c *entity.Car) bool {
		return c.Featured && c.Status == entity.CarStatusAvailable
	})
	if len(cars) > limit {
		cars = cars[:limit]
	}
	return cars, nil
}

func (r *memCarRepo) ListAll(_ context.Context, search string) ([]*entity.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	return r.sorted(newestFirst, func(c *entity.Car) bool {
		return needle == "" ||
			strings.Contains(strings.ToLower(c.Make), needle) ||
			strings.Contains(strings.ToLower(c.Model), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle)
	}), nil
}

func (r *memCarRepo) UpdateStatus(_ context.Context, id string, status entity.CarStatus, featured *bool) (*entity.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	car, ok := r.cars[id]
	if !ok {
		return nil, errors.NotFound("Car", nil)
	}
	car.Status = status
	if featured != nil {
		car.Featured = *featured
	}
	return car, nil
}

func (r *memCarRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[id]; !ok {
		return errors.NotFound("Car", nil)
	}
	delete(r.cars, id)
	return nil
}

func (r *memCarRepo) Facets(_ context.Context) (*entity.FacetSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facetCalls++
	if r.facetsError != nil {
		return nil, r.facetsError
	}

	distinct := func(field func(*entity.Car) string) []string {
		seen := map[string]bool{}
		values := []string{}
		for _, car := range r.cars {
			if car.Status != entity.CarStatusAvailable || seen[field(car)] {
				continue
			}
			seen[field(car)] = true
			values = append(values, field(car))
		}
		sort.Strings(values)
		return values
	}

	facets := &entity.FacetSet{
		Makes:         distinct(func(c *entity.Car) string { return c.Make }),
		BodyTypes:     distinct(func(c *entity.Car) string { return c.BodyType }),
		FuelTypes:     distinct(func(c *entity.Car) string { return c.FuelType }),
		Transmissions: distinct(func(c *entity.Car) string { return c.Transmission }),
		PriceRange:    entity.PriceRange{Min: 0, Max: entity.DefaultFacetMaxPrice},
	}

	var lo, hi *decimal.Decimal
	for _, car := range r.cars {
		if car.Status != entity.CarStatusAvailable {
			continue
		}
		price := car.Price
		if lo == nil || price.LessThan(*lo) {
			lo = &price
		}
		if hi == nil || price.GreaterThan(*hi) {
			hi = &price
		}
	}
	if lo != nil {
		facets.PriceRange.Min = lo.InexactFloat64()
		facets.PriceRange.Max = hi.InexactFloat64()
	}
	return facets, nil
}

type memSavedRepo struct {
	mu    sync.Mutex
	seq   int
	saved map[string]map[string]int // user -> car -> save sequence
}

func newMemSavedRepo() *memSavedRepo {
	return &memSavedRepo{saved: map[string]map[string]int{}}
}

func (r *memSavedRepo) Toggle(_ context.Context, userID, carID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cars, ok := r.saved[userID]
	if !ok {
		cars = map[string]int{}
		r.saved[userID] = cars
	}
	if _, exists := cars[carID]; exists {
		delete(cars, carID)
		return false, nil
	}
	r.seq++
	cars[carID] = r.seq
	return true, nil
}

func (r *memSavedRepo) ListCarIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := []string{}
	for id := range r.saved[userID] {
		ids = append(ids, id)
	}
	cars := r.saved[userID]
	sort.Slice(ids, func(i, j int) bool { return cars[ids[i]] > cars[ids[j]] })
	return ids, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []*entity.User{}
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id string, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Role = role
	return nil
}

type memDealershipRepo struct {
	mu         sync.Mutex
	dealership *entity.Dealership
	saves      int
}

func (r *memDealershipRepo) Get(_ context.Context) (*entity.Dealership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dealership == nil {
		return nil, errors.NotFound("Dealership", nil)
	}
	copied := *r.dealership
	return &copied, nil
}

func (r *memDealershipRepo) Save(_ context.Context, dealership *entity.Dealership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	copied := *dealership
	r.dealership = &copied
	return nil
}

func (r *memDealershipRepo) UpdateWorkingHours(_ context.Context, hours []entity.WorkingHour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dealership == nil {
		return errors.NotFound("Dealership", nil)
	}
	r.dealership.WorkingHours = hours
	return nil
}

type memCache struct {
	mu                sync.Mutex
	facets            *entity.FacetSet
	saved             map[string]map[int64][]string // user -> generation -> ids
	generations       map[string]int64
	facetInvalidation int
	savedInvalidation int
	readErr           error
}

func newMemCache() *memCache {
	return &memCache{saved: map[string]map[int64][]string{}, generations: map[string]int64{}}
}

func (c *memCache) GetFacets(context.Context) (*entity.FacetSet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	return c.facets, c.facets != nil, nil
}

func (c *memCache) SetFacets(_ context.Context, facets *entity.FacetSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facets = facets
	return nil
}

func (c *memCache) InvalidateFacets(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facets = nil
	c.facetInvalidation++
	return nil
}

func (c *memCache) GetSavedCarIDs(_ context.Context, userID string) ([]string, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, 0, false, c.readErr
	}
	gen := c.generations[userID]
	ids, ok := c.saved[userID][gen]
	return ids, gen, ok, nil
}

func (c *memCache) SetSavedCarIDs(_ context.Context, userID string, generation int64, ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved[userID] == nil {
		c.saved[userID] = map[int64][]string{}
	}
	c.saved[userID][generation] = ids
	return nil
}

func (c *memCache) InvalidateSavedCars(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	c.savedInvalidation++
	return nil
}

type fakeIdentity struct {
	profiles map[string]*entity.IdentityProfile
}

func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (string, error) {
	if _, ok := f.profiles[token]; ok {
		return token, nil
	}
	return "", errors.Unauthorized("invalid token", nil)
}

func (f *fakeIdentity) GetProfile(_ context.Context, uid string) (*entity.IdentityProfile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, errors.NotFound("Identity", nil)
	}
	return p, nil
}

type toggleCounter struct {
	mu      sync.Mutex
	saved   int
	unsaved int
}

func (t *toggleCounter) RecordToggle(saved bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if saved {
		t.saved++
	} else {
		t.unsaved++
	}
}

var baseTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newCar(id, mk, model, body, fuel, trans, price string, status entity.CarStatus, age time.Duration) *entity.Car {
	return &entity.Car{
		ID:           id,
		Make:         mk,
		Model:        model,
		Year:         2022,
		BodyType:     body,
		FuelType:     fuel,
		Transmission: trans,
		Price:        decimal.RequireFromString(price),
		Status:       status,
		CreatedAt:    baseTime.Add(-age),
		UpdatedAt:    baseTime.Add(-age),
	}
}

// inventory: five available cars plus one sold and one unavailable.
func inventory() []*entity.Car {
	return []*entity.Car{
		newCar("c1", "Toyota", "Camry", "Sedan", "Petrol", "Automatic", "24000", entity.CarStatusAvailable, 1*time.Hour),
		newCar("c2", "Toyota", "RAV4", "SUV", "Hybrid", "Automatic", "31000", entity.CarStatusAvailable, 2*time.Hour),
		newCar("c3", "Ford", "Ranger", "Pickup", "Diesel", "Manual", "28000", entity.CarStatusAvailable, 3*time.Hour),
		newCar("c4", "Honda", "Civic", "Sedan", "Petrol", "Manual", "19000", entity.CarStatusAvailable, 4*time.Hour),
		newCar("c5", "Tesla", "Model 3", "Sedan", "Electric", "Automatic", "42000", entity.CarStatusAvailable, 5*time.Hour),
		newCar("c6", "Porsche", "911", "Coupe", "Petrol", "Automatic", "99000", entity.CarStatusSold, 6*time.Hour),
		newCar("c7", "Lada", "Niva", "SUV", "LPG", "Manual", "5000", entity.CarStatusUnavailable, 7*time.Hour),
	}
}
