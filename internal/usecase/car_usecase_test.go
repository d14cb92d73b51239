package usecase

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehiql/internal/domain/entity"
	"vehiql/pkg/errors"
)

type carFixture struct {
	cars  *memCarRepo
	saved *memSavedRepo
	cache *memCache
	uc    *CarUseCase
}

func newCarFixture() *carFixture {
	f := &carFixture{
		cars:  newMemCarRepo(inventory()...),
		saved: newMemSavedRepo(),
		cache: newMemCache(),
	}
	f.uc = NewCarUseCase(f.cars, f.saved, f.cache)
	return f
}

func ids(views []CarView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestGetFilters_OnlyAvailableInventory(t *testing.T) {
	f := newCarFixture()

	facets, err := f.uc.GetFilters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Ford", "Honda", "Tesla", "Toyota"}, facets.Makes)
	assert.Equal(t, []string{"Pickup", "SUV", "Sedan"}, facets.BodyTypes)
	assert.Equal(t, []string{"Diesel", "Electric", "Hybrid", "Petrol"}, facets.FuelTypes)
	assert.Equal(t, []string{"Automatic", "Manual"}, facets.Transmissions)
	assert.Equal(t, entity.PriceRange{Min: 19000, Max: 42000}, facets.PriceRange)
	assert.NotContains(t, facets.Makes, "Porsche")
	assert.NotContains(t, facets.Makes, "Lada")
}

func TestGetFilters_EmptyInventoryDefaults(t *testing.T) {
	uc := NewCarUseCase(newMemCarRepo(), newMemSavedRepo(), newMemCache())

	facets, err := uc.GetFilters(context.Background())
	require.NoError(t, err)

	assert.Empty(t, facets.Makes)
	assert.Equal(t, entity.PriceRange{Min: 0, Max: 100000}, facets.PriceRange)
}

func TestGetFilters_ServedFromCache(t *testing.T) {
	f := newCarFixture()
	ctx := context.Background()

	_, err := f.uc.GetFilters(ctx)
	require.NoError(t, err)
	_, err = f.uc.GetFilters(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, f.cars.facetCalls)
}

func TestGetFilters_CacheErrorFallsBackToRepository(t *testing.T) {
	f := newCarFixture()
	f.cache.readErr = stderrors.New("redis down")

	facets, err := f.uc.GetFilters(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, facets.Makes)
}

func TestGetFilters_RepositoryErrorFails(t *testing.T) {
	f := newCarFixture()
	f.cars.facetsError = errors.Internal("Failed to load makes", nil)

	_, err := f.uc.GetFilters(context.Background())
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestListCars_EveryResultSatisfiesSelection(t *testing.T) {
	f := newCarFixture()
	ctx := context.Background()

	selections := []entity.FilterSelection{
		{},
		{Make: "toyota"},
		{BodyType: "SEDAN", Transmission: "automatic"},
		{FuelType: "Petrol"},
		{MinPrice: "20000", MaxPrice: "30000"},
		{Search: "ra"},
		{Search: "model", SortBy: "priceAsc"},
		{MinPrice: "junk", MaxPrice: "junk"},
	}

	for _, sel := range selections {
		result, err := f.uc.ListCars(ctx, "", sel)
		require.NoError(t, err)

		predicate := entity.BuildCarPredicate(sel)
		for _, view := range result.Items {
			source := f.cars.cars[view.ID]
			assert.Equal(t, "AVAILABLE", view.Status)
			assert.True(t, predicate.Matches(source), "car %s does not match %+v", view.ID, sel)
		}
	}
}

func TestListCars_PriceBoundsInclusive(t *testing.T) {
	f := newCarFixture()

	result, err := f.uc.ListCars(context.Background(), "", entity.FilterSelection{
		MinPrice: "19000",
		MaxPrice: "24000",
		SortBy:   "priceAsc",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"c4", "c1"}, ids(result.Items))
}

func TestListCars_SortOrders(t *testing.T) {
	f := newCarFixture()
	ctx := context.Background()

	asc, err := f.uc.ListCars(ctx, "", entity.FilterSelection{SortBy: "priceAsc", PageSize: 48})
	require.NoError(t, err)
	for i := 1; i < len(asc.Items); i++ {
		assert.LessOrEqual(t, asc.Items[i-1].Price, asc.Items[i].Price)
	}

	desc, err := f.uc.ListCars(ctx, "", entity.FilterSelection{SortBy: "priceDesc", PageSize: 48})
	require.NoError(t, err)
	for i := 1; i < len(desc.Items); i++ {
		assert.GreaterOrEqual(t, desc.Items[i-1].Price, desc.Items[i].Price)
	}

	newest, err := f.uc.ListCars(ctx, "", entity.FilterSelection{SortBy: "whatever", PageSize: 48})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5"}, ids(newest.Items))
}

func TestListCars_Pagination(t *testing.T) {
	f := newCarFixture()

	result, err := f.uc.ListCars(context.Background(), "", entity.FilterSelection{Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"c3", "c4"}, ids(result.Items))
	assert.Equal(t, int64(5), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 2, result.Pagination.PageSize)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}

func TestListCars_DefaultPageSize(t *testing.T) {
	f := newCarFixture()

	result, err := f.uc.ListCars(context.Background(), "", entity.FilterSelection{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 6, result.Pagination.PageSize)
	assert.Len(t, result.Items, 5)
}

func TestListCars_PageBeyondEnd(t *testing.T) {
	f := newCarFixture()

	result, err := f.uc.ListCars(context.Background(), "", entity.FilterSelection{Page: 10})
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, int64(5), result.Pagination.Total)
}

func TestListCars_WishlistedFlags(t *testing.T) {
	f := newCarFixture()
	ctx := context.Background()

	_, err := f.saved.Toggle(ctx, "user-1", "c2")
	require.NoError(t, err)

	anonymous, err := f.uc.ListCars(ctx, "", entity.FilterSelection{})
	require.NoError(t, err)
	for _, view := range anonymous.Items {
		assert.False(t, view.Wishlisted)
	}

	nobody, err := f.uc.ListCars(ctx, "user-without-saves", entity.FilterSelection{})
	require.NoError(t, err)
	for _, view := range nobody.Items {
		assert.False(t, view.Wishlisted)
	}

	owner, err := f.uc.ListCars(ctx, "user-1", entity.FilterSelection{})
	require.NoError(t, err)
	for _, view := range owner.Items {
		assert.Equal(t, view.ID == "c2", view.Wishlisted, view.ID)
	}
}

func TestGetFeaturedCars(t *testing.T) {
	f := newCarFixture()
	for _, id := range []string{"c2", "c3", "c4", "c5", "c6"} {
		f.cars.cars[id].Featured = true
	}

	cars, err := f.uc.GetFeaturedCars(context.Background(), 0)
	require.NoError(t, err)

	// c6 is sold, so only available featured cars, newest first, default three
	assert.Equal(t, []string{"c2", "c3", "c4"}, ids(cars))
}

func TestGetCarByID(t *testing.T) {
	f := newCarFixture()
	ctx := context.Background()
	_, err := f.saved.Toggle(ctx, "user-1", "c1")
	require.NoError(t, err)

	view, err := f.uc.GetCarByID(ctx, "user-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Camry", view.Model)
	assert.True(t, view.Wishlisted)

	view, err = f.uc.GetCarByID(ctx, "", "c1")
	require.NoError(t, err)
	assert.False(t, view.Wishlisted)

	_, err = f.uc.GetCarByID(ctx, "", "c6")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = f.uc.GetCarByID(ctx, "", "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSerializeCar(t *testing.T) {
	seats := 5
	c := newCar("c1", "Toyota", "Camry", "Sedan", "Petrol", "Automatic", "24999.99", entity.CarStatusAvailable, 0)
	c.Seats = &seats
	c.Images = []string{"https://img/1.jpg", "https://img/2.jpg"}

	view := SerializeCar(c, true)

	assert.Equal(t, 24999.99, view.Price)
	assert.Equal(t, "AVAILABLE", view.Status)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, view.Images)
	assert.Equal(t, "2024-06-01T10:00:00Z", view.CreatedAt)
	assert.Equal(t, &seats, view.Seats)
	assert.True(t, view.Wishlisted)
}

func TestListCars_HugePageIsEmptyNotFirstPage(t *testing.T) {
	f := newCarFixture()

	result, err := f.uc.ListCars(context.Background(), "", entity.FilterSelection{
		Page:     math.MaxInt,
		PageSize: 6,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, math.MaxInt/6, result.Pagination.Page)
	assert.GreaterOrEqual(t, result.Pagination.Skip, 0)
	assert.Equal(t, int64(5), result.Pagination.Total)
}
