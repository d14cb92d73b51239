package repository

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
	"vehiql/pkg/query"
)

var carSearchColumns = []string{"make", "model", "description"}

type gormCarRepository struct {
	db *gorm.DB
}

func NewGormCarRepository(db *gorm.DB) repository.CarRepository {
	return &gormCarRepository{db: db}
}

// CarQuery translates a listing predicate into SQL conditions and order.
func CarQuery(p entity.CarPredicate) *query.Builder {
	b := query.New().Where(query.Eq("status", string(p.Status)))

	if p.Search != "" {
		b = b.Where(query.ContainsAnyFold(carSearchColumns, p.Search))
	}
	if p.Make != "" {
		b = b.Where(query.EqFold("make", p.Make))
	}
	if p.BodyType != "" {
		b = b.Where(query.EqFold("body_type", p.BodyType))
	}
	if p.FuelType != "" {
		b = b.Where(query.EqFold("fuel_type", p.FuelType))
	}
	if p.Transmission != "" {
		b = b.Where(query.EqFold("transmission", p.Transmission))
	}

	b = b.Where(query.Gte("price", p.MinPrice))
	if p.MaxPrice != nil {
		b = b.Where(query.Lte("price", *p.MaxPrice))
	}

	switch p.Sort {
	case entity.SortPriceAsc:
		b = b.OrderBy("price", query.Asc)
	case entity.SortPriceDesc:
		b = b.OrderBy("price", query.Desc)
	default:
		b = b.OrderBy("created_at", query.Desc)
	}

	return b
}

func (r *gormCarRepository) Create(ctx context.Context, car *entity.Car) error {
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	if car.Status == "" {
		car.Status = entity.CarStatusAvailable
	}

	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		return errors.Internal("Failed to create car", err)
	}
	return nil
}

func (r *gormCarRepository) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	var car entity.Car
	err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Car", err)
		}
		return nil, errors.Internal("Failed to get car", err)
	}
	return &car, nil
}

func (r *gormCarRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Car, error) {
	if len(ids) == 0 {
		return []*entity.Car{}, nil
	}

	var cars []*entity.Car
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cars).Error; err != nil {
		return nil, errors.Internal("Failed to get cars", err)
	}

	byID := make(map[string]*entity.Car, len(cars))
	for _, car := range cars {
		byID[car.ID] = car
	}

	ordered := make([]*entity.Car, 0, len(cars))
	for _, id := range ids {
		if car, ok := byID[id]; ok {
			ordered = append(ordered, car)
		}
	}
	return ordered, nil
}

func (r *gormCarRepository) List(ctx context.Context, predicate entity.CarPredicate, skip, take int) ([]*entity.Car, int64, error) {
	b := CarQuery(predicate)
	where, args := b.WhereSQL()
	logger.Debug("listing cars %s skip=%d take=%d", b, skip, take)

	base := r.db.WithContext(ctx).
		Model(&entity.Car{}).
		Where(where, args...).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Internal("Failed to count cars", err)
	}

	cars := []*entity.Car{}
	err := base.
		Order(b.OrderSQL()).
		Order("id ASC").
		Offset(skip).
		Limit(take).
		Find(&cars).Error
	if err != nil {
		return nil, 0, errors.Internal("Failed to list cars", err)
	}

	return cars, total, nil
}

func (r *gormCarRepository) ListFeatured(ctx context.Context, limit int) ([]*entity.Car, error) {
	cars := []*entity.Car{}
	err := r.db.WithContext(ctx).
		Where("status = ? AND featured = ?", string(entity.CarStatusAvailable), true).
		Order("created_at DESC").
		Limit(limit).
		Find(&cars).Error
	if err != nil {
		return nil, errors.Internal("Failed to list featured cars", err)
	}
	return cars, nil
}

func (r *gormCarRepository) ListAll(ctx context.Context, search string) ([]*entity.Car, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Car{})
	if search = strings.TrimSpace(search); search != "" {
		where, args := query.ContainsAnyFold(carSearchColumns, search).SQL()
		tx = tx.Where(where, args...)
	}

	cars := []*entity.Car{}
	if err := tx.Order("created_at DESC").Find(&cars).Error; err != nil {
		return nil, errors.Internal("Failed to list cars", err)
	}
	return cars, nil
}

func (r *gormCarRepository) UpdateStatus(ctx context.Context, id string, status entity.CarStatus, featured *bool) (*entity.Car, error) {
	updates := map[string]interface{}{"status": string(status)}
	if featured != nil {
		updates["featured"] = *featured
	}

	res := r.db.WithContext(ctx).Model(&entity.Car{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, errors.Internal("Failed to update car", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.NotFound("Car", nil)
	}

	return r.GetByID(ctx, id)
}

func (r *gormCarRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Car{}, "id = ?", id)
	if res.Error != nil {
		return errors.Internal("Failed to delete car", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Car", nil)
	}
	return nil
}

type priceAggregate struct {
	MinPrice decimal.NullDecimal `gorm:"column:min_price"`
	MaxPrice decimal.NullDecimal `gorm:"column:max_price"`
}

func (r *gormCarRepository) Facets(ctx context.Context) (*entity.FacetSet, error) {
	available := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&entity.Car{}).
			Where("status = ?", string(entity.CarStatusAvailable))
	}

	distinct := func(column string) ([]string, error) {
		values := []string{}
		err := available().Distinct().Order(column+" ASC").Pluck(column, &values).Error
		return values, err
	}

	facets := &entity.FacetSet{}
	var err error
	if facets.Makes, err = distinct("make"); err != nil {
		return nil, errors.Internal("Failed to load makes", err)
	}
	if facets.BodyTypes, err = distinct("body_type"); err != nil {
		return nil, errors.Internal("Failed to load body types", err)
	}
	if facets.FuelTypes, err = distinct("fuel_type"); err != nil {
		return nil, errors.Internal("Failed to load fuel types", err)
	}
	if facets.Transmissions, err = distinct("transmission"); err != nil {
		return nil, errors.Internal("Failed to load transmissions", err)
	}

	var agg priceAggregate
	err = available().
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&agg).Error
	if err != nil {
		return nil, errors.Internal("Failed to load price range", err)
	}

	facets.PriceRange = entity.PriceRange{Min: 0, Max: entity.DefaultFacetMaxPrice}
	if agg.MinPrice.Valid {
		facets.PriceRange.Min = agg.MinPrice.Decimal.InexactFloat64()
	}
	if agg.MaxPrice.Valid {
		facets.PriceRange.Max = agg.MaxPrice.Decimal.InexactFloat64()
	}

	return facets, nil
}
