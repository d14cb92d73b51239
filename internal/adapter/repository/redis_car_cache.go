package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
)

const (
	facetsKey        = "vehiql:cars:facets"
	savedCarsKeyBase = "vehiql:saved-cars:"
	savedGenKeyBase  = "vehiql:saved-cars-gen:"
)

type redisCarCache struct {
	client   *redis.Client
	facetTTL time.Duration
	savedTTL time.Duration
}

func NewRedisCarCache(client *redis.Client, facetTTL, savedTTL time.Duration) repository.CarCache {
	return &redisCarCache{
		client:   client,
		facetTTL: facetTTL,
		savedTTL: savedTTL,
	}
}

func savedCarsKey(userID string, generation int64) string {
	return savedCarsKeyBase + userID + ":" + strconv.FormatInt(generation, 10)
}

func savedGenKey(userID string) string {
	return savedGenKeyBase + userID
}

func (c *redisCarCache) GetFacets(ctx context.Context) (*entity.FacetSet, bool, error) {
	var facets entity.FacetSet
	ok, err := c.getJSON(ctx, facetsKey, &facets)
	if !ok || err != nil {
		return nil, false, err
	}
	return &facets, true, nil
}

func (c *redisCarCache) SetFacets(ctx context.Context, facets *entity.FacetSet) error {
	return c.setJSON(ctx, facetsKey, facets, c.facetTTL)
}

func (c *redisCarCache) InvalidateFacets(ctx context.Context) error {
	return c.client.Del(ctx, facetsKey).Err()
}

func (c *redisCarCache) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, savedGenKey(userID)).Int64()
	if stderrors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisCarCache) GetSavedCarIDs(ctx context.Context, userID string) ([]string, int64, bool, error) {
	gen, err := c.generation(ctx, userID)
	if err != nil {
		return nil, 0, false, err
	}

	var ids []string
	ok, err := c.getJSON(ctx, savedCarsKey(userID, gen), &ids)
	if !ok || err != nil {
		return nil, gen, false, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, gen, true, nil
}

func (c *redisCarCache) SetSavedCarIDs(ctx context.Context, userID string, generation int64, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return c.setJSON(ctx, savedCarsKey(userID, generation), ids, c.savedTTL)
}

// InvalidateSavedCars bumps the generation. The previous entry is left to
// expire with its TTL.
func (c *redisCarCache) InvalidateSavedCars(ctx context.Context, userID string) error {
	return c.client.Incr(ctx, savedGenKey(userID)).Err()
}

func (c *redisCarCache) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCarCache) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// NoopCarCache always misses. Used when no Redis address is configured.
type NoopCarCache struct{}

func (NoopCarCache) GetFacets(context.Context) (*entity.FacetSet, bool, error) {
	return nil, false, nil
}

func (NoopCarCache) SetFacets(context.Context, *entity.FacetSet) error { return nil }

func (NoopCarCache) InvalidateFacets(context.Context) error { return nil }

func (NoopCarCache) GetSavedCarIDs(context.Context, string) ([]string, int64, bool, error) {
	return nil, 0, false, nil
}

func (NoopCarCache) SetSavedCarIDs(context.Context, string, int64, []string) error { return nil }

func (NoopCarCache) InvalidateSavedCars(context.Context, string) error { return nil }
