package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PredictionCache stores serialized predictions by key.
type PredictionCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisPredictionCache struct {
	client *redis.Client
}

func NewRedisPredictionCache(addr, password string, db int) *RedisPredictionCache {
	return &RedisPredictionCache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *RedisPredictionCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisPredictionCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisPredictionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisPredictionCache) Close() error {
	return c.client.Close()
}

// CachedNutrientPredictor memoizes nutrient predictions. The nutrient model
// is deterministic per slot and calorie target, so a hit is exact. Cache
// failures are logged and never fail a request.
type CachedNutrientPredictor struct {
	next  NutrientPredictor
	cache PredictionCache
	ttl   time.Duration
}

func NewCachedNutrientPredictor(next NutrientPredictor, cache PredictionCache, ttl time.Duration) *CachedNutrientPredictor {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedNutrientPredictor{next: next, cache: cache, ttl: ttl}
}

// nutrientCacheKey uses the shortest exact form of calories, so distinct
// targets never share an entry.
func nutrientCacheKey(slot models.MealSlot, calories float64) string {
	return "nutrients:" + string(slot) + ":" + strconv.FormatFloat(calories, 'g', -1, 64)
}

func (p *CachedNutrientPredictor) PredictNutrients(ctx context.Context, slot models.MealSlot, calories float64) (models.NutrientValues, error) {
	key := nutrientCacheKey(slot, calories)

	if b, ok, err := p.cache.Get(ctx, key); err != nil {
		utils.Log.Warn("prediction cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached models.NutrientValues
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
		utils.Log.Warn("discarding corrupt cache entry", zap.String("key", key))
	}

	nut, err := p.next.PredictNutrients(ctx, slot, calories)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(nut); err == nil {
		if err := p.cache.Set(ctx, key, b, p.ttl); err != nil {
			utils.Log.Warn("prediction cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nut, nil
}
