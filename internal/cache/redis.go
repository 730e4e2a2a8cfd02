package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hariomfashion/backend/internal/models"
)

const keyPrefix = "catalog:"

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	data, err := r.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := r.client.Set(ctx, productKey(product.ID.Hex()), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) GetList(ctx context.Context, key string) ([]models.Product, error) {
	data, err := r.client.Get(ctx, listKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal product list failed: %w", err)
	}
	return products, nil
}

func (r *RedisCache) SetList(ctx context.Context, key string, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal product list failed: %w", err)
	}
	if err := r.client.Set(ctx, listKey(key), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// ttl adds jitter so a burst of fills doesn't expire as one thundering herd.
func (r *RedisCache) ttl() time.Duration {
	return r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
}

func productKey(id string) string {
	return fmt.Sprintf("%sproduct:%s", keyPrefix, id)
}

func listKey(key string) string {
	return fmt.Sprintf("%slist:%s", keyPrefix, key)
}
