package repository

import (
	"condominio/internal/entities"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const ufCacheKey = "condominio:uf:actual"

// UFCache stores the last fetched UF. Get returns (nil, nil) on a miss.
type UFCache interface {
	Get(ctx context.Context) (*entities.UFValue, error)
	Set(ctx context.Context, v entities.UFValue, ttl time.Duration) error
}

type MemoryUFCache struct {
	mu      sync.RWMutex
	value   *entities.UFValue
	expires time.Time
	now     func() time.Time
}

func NewMemoryUFCache() *MemoryUFCache {
	return &MemoryUFCache{now: time.Now}
}

func (c *MemoryUFCache) Get(ctx context.Context) (*entities.UFValue, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil || c.now().After(c.expires) {
		return nil, nil
	}
	v := *c.value
	return &v, nil
}

func (c *MemoryUFCache) Set(ctx context.Context, v entities.UFValue, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = &v
	c.expires = c.now().Add(ttl)
	return nil
}

type RedisUFCache struct {
	client *redis.Client
}

func NewRedisUFCache(client *redis.Client) *RedisUFCache {
	return &RedisUFCache{client: client}
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("conectando a Redis: %w", err)
	}
	return client, nil
}

func (c *RedisUFCache) Get(ctx context.Context) (*entities.UFValue, error) {
	raw, err := c.client.Get(ctx, ufCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo UF en cache: %w", err)
	}
	var v entities.UFValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("UF en cache corrupta: %w", err)
	}
	return &v, nil
}

func (c *RedisUFCache) Set(ctx context.Context, v entities.UFValue, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, ufCacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("guardando UF en cache: %w", err)
	}
	return nil
}
