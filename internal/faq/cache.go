package faq

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tradegate/internal/platform/redis"
)

// AnswerCache is the read-through cache in front of the FAQ store. A cache
// failure is never fatal; lookups degrade to the store.
type AnswerCache interface {
	Get(ctx context.Context, query string) (string, bool)
	Set(ctx context.Context, query, answer string)
}

// RedisCache caches answers keyed by the lowercased query.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(query string) string {
	return "faq:answer:" + query
}

func (c *RedisCache) Get(ctx context.Context, query string) (string, bool) {
	answer, err := c.client.Get(ctx, cacheKey(query)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false
	}
	if err != nil {
		// An unreachable cache behaves like a miss.
		return "", false
	}
	return answer, true
}

func (c *RedisCache) Set(ctx context.Context, query, answer string) {
	c.client.Set(ctx, cacheKey(query), answer, c.ttl)
}
