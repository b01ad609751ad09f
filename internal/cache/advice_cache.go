// Package cache stores the most recent LLM-generated advice in Redis so repeat
// requests do not call the model again until the records change.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	adviceKey     = "sleep-records:advice:latest"
	generationKey = "sleep-records:advice:generation"
)

// AdviceCache holds at most one advice entry, tagged with the record
// generation it was computed from.
type AdviceCache interface {
	// Get returns the cached advice, or nil on a miss.
	Get(ctx context.Context) (*domain.SleepAdvice, error)
	// Generation returns the current record generation. Read it before
	// loading the records the advice is built from.
	Generation(ctx context.Context) (int64, error)
	// Set stores advice built at generation. It stores nothing and reports
	// false when a mutation has advanced the generation since.
	Set(ctx context.Context, generation int64, advice *domain.SleepAdvice) (bool, error)
	// Invalidate advances the generation and drops the cached advice; called
	// after every record mutation.
	Invalidate(ctx context.Context) error
}

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1].
// ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfGeneration = redis.NewScript(`
local current = redis.call("GET", KEYS[1]) or "0"
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type redisAdviceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAdviceCache creates a Redis-backed cache. A zero ttl keeps entries until invalidated.
func NewRedisAdviceCache(client *redis.Client, ttl time.Duration) AdviceCache {
	return &redisAdviceCache{client: client, ttl: ttl}
}

func (c *redisAdviceCache) Get(ctx context.Context) (*domain.SleepAdvice, error) {
	data, err := c.client.Get(ctx, adviceKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached advice: %w", err)
	}

	var advice domain.SleepAdvice
	if err := json.Unmarshal(data, &advice); err != nil {
		return nil, fmt.Errorf("decode cached advice: %w", err)
	}
	return &advice, nil
}

func (c *redisAdviceCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get advice generation: %w", err)
	}
	return gen, nil
}

func (c *redisAdviceCache) Set(ctx context.Context, generation int64, advice *domain.SleepAdvice) (bool, error) {
	data, err := json.Marshal(advice)
	if err != nil {
		return false, fmt.Errorf("encode advice: %w", err)
	}

	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{generationKey, adviceKey},
		strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("set cached advice: %w", err)
	}
	return stored == 1, nil
}

func (c *redisAdviceCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, adviceKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate cached advice: %w", err)
	}
	return nil
}

type noopAdviceCache struct{}

// NewNoopAdviceCache returns a cache that never stores anything.
func NewNoopAdviceCache() AdviceCache {
	return noopAdviceCache{}
}

func (noopAdviceCache) Get(context.Context) (*domain.SleepAdvice, error) { return nil, nil }

func (noopAdviceCache) Generation(context.Context) (int64, error) { return 0, nil }

func (noopAdviceCache) Set(context.Context, int64, *domain.SleepAdvice) (bool, error) {
	return false, nil
}

func (noopAdviceCache) Invalidate(context.Context) error { return nil }
