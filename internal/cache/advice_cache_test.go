package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaisecz/sleep-records/internal/domain"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleAdvice() *domain.SleepAdvice {
	return &domain.SleepAdvice{
		Advice:          "규칙적으로 주무세요",
		SleepQuality:    domain.QualityGood,
		Recommendations: []string{"a", "b"},
		Insights:        []string{"c"},
	}
}

func TestRedisAdviceCache_Miss(t *testing.T) {
	_, client := setupRedis(t)
	c := NewRedisAdviceCache(client, time.Minute)

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisAdviceCache_SetGetInvalidate(t *testing.T) {
	_, client := setupRedis(t)
	c := NewRedisAdviceCache(client, time.Minute)
	ctx := context.Background()

	stored, err := c.Set(ctx, 0, sampleAdvice())
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleAdvice(), got)

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisAdviceCache_TTL(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisAdviceCache(client, 10*time.Minute)
	ctx := context.Background()

	_, err := c.Set(ctx, 0, sampleAdvice())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, mr.TTL(adviceKey))

	mr.FastForward(11 * time.Minute)
	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisAdviceCache_CorruptEntry(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisAdviceCache(client, time.Minute)

	require.NoError(t, mr.Set(adviceKey, "{not json"))
	_, err := c.Get(context.Background())
	assert.Error(t, err)
}

func TestRedisAdviceCache_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	c := NewRedisAdviceCache(client, time.Minute)
	mr.Close()

	_, err = c.Get(context.Background())
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestNoopAdviceCache(t *testing.T) {
	c := NewNoopAdviceCache()
	ctx := context.Background()

	stored, err := c.Set(ctx, 0, sampleAdvice())
	require.NoError(t, err)
	assert.False(t, stored)
	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestRedisAdviceCache_InvalidateAdvancesGeneration(t *testing.T) {
	_, client := setupRedis(t)
	c := NewRedisAdviceCache(client, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Invalidate(ctx))

	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, gen)
}

func TestRedisAdviceCache_SetSkipsStaleGeneration(t *testing.T) {
	_, client := setupRedis(t)
	c := NewRedisAdviceCache(client, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)

	// A record changes while the advice is being generated.
	require.NoError(t, c.Invalidate(ctx))

	stored, err := c.Set(ctx, gen, sampleAdvice())
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	stored, err = c.Set(ctx, gen, sampleAdvice())
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestRedisAdviceCache_NoTTL(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisAdviceCache(client, 0)

	stored, err := c.Set(context.Background(), 0, sampleAdvice())
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Zero(t, mr.TTL(adviceKey))
}
