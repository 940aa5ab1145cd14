package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
)

// DirectoryCache holds the unfiltered patient-facing doctor list.
//
// Entries are versioned by a generation that Invalidate advances. A reader
// passes the generation it got from Get back to Set, so a fill computed from
// a store read that raced an invalidation is written under a retired
// generation and never served.
type DirectoryCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context) ([]models.DoctorPublicView, int64, bool, error)
	Set(ctx context.Context, generation int64, doctors []models.DoctorPublicView) error
	Invalidate(ctx context.Context) error
}

// RedisDirectoryCache stores the directory as JSON under utils.DirectoryCacheKey
// suffixed with the current generation.
type RedisDirectoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDirectoryCache(client *redis.Client, ttl time.Duration) *RedisDirectoryCache {
	if ttl <= 0 {
		ttl = utils.DefaultDirectoryCacheTTL
	}
	return &RedisDirectoryCache{client: client, ttl: ttl}
}

func directoryKey(generation int64) string {
	return fmt.Sprintf("%s:v%d", utils.DirectoryCacheKey, generation)
}

func (c *RedisDirectoryCache) Get(ctx context.Context) ([]models.DoctorPublicView, int64, bool, error) {
	generation, err := c.client.Get(ctx, utils.DirectoryGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		generation, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read directory generation: %w", err)
	}

	raw, err := c.client.Get(ctx, directoryKey(generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false, nil
	}
	if err != nil {
		return nil, generation, false, fmt.Errorf("failed to read directory cache: %w", err)
	}
	var doctors []models.DoctorPublicView
	if err := json.Unmarshal(raw, &doctors); err != nil {
		return nil, generation, false, fmt.Errorf("failed to decode directory cache: %w", err)
	}
	return doctors, generation, true, nil
}

func (c *RedisDirectoryCache) Set(ctx context.Context, generation int64, doctors []models.DoctorPublicView) error {
	data, err := json.Marshal(doctors)
	if err != nil {
		return fmt.Errorf("failed to encode directory cache: %w", err)
	}
	if err := c.client.Set(ctx, directoryKey(generation), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write directory cache: %w", err)
	}
	return nil
}

// Invalidate retires the current generation. Stale entries expire on their TTL.
func (c *RedisDirectoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, utils.DirectoryGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate directory cache: %w", err)
	}
	return nil
}

// NoopDirectoryCache always misses. It is used when Redis is not configured.
type NoopDirectoryCache struct{}

func (NoopDirectoryCache) Get(ctx context.Context) ([]models.DoctorPublicView, int64, bool, error) {
	return nil, 0, false, nil
}

func (NoopDirectoryCache) Set(ctx context.Context, generation int64, doctors []models.DoctorPublicView) error {
	return nil
}

func (NoopDirectoryCache) Invalidate(ctx context.Context) error {
	return nil
}
