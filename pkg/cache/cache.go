// Package cache provides a small JSON cache over Redis, used for the
// category and advertised-product listings. A nil client (Redis not
// configured or unreachable) degrades to a no-op: every Get is a miss and
// every Set succeeds silently.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hometech/server/config"
	"github.com/hometech/server/pkg/logger"
	"github.com/hometech/server/pkg/metrics"
)

var RDB *redis.Client

// Connect initialises the Redis client. Call once at startup. An
// unreachable Redis leaves RDB nil and the cache disabled; listings are
// then served straight from the store.
func Connect() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("cache: redis unreachable, caching disabled", "error", err)
		RDB = nil
		return
	}
	RDB = client
}

// Get unmarshals the cached value for key into dest.
// Returns false on miss, decode failure, or when the cache is disabled.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true
}

// Set stores value under key with a TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Forget drops a cached key. Used after writes that invalidate a listing.
func Forget(ctx context.Context, keys ...string) {
	if RDB == nil {
		return
	}
	RDB.Del(ctx, keys...)
}
