/**
 * @description
 * Redis connection manager using go-redis.
 * Used for caching market listings and pub/sub for live pool updates.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - Redis is optional for this frontend: with no REDIS_URL configured the
 *   caller receives (nil, nil) and every consumer degrades gracefully.
 */

package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weather-project/webapp/internal/config"
	"github.com/weather-project/webapp/internal/logger"
)

// ConnectRedis initializes the Redis client. Returns (nil, nil) when Redis
// is not configured.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		logger.Info("Redis not configured, running without listing cache and live updates")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = 5 * time.Second
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = 5 * time.Second
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = 5 * time.Second
	}
	if opt.MaxRetries == 0 {
		opt.MaxRetries = 2
	}
	if opt.MinRetryBackoff == 0 {
		opt.MinRetryBackoff = 200 * time.Millisecond
	}
	if opt.MaxRetryBackoff == 0 {
		opt.MaxRetryBackoff = 2 * time.Second
	}
	if opt.PoolSize == 0 {
		opt.PoolSize = 20
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Info("Connected to Redis")
	return client, nil
}
