package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/config"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

// Redis wraps the go-redis client used as a stock-count cache. The files
// under accounts/ stay the source of truth; cache misses and outages fall
// back to counting lines directly.
type Redis struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, ttl: cfg.StockCacheTTL()}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

func stockKey(category domain.Category) string {
	return fmt.Sprintf("stock:%s", category)
}

// GetStockCount returns the cached count for a category; ok is false on
// miss or any redis error.
func (r *Redis) GetStockCount(ctx context.Context, category domain.Category) (int, bool) {
	if r == nil || r.Client == nil {
		return 0, false
	}
	val, err := r.Client.Get(ctx, stockKey(category)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetStockCount caches a category count with the configured TTL.
func (r *Redis) SetStockCount(ctx context.Context, category domain.Category, count int) {
	if r == nil || r.Client == nil || r.ttl <= 0 {
		return
	}
	_ = r.Client.Set(ctx, stockKey(category), strconv.Itoa(count), r.ttl).Err()
}

// InvalidateStockCount drops the cached count after any pool mutation.
func (r *Redis) InvalidateStockCount(ctx context.Context, category domain.Category) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, stockKey(category)).Err()
}
