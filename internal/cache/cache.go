package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"landlord/server/internal/metrics"
)

// Cache is a best-effort JSON cache over Redis. Backend failures are logged and
// reported to callers as a miss (Get) or false (Put), never as errors.
type Cache struct {
	client *redis.Client
	logger *logrus.Logger
}

// New connects to the Redis instance named by url ("redis://host:port/db").
// An unreachable server is not fatal; the cache simply misses until it comes up.
func New(url string, logger *logrus.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	c := NewWithClient(redis.NewClient(opts), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.WithError(err).WithField("addr", opts.Addr).Warn("Redis unavailable, caching disabled until it responds")
	} else {
		c.logger.WithField("addr", opts.Addr).Info("Connected to Redis cache")
	}
	return c, nil
}

func NewWithClient(client *redis.Client, logger *logrus.Logger) *Cache {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Cache{client: client, logger: logger}
}

// Get decodes the value stored at key into dest and reports whether it did.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookup("miss")
		return false
	}
	if err != nil {
		metrics.CacheLookup("error")
		c.logger.WithError(err).WithField("key", key).Warn("Failed to get from cache")
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheLookup("error")
		c.logger.WithError(err).WithField("key", key).Warn("Failed to decode cached value")
		return false
	}
	metrics.CacheLookup("hit")
	return true
}

// Put stores value at key for ttl and reports whether the write succeeded.
func (c *Cache) Put(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	val, err := json.Marshal(value)
	if err != nil {
		metrics.CacheWrite("error")
		c.logger.WithError(err).WithField("key", key).Warn("Failed to encode cache value")
		return false
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		metrics.CacheWrite("error")
		c.logger.WithError(err).WithField("key", key).Warn("Failed to set cache")
		return false
	}
	metrics.CacheWrite("ok")
	return true
}

func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
