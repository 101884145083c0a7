// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ripple/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// client backs the cache-aside helpers. Nil means the cache is absent and
// every read goes straight to storage.
var client *redis.Client

// errorCountingHook feeds the redis error counter; a miss (redis.Nil) is a
// normal outcome, not an error.
type errorCountingHook struct{}

func (errorCountingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errorCountingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errorCountingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// clientOptions accepts either a redis:// URL or a bare host:port.
func clientOptions(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// InitRedis connects to Redis at the given address and installs the resulting
// client for the cache-aside helpers, returning it to the caller. A bad
// address or an unreachable server leaves the cache disabled rather than
// failing startup.
func InitRedis(addr string) *redis.Client {
	opts, err := clientOptions(addr)
	if err != nil {
		log.Printf("Redis disabled: invalid REDIS_URL %q: %v", addr, err)
		client = nil
		return nil
	}

	c := redis.NewClient(opts)
	c.AddHook(errorCountingHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("Redis disabled: %v", err)
		client = nil
		return nil
	}

	log.Println("Redis connected")
	client = c
	return c
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the Redis client. Intended for tests.
func SetClient(c *redis.Client) {
	client = c
}
