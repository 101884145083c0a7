package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%s"
	ThoughtKeyPrefix = "thought:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ThoughtTTL = 5 * time.Minute
)

// UserKey builds the cache key for a user document by id hex.
func UserKey(id string) string {
	return fmt.Sprintf(UserKeyPrefix, id)
}

// ThoughtKey builds the cache key for a thought document by id hex.
func ThoughtKey(id string) string {
	return fmt.Sprintf(ThoughtKeyPrefix, id)
}

// Aside implements the cache-aside pattern: on a hit dest is filled from the
// cached JSON; on a miss fill is invoked and dest is cached for ttl. When no
// Redis client is configured it degrades to calling fill directly. Cache
// write failures are ignored.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	if client == nil {
		return fill()
	}

	if data, err := client.Get(ctx, key).Bytes(); err == nil {
		if json.Unmarshal(data, dest) == nil {
			return nil
		}
	}

	if err := fill(); err != nil {
		return err
	}

	if data, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes a cached user document.
func InvalidateUser(ctx context.Context, id string) {
	Invalidate(ctx, UserKey(id))
}

// InvalidateThought removes a cached thought document.
func InvalidateThought(ctx context.Context, id string) {
	Invalidate(ctx, ThoughtKey(id))
}
