package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultReplayTTL = time.Hour

// ReplayGuard remembers keyed request outcomes in Redis.
// Key format: <prefix>:replay:<key>
type ReplayGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewReplayGuard creates a ReplayGuard wrapping the given Redis client.
func NewReplayGuard(client *redis.Client, prefix string, ttl time.Duration) *ReplayGuard {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = defaultReplayTTL
	}
	return &ReplayGuard{client: client, prefix: prefix, ttl: ttl}
}

// Lookup reports the result stored for key, if it has not expired.
func (g *ReplayGuard) Lookup(ctx context.Context, key string) (int, bool, error) {
	n, err := g.client.Get(ctx, g.key(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("replay lookup: %w", err)
	}
	return n, true, nil
}

// Remember records result for key (expires after the guard ttl).
func (g *ReplayGuard) Remember(ctx context.Context, key string, result int) error {
	return g.client.Set(ctx, g.key(key), result, g.ttl).Err()
}

func (g *ReplayGuard) key(k string) string {
	return fmt.Sprintf("%s:replay:%s", g.prefix, k)
}
