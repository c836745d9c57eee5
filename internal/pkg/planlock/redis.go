package planlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Only the holder of the token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// The expiry is only pushed while the key still carries the caller's token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker keeps leases in Redis so every console instance sees them.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a locker on client; ttl <= 0 means DefaultTTL.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, planID string) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key(planID), token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire plan lock %s: %w", planID, err)
	}
	if !ok {
		return "", ErrMutationInFlight
	}
	return token, nil
}

func (l *RedisLocker) Extend(ctx context.Context, planID, token string) error {
	n, err := extendScript.Run(ctx, l.client, []string{key(planID)}, token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("extend plan lock %s: %w", planID, err)
	}
	if n == 0 {
		return ErrLockLost
	}
	return nil
}

func (l *RedisLocker) Release(ctx context.Context, planID, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{key(planID)}, token).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLockLost
	}
	return nil
}

func (l *RedisLocker) TTL() time.Duration {
	return l.ttl
}
