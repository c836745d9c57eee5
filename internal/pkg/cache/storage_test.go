package cache

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/gymfox/gymfox/internal/pkg/env"
)

func TestStorageConfig(t *testing.T) {
	previous := env.Env
	t.Cleanup(func() { env.Env = previous })
	env.Env = map[string]string{"CACHE_PASSWORD": "from-env"}

	cfg := StorageConfig(&redis.Options{Addr: "cache:6380", Username: "console", Password: "secret"}, LimiterDB)
	assert.Equal(t, "cache", cfg.Host)
	assert.Equal(t, 6380, cfg.Port)
	assert.Equal(t, "console", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, LimiterDB, cfg.Database)
	assert.False(t, cfg.Reset)

	cfg = StorageConfig(&redis.Options{Addr: "redis-host"}, 4)
	assert.Equal(t, "redis-host", cfg.Host)
	assert.Equal(t, 6379, cfg.Port)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, 4, cfg.Database)

	cfg = StorageConfig(nil, LimiterDB)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 6379, cfg.Port)
}
