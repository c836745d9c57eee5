package cache

import (
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/redis/go-redis/v9"

	"github.com/gymfox/gymfox/internal/pkg/env"
)

// LimiterDB keeps rate limiter counters apart from plan leases.
const LimiterDB = 1

// StorageConfig derives a gofiber storage config for database db from the
// cache client's options, so both talk to the same server.
func StorageConfig(opts *redis.Options, db int) redisstorage.Config {
	cfg := redisstorage.Config{
		Host:     "localhost",
		Port:     6379,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: db,
		Reset:    false,
	}
	if opts == nil {
		return cfg
	}
	if h, p, err := net.SplitHostPort(opts.Addr); err == nil {
		cfg.Host = h
		if v, err := strconv.Atoi(p); err == nil {
			cfg.Port = v
		}
	} else if opts.Addr != "" {
		cfg.Host = opts.Addr
	}
	cfg.Username = opts.Username
	if opts.Password != "" {
		cfg.Password = opts.Password
	}
	return cfg
}

// NewLimiterStorage returns Redis-backed storage for the API rate limiter so
// every instance counts against the same budget. Call it only after Ping
// succeeded; the storage connects eagerly.
func NewLimiterStorage() fiber.Storage {
	return redisstorage.New(StorageConfig(GetClient().Options(), env.GetIntEnv("CACHE_LIMITER_DB", LimiterDB)))
}
