package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gymfox/gymfox/internal/pkg/env"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// SetupCache initializes the connection to the Redis server
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       env.GetIntEnv("CACHE_DB", 0),
	})

	// Test the connection
	if err := Ping(context.Background()); err != nil {
		log.Printf("Warning: Could not connect to Redis cache: %v", err)
	} else {
		log.Printf("Successfully connected to Redis cache at %s:%s", host, port)
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Enabled reports whether SetupCache ran
func Enabled() bool {
	return client != nil
}

// Ping checks whether the cache answers within a second
func Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return GetClient().Ping(ctx).Err()
}
