package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gymfox/gymfox/app/repository"
	"github.com/gymfox/gymfox/internal/pkg/apidocs"
	"github.com/gymfox/gymfox/internal/pkg/cache"
	"github.com/gymfox/gymfox/internal/pkg/database"
	"github.com/gymfox/gymfox/internal/pkg/env"
	"github.com/gymfox/gymfox/internal/pkg/planlock"
	"github.com/gymfox/gymfox/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	if env.UseMemoryStorage() {
		log.Println("APP_STORAGE=memory, plans are kept in process memory")
		repository.InitializeFactory(nil)
		if err := seedDemoData(repository.GetGlobalRepositories()); err != nil {
			log.Printf("Warning: could not seed demo data: %v", err)
		}
	} else {
		database.SetupDatabase()
		repository.InitializeFactory(database.GetDB())
	}

	locks, limits := setupSharedState()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/gymfox to project root
		"../../../", // Fallback
	}
	docPath, ok := apidocs.Locate(basePaths...)
	if !ok {
		panic("Could not find " + apidocs.DocumentPath)
	}
	if _, err := apidocs.Load(context.Background(), docPath); err != nil {
		panic(err)
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "gymfox",
		BodyLimit: 1 << 20,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: docPath,
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app, locks, limits)

	return app
}

// setupSharedState prefers Redis so several instances share plan leases and
// rate limiter counters. Without Redis both stay in process memory; a nil
// storage makes the limiter use its own.
func setupSharedState() (planlock.Locker, fiber.Storage) {
	ttl := env.GetDurationEnv("PLAN_LOCK_TTL", planlock.DefaultTTL)
	if env.GetEnv("CACHE_HOST", "") == "" {
		log.Println("CACHE_HOST not set, using in-process plan locks and rate limits")
		return planlock.NewMemoryLocker(ttl), nil
	}

	cache.SetupCache()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		log.Printf("Warning: Redis unavailable (%v), using in-process plan locks and rate limits", err)
		return planlock.NewMemoryLocker(ttl), nil
	}
	return planlock.NewRedisLocker(cache.GetClient(), ttl), cache.NewLimiterStorage()
}
