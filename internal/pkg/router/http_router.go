package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gymfox/gymfox/internal/pkg/cache"
	"github.com/gymfox/gymfox/internal/pkg/database"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/docs/api/v1")
	})
	app.Get("/health", handleHealth)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

// handleHealth reports the reachability of the optional backing services.
// The app serves requests without either of them.
func handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ok", "database": "memory", "cache": "unavailable"}
	if db := database.GetDB(); db != nil {
		status["database"] = "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "unavailable"
			status["status"] = "degraded"
		}
	}
	if cache.Enabled() && cache.Ping(ctx) == nil {
		status["cache"] = "ok"
	}
	return c.JSON(status)
}
