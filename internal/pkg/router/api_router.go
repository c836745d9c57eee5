package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/gymfox/gymfox/app/controllers"
	"github.com/gymfox/gymfox/internal/pkg/env"
	"github.com/gymfox/gymfox/internal/pkg/planlock"
)

type ApiRouter struct {
	locks  planlock.Locker
	limits fiber.Storage
}

// limiterConfig counts requests in store; a nil store keeps the counters in
// process memory.
func limiterConfig(store fiber.Storage) limiter.Config {
	return limiter.Config{
		Max:        env.GetIntEnv("API_RATE_LIMIT", 120),
		Expiration: time.Minute,
		Storage:    store,
	}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Initialize plan controller with repositories and the plan locker
	controllers.InitializeAdminPlanController(h.locks)

	api := app.Group("/admin/api", limiter.New(limiterConfig(h.limits)))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from the plan console api",
		})
	})

	api.Get("/branches", controllers.HandleAdminBranches)
	api.Get("/catalogue", controllers.HandleAdminCatalogue)

	// Plans
	api.Get("/plans", controllers.HandleAdminPlans)
	api.Get("/plans/stats", controllers.HandleAdminPlanStats)
	api.Post("/plans", controllers.HandleAdminPlanCreate)
	api.Get("/plans/:id", controllers.HandleAdminPlanDetail)
	api.Put("/plans/:id", controllers.HandleAdminPlanUpdate)
	api.Delete("/plans/:id", controllers.HandleAdminPlanDelete)
	api.Post("/plans/:id/toggle", controllers.HandleAdminPlanToggle)

	// Branch overrides
	api.Put("/plans/:id/overrides/:branch", controllers.HandleAdminOverrideSave)
	api.Delete("/plans/:id/overrides/:branch", controllers.HandleAdminOverrideDelete)
	api.Post("/plans/:id/overrides/:branch/toggle", controllers.HandleAdminOverrideToggle)
}

func NewApiRouter(locks planlock.Locker, limits fiber.Storage) *ApiRouter {
	return &ApiRouter{locks: locks, limits: limits}
}
