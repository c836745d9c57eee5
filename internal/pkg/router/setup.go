package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gymfox/gymfox/internal/pkg/planlock"
)

// Router installs one group of routes on the app
type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter registers every route. limits backs the API rate limiter and
// may be nil.
func InstallRouter(app *fiber.App, locks planlock.Locker, limits fiber.Storage) {
	// Public routes first so health checks stay outside the rate limiter.
	setup(app, NewHttpRouter(), NewApiRouter(locks, limits))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
