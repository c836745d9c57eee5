package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gymfox/gymfox/app/repository"
	"github.com/gymfox/gymfox/internal/pkg/planlock"
	"github.com/gymfox/gymfox/internal/pkg/plans"
)

// Global plan controller instance
var adminPlanController *AdminPlanController

// InitializeAdminPlanController initializes the global plan controller with
// repositories and the given plan locker
func InitializeAdminPlanController(locks planlock.Locker) {
	repos := repository.GetGlobalRepositories()
	adminPlanController = NewAdminPlanController(plans.NewService(repos, locks))
}

// GetAdminPlanController returns the global plan controller instance
func GetAdminPlanController() *AdminPlanController {
	if adminPlanController == nil {
		InitializeAdminPlanController(nil)
	}
	return adminPlanController
}

// Adapter functions used by the router

// HandleAdminBranches - Adapter for branch list
func HandleAdminBranches(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleBranches(c)
}

// HandleAdminPlans - Adapter for plan list
func HandleAdminPlans(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleList(c)
}

// HandleAdminPlanStats - Adapter for plan stats
func HandleAdminPlanStats(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleStats(c)
}

// HandleAdminCatalogue - Adapter for the member-facing catalogue
func HandleAdminCatalogue(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleCatalogue(c)
}

// HandleAdminPlanDetail - Adapter for plan detail
func HandleAdminPlanDetail(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleDetail(c)
}

// HandleAdminPlanCreate - Adapter for plan create
func HandleAdminPlanCreate(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleCreate(c)
}

// HandleAdminPlanUpdate - Adapter for plan update
func HandleAdminPlanUpdate(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleUpdate(c)
}

// HandleAdminPlanDelete - Adapter for plan delete
func HandleAdminPlanDelete(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleDelete(c)
}

// HandleAdminPlanToggle - Adapter for plan active toggle
func HandleAdminPlanToggle(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleToggle(c)
}

// HandleAdminOverrideSave - Adapter for override upsert
func HandleAdminOverrideSave(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleSaveOverride(c)
}

// HandleAdminOverrideDelete - Adapter for override delete
func HandleAdminOverrideDelete(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleDeleteOverride(c)
}

// HandleAdminOverrideToggle - Adapter for override active toggle
func HandleAdminOverrideToggle(c *fiber.Ctx) error {
	return GetAdminPlanController().HandleToggleOverride(c)
}
