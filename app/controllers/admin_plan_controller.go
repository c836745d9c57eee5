package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/gymfox/gymfox/internal/pkg/membership"
	"github.com/gymfox/gymfox/internal/pkg/planlock"
	"github.com/gymfox/gymfox/internal/pkg/plans"
)

// AdminPlanController serves the plan console JSON API
type AdminPlanController struct {
	plans *plans.Service
}

// NewAdminPlanController creates a new plan controller on top of the plan service
func NewAdminPlanController(svc *plans.Service) *AdminPlanController {
	return &AdminPlanController{
		plans: svc,
	}
}

// HandleBranches lists every branch
func (pc *AdminPlanController) HandleBranches(c *fiber.Ctx) error {
	branches, err := pc.plans.Branches()
	if err != nil {
		return respondError(c, "Failed to load branches", err)
	}
	return c.JSON(fiber.Map{"branches": branches})
}

// HandleList returns the filtered plan cards plus catalogue stats
func (pc *AdminPlanController) HandleList(c *fiber.Ctx) error {
	listing, err := pc.plans.List(membership.FilterOptions{
		BranchID:   c.Query("branch"),
		SearchText: strings.TrimSpace(c.Query("q")),
		Status:     membership.ParseStatusFilter(c.Query("status")),
		View:       membership.ParseViewMode(c.Query("view")),
	})
	if err != nil {
		return respondError(c, "Failed to load plans", err)
	}
	return c.JSON(listing)
}

// HandleStats returns the console header counters
func (pc *AdminPlanController) HandleStats(c *fiber.Ctx) error {
	stats, err := pc.plans.Stats()
	if err != nil {
		return respondError(c, "Failed to load statistics", err)
	}
	return c.JSON(stats)
}

// HandleCatalogue returns what members can buy at a branch
func (pc *AdminPlanController) HandleCatalogue(c *fiber.Ctx) error {
	cards, err := pc.plans.Catalogue(c.Query("branch"))
	if err != nil {
		return respondError(c, "Failed to load catalogue", err)
	}
	return c.JSON(fiber.Map{"plans": cards})
}

// HandleDetail returns one plan resolved for the requested branch
func (pc *AdminPlanController) HandleDetail(c *fiber.Ctx) error {
	detail, err := pc.plans.Detail(c.Params("id"), c.Query("branch"))
	if err != nil {
		return respondError(c, "Failed to load plan", err)
	}
	return c.JSON(detail)
}

// HandleCreate creates a plan
func (pc *AdminPlanController) HandleCreate(c *fiber.Ctx) error {
	var in plans.PlanInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	detail, err := pc.plans.CreatePlan(c.UserContext(), in)
	if err != nil {
		return respondError(c, "Failed to create plan", err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// HandleUpdate replaces a plan's own fields and branch assignment
func (pc *AdminPlanController) HandleUpdate(c *fiber.Ctx) error {
	var in plans.PlanInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	detail, err := pc.plans.UpdatePlan(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, "Failed to update plan", err)
	}
	return c.JSON(detail)
}

// HandleDelete removes a plan
func (pc *AdminPlanController) HandleDelete(c *fiber.Ctx) error {
	if err := pc.plans.DeletePlan(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, "Failed to delete plan", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSaveOverride creates or replaces the override for a branch
func (pc *AdminPlanController) HandleSaveOverride(c *fiber.Ctx) error {
	var in plans.OverrideInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	detail, err := pc.plans.SaveOverride(c.UserContext(), c.Params("id"), c.Params("branch"), in)
	if err != nil {
		return respondError(c, "Failed to save override", err)
	}
	return c.JSON(detail)
}

// HandleDeleteOverride removes the override for a branch
func (pc *AdminPlanController) HandleDeleteOverride(c *fiber.Ctx) error {
	detail, err := pc.plans.DeleteOverride(c.UserContext(), c.Params("id"), c.Params("branch"))
	if err != nil {
		return respondError(c, "Failed to delete override", err)
	}
	return c.JSON(detail)
}

// HandleToggle flips the plan-level active flag
func (pc *AdminPlanController) HandleToggle(c *fiber.Ctx) error {
	detail, err := pc.plans.ToggleActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "Failed to toggle plan", err)
	}
	return c.JSON(detail)
}

// HandleToggleOverride flips the active state a branch sees
func (pc *AdminPlanController) HandleToggleOverride(c *fiber.Ctx) error {
	detail, err := pc.plans.ToggleOverrideActive(c.UserContext(), c.Params("id"), c.Params("branch"))
	if err != nil {
		return respondError(c, "Failed to toggle override", err)
	}
	return c.JSON(detail)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Invalid request body: " + err.Error()})
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and reported with the generic message.
func respondError(c *fiber.Ctx, message string, err error) error {
	var violations *membership.ViolationError
	switch {
	case errors.As(err, &violations):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "plan_invariant_violated",
			"message":    violations.Error(),
			"violations": violations.Violations,
		})
	case errors.Is(err, planlock.ErrMutationInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "mutation_in_flight", "message": err.Error()})
	case errors.Is(err, planlock.ErrLockLost):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "lock_lost", "message": err.Error()})
	case errors.Is(err, plans.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	case errors.Is(err, plans.ErrPlanNotFound),
		errors.Is(err, plans.ErrBranchNotFound),
		errors.Is(err, plans.ErrOverrideNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	}

	fiberlog.Errorf("Admin Plan Controller Error: %s - %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": message})
}
