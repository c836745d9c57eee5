// Package plans is the write and query boundary of the plan console. Every
// mutation runs under a per-plan lease, is validated against the plan
// invariants on a staged copy and is persisted in one repository call.
package plans

import (
	"context"
	"errors"
	"fmt"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/gymfox/gymfox/app/models"
	"github.com/gymfox/gymfox/app/repository"
	"github.com/gymfox/gymfox/internal/pkg/membership"
	"github.com/gymfox/gymfox/internal/pkg/planlock"
	"github.com/gymfox/gymfox/internal/pkg/viewmodel"
)

// Service provides plan queries and validated plan mutations.
type Service struct {
	plans    repository.PlanRepository
	branches repository.BranchRepository
	locks    planlock.Locker
}

// Listing is one page of the plan console: filtered cards plus catalogue-wide stats.
type Listing struct {
	Plans []viewmodel.PlanCard `json:"plans"`
	Stats membership.Stats     `json:"stats"`
}

// NewService creates a plan service from injected repositories. A nil locker
// falls back to an in-process one.
func NewService(repos *repository.Repositories, locks planlock.Locker) *Service {
	if locks == nil {
		locks = planlock.NewMemoryLocker(planlock.DefaultTTL)
	}
	return &Service{
		plans:    repos.Plan,
		branches: repos.Branch,
		locks:    locks,
	}
}

// NewServiceFromDB creates a plan service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, locks planlock.Locker) *Service {
	return NewService(repository.NewRepositories(db), locks)
}

// Branches returns every branch, ordered by name.
func (s *Service) Branches() ([]models.Branch, error) {
	return s.branches.GetAll()
}

// List returns the cards matching opts, resolved for opts.BranchID, together
// with stats over the whole catalogue.
func (s *Service) List(opts membership.FilterOptions) (*Listing, error) {
	templates, dir, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	matched := membership.Filter(templates, opts)
	return &Listing{
		Plans: viewmodel.NewPlanCards(matched, opts.BranchID, dir),
		Stats: membership.Aggregate(templates),
	}, nil
}

// Catalogue returns the plans a member can buy at branchID: active after
// resolution and offered at that branch. An empty branchID lists every active
// plan in its canonical form.
func (s *Service) Catalogue(branchID string) ([]viewmodel.PlanCard, error) {
	templates, dir, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if branchID != "" {
		if _, ok := dir.LookupBranch(branchID); !ok {
			return nil, ErrBranchNotFound
		}
	}

	active := membership.Filter(templates, membership.FilterOptions{
		BranchID: branchID,
		Status:   membership.StatusActive,
	})
	offered := make([]membership.PlanTemplate, 0, len(active))
	for _, t := range active {
		if branchID == "" || t.IsAssigned(branchID) {
			offered = append(offered, t)
		}
	}
	return viewmodel.NewPlanCards(offered, branchID, dir), nil
}

// Stats aggregates counters over every plan.
func (s *Service) Stats() (membership.Stats, error) {
	plans, err := s.plans.List()
	if err != nil {
		return membership.Stats{}, err
	}
	return membership.Aggregate(models.Templates(plans)), nil
}

// Detail returns one plan resolved for branchID.
func (s *Service) Detail(id, branchID string) (*viewmodel.PlanDetail, error) {
	plan, err := s.load(id)
	if err != nil {
		return nil, err
	}
	dir, err := s.directory()
	if err != nil {
		return nil, err
	}
	detail := viewmodel.NewPlanDetail(plan.Template(), branchID, dir)
	return &detail, nil
}

// CreatePlan stores a new plan after validating its invariants.
func (s *Service) CreatePlan(ctx context.Context, in PlanInput) (*viewmodel.PlanDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	plan := &models.MembershipPlan{}
	plan.EnsureID()
	in.apply(plan)

	err := planlock.With(ctx, s.locks, plan.ID, func(ctx context.Context) error {
		if err := s.check(plan); err != nil {
			return err
		}
		if err := planlock.Held(ctx); err != nil {
			return err
		}
		if err := s.plans.Create(plan); err != nil {
			fiberlog.Errorf("[Plans] Error creating plan %q: %v", plan.Name, err)
			return fmt.Errorf("create plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fiberlog.Infof("[Plans] Created plan %s (%s)", plan.ID, plan.Name)
	return s.Detail(plan.ID, "")
}

// UpdatePlan replaces the plan's own fields and branch assignment. Overrides
// are kept; the update is refused when it would strand one.
func (s *Service) UpdatePlan(ctx context.Context, id string, in PlanInput) (*viewmodel.PlanDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	err := s.mutate(ctx, id,
		func(p *models.MembershipPlan) error {
			in.apply(p)
			return nil
		},
		s.plans.Save,
	)
	if err != nil {
		return nil, err
	}
	fiberlog.Infof("[Plans] Updated plan %s", id)
	return s.Detail(id, "")
}

// DeletePlan removes the plan with its branch assignment and overrides.
func (s *Service) DeletePlan(ctx context.Context, id string) error {
	err := planlock.With(ctx, s.locks, id, func(ctx context.Context) error {
		if _, err := s.load(id); err != nil {
			return err
		}
		if err := planlock.Held(ctx); err != nil {
			return err
		}
		if err := s.plans.Delete(id); err != nil {
			return translateNotFound(err, ErrPlanNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	fiberlog.Infof("[Plans] Deleted plan %s", id)
	return nil
}

// SaveOverride creates or replaces the override for branchID. A plan carries
// at most one override per branch.
func (s *Service) SaveOverride(ctx context.Context, id, branchID string, in OverrideInput) (*viewmodel.PlanDetail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireBranch(branchID); err != nil {
		return nil, err
	}

	row := in.row(id, branchID)
	err := s.mutate(ctx, id,
		func(p *models.MembershipPlan) error {
			p.PutOverride(row)
			return nil
		},
		func(p *models.MembershipPlan) error {
			return s.plans.UpsertOverride(&p.Overrides[p.FindOverride(branchID)])
		},
	)
	if err != nil {
		return nil, err
	}
	fiberlog.Infof("[Plans] Saved override of plan %s for branch %s", id, branchID)
	return s.Detail(id, branchID)
}

// DeleteOverride drops the override for branchID so the branch inherits the
// plan again.
func (s *Service) DeleteOverride(ctx context.Context, id, branchID string) (*viewmodel.PlanDetail, error) {
	err := s.mutate(ctx, id,
		func(p *models.MembershipPlan) error {
			if !p.RemoveOverride(branchID) {
				return ErrOverrideNotFound
			}
			return nil
		},
		func(p *models.MembershipPlan) error {
			return translateNotFound(s.plans.DeleteOverride(id, branchID), ErrOverrideNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	fiberlog.Infof("[Plans] Deleted override of plan %s for branch %s", id, branchID)
	return s.Detail(id, branchID)
}

// ToggleActive flips the plan-level active flag. Branch overrides that set
// their own flag are unaffected.
func (s *Service) ToggleActive(ctx context.Context, id string) (*viewmodel.PlanDetail, error) {
	var active bool
	err := s.mutate(ctx, id,
		func(p *models.MembershipPlan) error {
			p.IsActive = !p.IsActive
			active = p.IsActive
			return nil
		},
		func(p *models.MembershipPlan) error {
			return translateNotFound(s.plans.SetActive(id, p.IsActive), ErrPlanNotFound)
		},
	)
	if err != nil {
		return nil, err
	}
	fiberlog.Infof("[Plans] Plan %s active=%t", id, active)
	return s.Detail(id, "")
}

// ToggleOverrideActive flips the active state the branch currently sees. An
// override that inherits the flag gets the explicit opposite of the plan's
// value.
func (s *Service) ToggleOverrideActive(ctx context.Context, id, branchID string) (*viewmodel.PlanDetail, error) {
	var active bool
	err := s.mutate(ctx, id,
		func(p *models.MembershipPlan) error {
			i := p.FindOverride(branchID)
			if i < 0 {
				return ErrOverrideNotFound
			}
			active = !membership.Resolve(p.Template(), branchID).IsActive
			p.Overrides[i].IsActive = &active
			return nil
		},
		func(p *models.MembershipPlan) error {
			return s.plans.UpsertOverride(&p.Overrides[p.FindOverride(branchID)])
		},
	)
	if err != nil {
		return nil, err
	}
	fiberlog.Infof("[Plans] Plan %s branch %s active=%t", id, branchID, active)
	return s.Detail(id, branchID)
}

// mutate stages change on a copy of the stored plan, validates the result and
// hands it to persist, all while holding the plan's lease. Nothing is written
// when change or validation fails, or when the lease was lost meanwhile.
func (s *Service) mutate(
	ctx context.Context,
	id string,
	change func(p *models.MembershipPlan) error,
	persist func(p *models.MembershipPlan) error,
) error {
	return planlock.With(ctx, s.locks, id, func(ctx context.Context) error {
		current, err := s.load(id)
		if err != nil {
			return err
		}
		staged := current.Clone()
		if err := change(staged); err != nil {
			return err
		}
		if err := s.check(staged); err != nil {
			return err
		}
		if err := planlock.Held(ctx); err != nil {
			fiberlog.Warnf("[Plans] Dropping change to plan %s: %v", id, err)
			return err
		}
		if err := persist(staged); err != nil {
			fiberlog.Errorf("[Plans] Error persisting plan %s: %v", id, err)
			return fmt.Errorf("persist plan %s: %w", id, err)
		}
		return nil
	})
}

// check runs field validation, branch existence and the override invariants.
func (s *Service) check(p *models.MembershipPlan) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	dir, err := s.directory()
	if err != nil {
		return err
	}
	for _, id := range p.BranchIDs() {
		if _, ok := dir.LookupBranch(id); !ok {
			return fmt.Errorf("%w: unknown branch %q", ErrInvalidInput, id)
		}
	}
	return membership.Check(p.Template())
}

func (s *Service) load(id string) (*models.MembershipPlan, error) {
	plan, err := s.plans.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, ErrPlanNotFound)
	}
	return plan, nil
}

func (s *Service) requireBranch(id string) error {
	if _, err := s.branches.GetByID(id); err != nil {
		return translateNotFound(err, ErrBranchNotFound)
	}
	return nil
}

func (s *Service) directory() (membership.BranchMap, error) {
	branches, err := s.branches.GetAll()
	if err != nil {
		return nil, err
	}
	return models.BranchDirectory(branches), nil
}

func (s *Service) snapshot() ([]membership.PlanTemplate, membership.BranchMap, error) {
	plans, err := s.plans.List()
	if err != nil {
		return nil, nil, err
	}
	dir, err := s.directory()
	if err != nil {
		return nil, nil, err
	}
	return models.Templates(plans), dir, nil
}

func translateNotFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
