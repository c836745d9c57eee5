package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/gymfox/gymfox/app/models"
	"gorm.io/gorm"
)

// memoryPlanRepository keeps plans in process memory. Every method copies
// plans in and out so callers never share state with the store.
type memoryPlanRepository struct {
	mu      sync.RWMutex
	plans   map[string]*models.MembershipPlan
	seq     map[string]uint64
	nextSeq uint64
	nextOID uint
	clock   func() time.Time
}

// NewMemoryPlanRepository creates an empty in-memory plan repository
func NewMemoryPlanRepository() PlanRepository {
	return &memoryPlanRepository{
		plans: make(map[string]*models.MembershipPlan),
		seq:   make(map[string]uint64),
		clock: time.Now,
	}
}

func (r *memoryPlanRepository) List() ([]models.MembershipPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]models.MembershipPlan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, *p.Clone())
	}
	// Newest first, like the SQL repository.
	sort.Slice(plans, func(i, j int) bool {
		return r.seq[plans[i].ID] > r.seq[plans[j].ID]
	})
	return plans, nil
}

func (r *memoryPlanRepository) GetByID(id string) (*models.MembershipPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p.Clone(), nil
}

func (r *memoryPlanRepository) Create(plan *models.MembershipPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.EnsureID()
	if _, exists := r.plans[plan.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	now := r.clock()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.stampOverrides(plan, now)
	r.nextSeq++
	r.seq[plan.ID] = r.nextSeq
	r.plans[plan.ID] = plan.Clone()
	return nil
}

func (r *memoryPlanRepository) Save(plan *models.MembershipPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.EnsureID()
	now := r.clock()
	if existing, ok := r.plans[plan.ID]; ok {
		plan.CreatedAt = existing.CreatedAt
	} else {
		plan.CreatedAt = now
		r.nextSeq++
		r.seq[plan.ID] = r.nextSeq
	}
	plan.UpdatedAt = now
	r.stampOverrides(plan, now)
	r.plans[plan.ID] = plan.Clone()
	return nil
}

func (r *memoryPlanRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.plans, id)
	delete(r.seq, id)
	return nil
}

func (r *memoryPlanRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.plans)), nil
}

func (r *memoryPlanRepository) UpsertOverride(override *models.PlanOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[override.PlanID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := r.clock()
	stored := override.Clone()
	if i := p.FindOverride(override.BranchID); i >= 0 {
		stored.ID = p.Overrides[i].ID
		stored.CreatedAt = p.Overrides[i].CreatedAt
	} else {
		r.nextOID++
		stored.ID = r.nextOID
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	p.PutOverride(stored)
	p.UpdatedAt = now

	override.ID = stored.ID
	override.CreatedAt = stored.CreatedAt
	override.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memoryPlanRepository) DeleteOverride(planID, branchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[planID]
	if !ok || !p.RemoveOverride(branchID) {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = r.clock()
	return nil
}

func (r *memoryPlanRepository) SetActive(planID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[planID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = active
	p.UpdatedAt = r.clock()
	return nil
}

func (r *memoryPlanRepository) stampOverrides(plan *models.MembershipPlan, now time.Time) {
	for i := range plan.Overrides {
		if plan.Overrides[i].ID == 0 {
			r.nextOID++
			plan.Overrides[i].ID = r.nextOID
			plan.Overrides[i].CreatedAt = now
		}
		plan.Overrides[i].UpdatedAt = now
	}
}

// memoryBranchRepository keeps branches in process memory
type memoryBranchRepository struct {
	mu       sync.RWMutex
	branches map[string]models.Branch
}

// NewMemoryBranchRepository creates an empty in-memory branch repository
func NewMemoryBranchRepository() BranchRepository {
	return &memoryBranchRepository{branches: make(map[string]models.Branch)}
}

func (r *memoryBranchRepository) GetAll() ([]models.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryBranchRepository) GetByID(id string) (*models.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *memoryBranchRepository) Create(branch *models.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.branches[branch.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	now := time.Now()
	branch.CreatedAt = now
	branch.UpdatedAt = now
	r.branches[branch.ID] = *branch
	return nil
}
