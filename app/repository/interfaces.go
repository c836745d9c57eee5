package repository

import (
	"github.com/gymfox/gymfox/app/models"
	"gorm.io/gorm"
)

// PlanRepository defines the interface for membership plan operations.
// Plans are always returned with their branch assignment (in stored order)
// and their overrides preloaded.
type PlanRepository interface {
	List() ([]models.MembershipPlan, error)
	GetByID(id string) (*models.MembershipPlan, error)
	Create(plan *models.MembershipPlan) error
	// Save replaces the plan row, its branch assignment and its overrides
	// in one transaction.
	Save(plan *models.MembershipPlan) error
	Delete(id string) error
	Count() (int64, error)
	UpsertOverride(override *models.PlanOverride) error
	DeleteOverride(planID, branchID string) error
	SetActive(planID string, active bool) error
}

// BranchRepository defines the interface for branch operations
type BranchRepository interface {
	GetAll() ([]models.Branch, error)
	GetByID(id string) (*models.Branch, error)
	Create(branch *models.Branch) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Plan   PlanRepository
	Branch BranchRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Plan:   NewPlanRepository(db),
		Branch: NewBranchRepository(db),
	}
}

// NewMemoryRepositories creates process-local repositories, used for demo mode and tests
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Plan:   NewMemoryPlanRepository(),
		Branch: NewMemoryBranchRepository(),
	}
}
