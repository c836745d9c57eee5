package repository

import (
	"github.com/gymfox/gymfox/app/models"
	"gorm.io/gorm"
)

// branchRepository implements the BranchRepository interface
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository instance
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

// GetAll retrieves all branches ordered by name
func (r *branchRepository) GetAll() ([]models.Branch, error) {
	return models.GetAllBranches(r.db)
}

// GetByID retrieves a branch by its ID
func (r *branchRepository) GetByID(id string) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.Where("id = ?", id).First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// Create creates a new branch in the database
func (r *branchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}
