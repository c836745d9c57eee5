package repository

import (
	"time"

	"github.com/gymfox/gymfox/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func preloadPlan(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Branches", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Overrides", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

// List retrieves all plans, newest first
func (r *planRepository) List() ([]models.MembershipPlan, error) {
	var plans []models.MembershipPlan
	err := preloadPlan(r.db).Order("created_at DESC").Order("id ASC").Find(&plans).Error
	return plans, err
}

// GetByID retrieves a plan by its ID
func (r *planRepository) GetByID(id string) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := preloadPlan(r.db).Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create inserts a plan together with its branch assignment and overrides
func (r *planRepository) Create(plan *models.MembershipPlan) error {
	plan.EnsureID()
	return r.db.Create(plan).Error
}

func (r *planRepository) Save(plan *models.MembershipPlan) error {
	plan.EnsureID()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(plan).Error; err != nil {
			return err
		}

		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.PlanBranch{}).Error; err != nil {
			return err
		}
		if len(plan.Branches) > 0 {
			if err := tx.Create(&plan.Branches).Error; err != nil {
				return err
			}
		}

		keep := make([]string, 0, len(plan.Overrides))
		for _, o := range plan.Overrides {
			keep = append(keep, o.BranchID)
		}
		stale := tx.Where("plan_id = ?", plan.ID)
		if len(keep) > 0 {
			stale = stale.Where("branch_id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.PlanOverride{}).Error; err != nil {
			return err
		}
		for i := range plan.Overrides {
			if err := upsertOverride(tx, &plan.Overrides[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a plan and everything it owns
func (r *planRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&models.PlanOverride{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", id).Delete(&models.PlanBranch{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.MembershipPlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Count returns the total number of plans
func (r *planRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MembershipPlan{}).Count(&count).Error
	return count, err
}

// UpsertOverride stores an override keyed by (plan, branch); unset fields are
// written as NULL so they inherit again. The plan's updated_at moves with it.
func (r *planRepository) UpsertOverride(override *models.PlanOverride) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := touchPlan(tx, override.PlanID); err != nil {
			return err
		}
		return upsertOverride(tx, override)
	})
}

// touchPlan bumps updated_at on the plan row, gorm.ErrRecordNotFound when the
// plan does not exist.
func touchPlan(tx *gorm.DB, planID string) error {
	res := tx.Model(&models.MembershipPlan{}).Where("id = ?", planID).Update("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func upsertOverride(db *gorm.DB, override *models.PlanOverride) error {
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "plan_id"},
			{Name: "branch_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"description",
			"price",
			"currency",
			"duration_in_months",
			"benefits",
			"is_active",
			"updated_at",
		}),
	}).Create(override).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return db.Where("plan_id = ? AND branch_id = ?", override.PlanID, override.BranchID).
		First(override).Error
}

func (r *planRepository) DeleteOverride(planID, branchID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("plan_id = ? AND branch_id = ?", planID, branchID).Delete(&models.PlanOverride{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return touchPlan(tx, planID)
	})
}

func (r *planRepository) SetActive(planID string, active bool) error {
	return r.db.Model(&models.MembershipPlan{}).Where("id = ?", planID).Update("is_active", active).Error
}
