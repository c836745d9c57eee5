package models

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gymfox/gymfox/internal/pkg/membership"
)

// PlanOverride is a branch-specific diff on a membership plan. NULL columns
// inherit the plan's current value; a NULL benefits column inherits while an
// empty JSON array clears the list.
type PlanOverride struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PlanID           string    `gorm:"type:char(36);not null;index:ux_plan_overrides_branch,unique,priority:1" json:"plan_id"`
	BranchID         string    `gorm:"type:varchar(64);not null;index:ux_plan_overrides_branch,unique,priority:2" json:"branch_id" validate:"required,max=64"`
	Name             *string   `gorm:"type:varchar(255)" json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description      *string   `gorm:"type:text" json:"description,omitempty" validate:"omitempty,max=2000"`
	Price            *int64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency         *string   `gorm:"type:char(3)" json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	DurationInMonths *int      `json:"duration_in_months,omitempty" validate:"omitempty,gte=1,lte=120"`
	Benefits         []string  `gorm:"type:json;serializer:json" json:"benefits" validate:"omitempty,dive,required,max=255"`
	IsActive         *bool     `json:"is_active,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *PlanOverride) Validate() error {
	v := validator.New()
	return v.Struct(o)
}

// Override converts the row into the resolver's representation.
func (o PlanOverride) Override() membership.PlanOverride {
	return membership.PlanOverride{
		AppliesToBranchID: o.BranchID,
		Name:              o.Name,
		Description:       o.Description,
		Price:             o.Price,
		Currency:          o.Currency,
		DurationInMonths:  o.DurationInMonths,
		Benefits:          o.Benefits,
		IsActive:          o.IsActive,
	}.Clone()
}

// Clone returns a deep copy of the row.
func (o PlanOverride) Clone() PlanOverride {
	c := o.Override()
	o.Name = c.Name
	o.Description = c.Description
	o.Price = c.Price
	o.Currency = c.Currency
	o.DurationInMonths = c.DurationInMonths
	o.Benefits = c.Benefits
	o.IsActive = c.IsActive
	return o
}
