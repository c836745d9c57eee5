package plans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gymfox/gymfox/app/models"
	"github.com/gymfox/gymfox/internal/pkg/membership"
)

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrOverrideNotFound = errors.New("override not found")
	ErrInvalidInput     = errors.New("invalid input")
)

var validate = validator.New()

// PlanInput is the editable part of a plan as the admin console submits it.
type PlanInput struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Description      string   `json:"description" validate:"max=2000"`
	Price            int64    `json:"price" validate:"gte=0"`
	Currency         string   `json:"currency" validate:"required,len=3"`
	DurationInMonths int      `json:"duration_in_months" validate:"required,gte=1,lte=120"`
	Benefits         []string `json:"benefits" validate:"dive,required,max=255"`
	IsActive         bool     `json:"is_active"`
	IsTemplate       bool     `json:"is_template"`
	Branches         []string `json:"branches" validate:"dive,required,max=64"`
}

// Validate checks the payload shape; plan invariants are checked separately.
func (in *PlanInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (in *PlanInput) apply(p *models.MembershipPlan) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	p.DurationInMonths = in.DurationInMonths
	p.Benefits = trimAll(in.Benefits)
	if p.Benefits == nil {
		p.Benefits = []string{}
	}
	p.IsActive = in.IsActive
	p.IsTemplate = in.IsTemplate
	p.AssignBranches(in.Branches)
}

// OverrideInput is a branch override as submitted. Omitted fields inherit from
// the plan; "benefits": [] clears the list for the branch.
type OverrideInput struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	Price            *int64   `json:"price" validate:"omitempty,gte=0"`
	Currency         *string  `json:"currency" validate:"omitempty,len=3"`
	DurationInMonths *int     `json:"duration_in_months" validate:"omitempty,gte=1,lte=120"`
	Benefits         []string `json:"benefits" validate:"omitempty,dive,required,max=255"`
	IsActive         *bool    `json:"is_active"`
}

// Validate checks the payload shape and rejects overrides that set nothing.
func (in *OverrideInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !in.override("").HasFields() {
		return fmt.Errorf("%w: override sets no fields, delete it instead", ErrInvalidInput)
	}
	return nil
}

func (in *OverrideInput) override(branchID string) membership.PlanOverride {
	o := membership.PlanOverride{
		AppliesToBranchID: branchID,
		Name:              trimPtr(in.Name),
		Description:       trimPtr(in.Description),
		Price:             in.Price,
		Currency:          trimPtr(in.Currency),
		DurationInMonths:  in.DurationInMonths,
		Benefits:          trimAll(in.Benefits),
		IsActive:          in.IsActive,
	}
	if o.Currency != nil {
		upper := strings.ToUpper(*o.Currency)
		o.Currency = &upper
	}
	return o.Clone()
}

func (in *OverrideInput) row(planID, branchID string) models.PlanOverride {
	o := in.override(branchID)
	return models.PlanOverride{
		PlanID:           planID,
		BranchID:         branchID,
		Name:             o.Name,
		Description:      o.Description,
		Price:            o.Price,
		Currency:         o.Currency,
		DurationInMonths: o.DurationInMonths,
		Benefits:         o.Benefits,
		IsActive:         o.IsActive,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// trimAll keeps nil and empty distinct.
func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
