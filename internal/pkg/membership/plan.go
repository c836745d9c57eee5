// Package membership resolves plan templates and their per-branch overrides
// into the effective plans each branch sees.
package membership

import "time"

// PlanTemplate is a membership plan as the console sees it: either a reusable
// template offered at several branches or a standalone plan bound to one branch.
type PlanTemplate struct {
	ID               string
	Name             string
	Description      string
	Price            int64 // minor units of Currency
	Currency         string
	DurationInMonths int
	Benefits         []string
	IsActive         bool
	IsTemplate       bool
	AssignedBranches []string
	Overrides        []PlanOverride
	UpdatedAt        time.Time
}

// PlanOverride is a branch-scoped diff against a template. A nil field inherits
// the template's current value; for Benefits a nil slice inherits while an empty,
// non-nil slice explicitly clears the list.
type PlanOverride struct {
	AppliesToBranchID string
	Name              *string
	Description       *string
	Price             *int64
	Currency          *string
	DurationInMonths  *int
	Benefits          []string
	IsActive          *bool
}

// Paused reports whether the override explicitly switches its branch off.
func (o PlanOverride) Paused() bool {
	return o.IsActive != nil && !*o.IsActive
}

// HasFields reports whether the override sets at least one field.
func (o PlanOverride) HasFields() bool {
	return o.Name != nil || o.Description != nil || o.Price != nil || o.Currency != nil ||
		o.DurationInMonths != nil || o.Benefits != nil || o.IsActive != nil
}

// Clone returns a deep copy so callers can edit it without touching the template.
func (o PlanOverride) Clone() PlanOverride {
	c := PlanOverride{AppliesToBranchID: o.AppliesToBranchID}
	if o.Name != nil {
		c.Name = ptr(*o.Name)
	}
	if o.Description != nil {
		c.Description = ptr(*o.Description)
	}
	if o.Price != nil {
		c.Price = ptr(*o.Price)
	}
	if o.Currency != nil {
		c.Currency = ptr(*o.Currency)
	}
	if o.DurationInMonths != nil {
		c.DurationInMonths = ptr(*o.DurationInMonths)
	}
	if o.Benefits != nil {
		c.Benefits = append([]string{}, o.Benefits...)
	}
	if o.IsActive != nil {
		c.IsActive = ptr(*o.IsActive)
	}
	return c
}

// FindOverride returns the override targeting branchID, if any.
func (t PlanTemplate) FindOverride(branchID string) (PlanOverride, bool) {
	if branchID == "" {
		return PlanOverride{}, false
	}
	for _, o := range t.Overrides {
		if o.AppliesToBranchID == branchID {
			return o, true
		}
	}
	return PlanOverride{}, false
}

// IsAssigned reports whether the plan is offered at branchID.
func (t PlanTemplate) IsAssigned(branchID string) bool {
	for _, id := range t.AssignedBranches {
		if id == branchID {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T {
	return &v
}
