package membership

// Source tells where a resolved view came from.
type Source string

const (
	SourceTemplate Source = "template"
	SourceOverride Source = "override"
)

// ResolvedPlanView is the effective plan visible for one (template, branch) pair.
// It is derived on demand and must be recomputed after any write to the plan.
type ResolvedPlanView struct {
	Name             string
	Description      string
	Price            int64
	Currency         string
	DurationInMonths int
	Benefits         []string
	IsActive         bool
	Source           Source
	// Override is a copy of the matched override when Source is SourceOverride.
	Override *PlanOverride
	// Violations lists integrity problems noticed while resolving. The view is
	// still usable; it was built from template fields only.
	Violations []Violation
}

// Consistent reports whether the view was resolved without integrity problems.
func (v ResolvedPlanView) Consistent() bool {
	return len(v.Violations) == 0
}

// Resolve merges t with the override for branchID, field by field. An empty
// branchID resolves the canonical template view; a branch without an override
// falls back to the template.
func Resolve(t PlanTemplate, branchID string) ResolvedPlanView {
	view := ResolvedPlanView{
		Name:             t.Name,
		Description:      t.Description,
		Price:            t.Price,
		Currency:         t.Currency,
		DurationInMonths: t.DurationInMonths,
		Benefits:         cloneStrings(t.Benefits),
		IsActive:         t.IsActive,
		Source:           SourceTemplate,
	}

	// Standalone plans have no canonical form to override.
	if !t.IsTemplate && len(t.Overrides) > 0 {
		view.Violations = []Violation{standaloneOverridesViolation(len(t.Overrides))}
		return view
	}

	o, ok := t.FindOverride(branchID)
	if !ok {
		return view
	}

	if o.Name != nil {
		view.Name = *o.Name
	}
	if o.Description != nil {
		view.Description = *o.Description
	}
	if o.Price != nil {
		view.Price = *o.Price
	}
	if o.Currency != nil {
		view.Currency = *o.Currency
	}
	if o.DurationInMonths != nil {
		view.DurationInMonths = *o.DurationInMonths
	}
	if o.Benefits != nil {
		view.Benefits = cloneStrings(o.Benefits)
	}
	if o.IsActive != nil {
		view.IsActive = *o.IsActive
	}

	matched := o.Clone()
	view.Source = SourceOverride
	view.Override = &matched
	return view
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
