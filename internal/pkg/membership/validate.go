package membership

import (
	"fmt"
	"strings"
)

// ViolationCode identifies which plan invariant was broken.
type ViolationCode string

const (
	ViolationUnassignedBranch    ViolationCode = "unassigned_branch"
	ViolationDuplicateOverride   ViolationCode = "duplicate_override"
	ViolationStandaloneOverrides ViolationCode = "standalone_overrides"
	ViolationStandaloneBranches  ViolationCode = "standalone_branches"
)

// Violation describes one broken invariant of a plan's override collection.
type Violation struct {
	Code     ViolationCode `json:"code"`
	BranchID string        `json:"branch_id,omitempty"`
	Message  string        `json:"message"`
}

func (v Violation) String() string {
	return string(v.Code) + ": " + v.Message
}

// ViolationError carries a non-empty list of violations through error returns.
type ViolationError struct {
	PlanID     string
	Violations []Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	if e.PlanID == "" {
		return "plan integrity violated: " + strings.Join(parts, "; ")
	}
	return fmt.Sprintf("plan %s integrity violated: %s", e.PlanID, strings.Join(parts, "; "))
}

// Check validates t and wraps any violations in a *ViolationError.
func Check(t PlanTemplate) error {
	violations := Validate(t)
	if len(violations) == 0 {
		return nil
	}
	return &ViolationError{PlanID: t.ID, Violations: violations}
}

// Validate reports every invariant violation of t, in check order. It never
// mutates t and returns nil for a consistent plan.
func Validate(t PlanTemplate) []Violation {
	var violations []Violation

	assigned := make(map[string]struct{}, len(t.AssignedBranches))
	for _, id := range t.AssignedBranches {
		assigned[id] = struct{}{}
	}
	for _, o := range t.Overrides {
		if _, ok := assigned[o.AppliesToBranchID]; !ok {
			violations = append(violations, Violation{
				Code:     ViolationUnassignedBranch,
				BranchID: o.AppliesToBranchID,
				Message:  fmt.Sprintf("override targets branch %q which is not assigned to the plan", o.AppliesToBranchID),
			})
		}
	}

	seen := make(map[string]int, len(t.Overrides))
	for _, o := range t.Overrides {
		seen[o.AppliesToBranchID]++
		// Report each duplicated branch once.
		if seen[o.AppliesToBranchID] == 2 {
			violations = append(violations, Violation{
				Code:     ViolationDuplicateOverride,
				BranchID: o.AppliesToBranchID,
				Message:  fmt.Sprintf("more than one override targets branch %q", o.AppliesToBranchID),
			})
		}
	}

	if !t.IsTemplate {
		if len(t.Overrides) > 0 {
			violations = append(violations, standaloneOverridesViolation(len(t.Overrides)))
		}
		if len(t.AssignedBranches) != 1 {
			violations = append(violations, Violation{
				Code:    ViolationStandaloneBranches,
				Message: fmt.Sprintf("standalone plan must be assigned to exactly one branch, has %d", len(t.AssignedBranches)),
			})
		}
	}

	return violations
}

func standaloneOverridesViolation(n int) Violation {
	return Violation{
		Code:    ViolationStandaloneOverrides,
		Message: fmt.Sprintf("standalone plan cannot carry overrides, has %d", n),
	}
}
