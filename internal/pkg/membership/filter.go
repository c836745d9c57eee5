package membership

import (
	"strings"

	"golang.org/x/text/cases"
)

type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

type ViewMode string

const (
	ViewAll    ViewMode = "all"
	ViewBase   ViewMode = "base"
	ViewCustom ViewMode = "custom"
)

// ParseStatusFilter normalizes query input; anything unknown means StatusAll.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive
	case StatusInactive:
		return StatusInactive
	default:
		return StatusAll
	}
}

// ParseViewMode normalizes query input; anything unknown means ViewAll.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewBase:
		return ViewBase
	case ViewCustom:
		return ViewCustom
	default:
		return ViewAll
	}
}

// FilterOptions are the console's list selections. The zero value keeps everything
// and resolves against the canonical template view.
type FilterOptions struct {
	BranchID   string
	SearchText string
	Status     StatusFilter
	View       ViewMode
}

// Filter returns the plans matching opts, in input order. Text and status are
// matched against the view resolved for opts.BranchID, never the raw template.
func Filter(templates []PlanTemplate, opts FilterOptions) []PlanTemplate {
	needle := opts.SearchText
	var fold cases.Caser
	if needle != "" {
		fold = cases.Fold()
		needle = fold.String(needle)
	}

	out := make([]PlanTemplate, 0, len(templates))
	for _, t := range templates {
		if !matchesViewMode(t, opts.View) {
			continue
		}
		view := Resolve(t, opts.BranchID)
		if !matchesStatus(view, opts.Status) {
			continue
		}
		if needle != "" && !matchesText(view, needle, fold) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesViewMode(t PlanTemplate, mode ViewMode) bool {
	switch mode {
	case ViewBase:
		return t.IsTemplate
	case ViewCustom:
		return !t.IsTemplate
	default:
		return true
	}
}

func matchesStatus(view ResolvedPlanView, status StatusFilter) bool {
	switch status {
	case StatusActive:
		return view.IsActive
	case StatusInactive:
		return !view.IsActive
	default:
		return true
	}
}

func matchesText(view ResolvedPlanView, needle string, fold cases.Caser) bool {
	if strings.Contains(fold.String(view.Name), needle) {
		return true
	}
	if strings.Contains(fold.String(view.Description), needle) {
		return true
	}
	for _, b := range view.Benefits {
		if strings.Contains(fold.String(b), needle) {
			return true
		}
	}
	return false
}
