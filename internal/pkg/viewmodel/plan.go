package viewmodel

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gymfox/gymfox/internal/pkg/membership"
)

// PlanCard is one plan as a list row or card shows it, resolved for a branch.
type PlanCard struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	Price            int64                  `json:"price"`
	Currency         string                 `json:"currency"`
	PriceLabel       string                 `json:"price_label"`
	DurationInMonths int                    `json:"duration_in_months"`
	DurationLabel    string                 `json:"duration_label"`
	Benefits         []string               `json:"benefits"`
	IsActive         bool                   `json:"is_active"`
	IsTemplate       bool                   `json:"is_template"`
	Source           membership.Source      `json:"source"`
	OverrideBranchID string                 `json:"override_branch_id,omitempty"`
	Branches         []membership.BranchRef `json:"branches"`
	Warnings         []membership.Violation `json:"warnings,omitempty"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// OverrideRow describes one branch override on the plan detail page.
type OverrideRow struct {
	BranchID         string   `json:"branch_id"`
	BranchName       string   `json:"branch_name"`
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Price            *int64   `json:"price,omitempty"`
	Currency         *string  `json:"currency,omitempty"`
	DurationInMonths *int     `json:"duration_in_months,omitempty"`
	Benefits         []string `json:"benefits"`
	IsActive         *bool    `json:"is_active,omitempty"`
	Fields           []string `json:"fields"`
	Paused           bool     `json:"paused"`
}

// PlanDetail is the plan detail page: the view for the requested branch, the
// canonical template view and every override.
type PlanDetail struct {
	PlanCard
	Canonical  PlanCard               `json:"canonical"`
	Overrides  []OverrideRow          `json:"overrides"`
	Violations []membership.Violation `json:"violations"`
}

// NewPlanCard resolves t for branchID and decorates the view for display.
func NewPlanCard(t membership.PlanTemplate, branchID string, dir membership.BranchDirectory) PlanCard {
	view := membership.Resolve(t, branchID)

	card := PlanCard{
		ID:               t.ID,
		Name:             view.Name,
		Description:      view.Description,
		Price:            view.Price,
		Currency:         view.Currency,
		PriceLabel:       FormatPrice(view.Price, view.Currency),
		DurationInMonths: view.DurationInMonths,
		DurationLabel:    FormatDuration(view.DurationInMonths),
		Benefits:         view.Benefits,
		IsActive:         view.IsActive,
		IsTemplate:       t.IsTemplate,
		Source:           view.Source,
		Branches:         membership.BranchesToDisplay(t, view, dir),
		Warnings:         view.Violations,
		UpdatedAt:        t.UpdatedAt,
	}
	if card.Benefits == nil {
		card.Benefits = []string{}
	}
	if view.Override != nil {
		card.OverrideBranchID = view.Override.AppliesToBranchID
	}
	return card
}

// NewPlanCards builds cards for every template, keeping their order.
func NewPlanCards(templates []membership.PlanTemplate, branchID string, dir membership.BranchDirectory) []PlanCard {
	cards := make([]PlanCard, 0, len(templates))
	for _, t := range templates {
		cards = append(cards, NewPlanCard(t, branchID, dir))
	}
	return cards
}

// NewPlanDetail builds the detail page for t as seen from branchID.
func NewPlanDetail(t membership.PlanTemplate, branchID string, dir membership.BranchDirectory) PlanDetail {
	detail := PlanDetail{
		PlanCard:   NewPlanCard(t, branchID, dir),
		Canonical:  NewPlanCard(t, "", dir),
		Overrides:  make([]OverrideRow, 0, len(t.Overrides)),
		Violations: membership.Validate(t),
	}
	if detail.Violations == nil {
		detail.Violations = []membership.Violation{}
	}
	for _, o := range t.Overrides {
		detail.Overrides = append(detail.Overrides, newOverrideRow(o, dir))
	}
	return detail
}

func newOverrideRow(o membership.PlanOverride, dir membership.BranchDirectory) OverrideRow {
	c := o.Clone()
	row := OverrideRow{
		BranchID:         c.AppliesToBranchID,
		Name:             c.Name,
		Description:      c.Description,
		Price:            c.Price,
		Currency:         c.Currency,
		DurationInMonths: c.DurationInMonths,
		Benefits:         c.Benefits,
		IsActive:         c.IsActive,
		Fields:           OverriddenFields(c),
		Paused:           c.Paused(),
	}
	if dir != nil {
		if ref, ok := dir.LookupBranch(c.AppliesToBranchID); ok {
			row.BranchName = ref.Name
		}
	}
	return row
}

// OverriddenFields lists the fields o sets, in display order.
func OverriddenFields(o membership.PlanOverride) []string {
	fields := make([]string, 0, 7)
	if o.Name != nil {
		fields = append(fields, "name")
	}
	if o.Description != nil {
		fields = append(fields, "description")
	}
	if o.Price != nil {
		fields = append(fields, "price")
	}
	if o.Currency != nil {
		fields = append(fields, "currency")
	}
	if o.DurationInMonths != nil {
		fields = append(fields, "duration_in_months")
	}
	if o.Benefits != nil {
		fields = append(fields, "benefits")
	}
	if o.IsActive != nil {
		fields = append(fields, "is_active")
	}
	return fields
}

// FormatPrice renders a minor-unit amount with digit grouping, e.g. "500,000 VND"
// or "19.99 USD". Unknown currency codes are printed without a decimal shift.
func FormatPrice(minor int64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	scale := 0
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	printer := message.NewPrinter(language.English)
	var amount string
	if scale == 0 {
		amount = printer.Sprint(number.Decimal(minor))
	} else {
		major := float64(minor) / math.Pow10(scale)
		amount = printer.Sprint(number.Decimal(major, number.Scale(scale)))
	}
	if code == "" {
		return amount
	}
	return amount + " " + code
}

// FormatDuration renders a billing period length.
func FormatDuration(months int) string {
	printer := message.NewPrinter(language.English)
	switch {
	case months == 1:
		return "1 month"
	case months == 12:
		return "1 year"
	case months > 12 && months%12 == 0:
		return printer.Sprintf("%d years", months/12)
	default:
		return printer.Sprintf("%d months", months)
	}
}
