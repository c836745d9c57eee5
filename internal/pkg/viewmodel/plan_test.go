package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymfox/gymfox/internal/pkg/membership"
)

func price(v int64) *int64 { return &v }
func flag(v bool) *bool    { return &v }

func goldTemplate() membership.PlanTemplate {
	return membership.PlanTemplate{
		ID:               "plan-gold",
		Name:             "Gold",
		Price:            500000,
		Currency:         "VND",
		DurationInMonths: 1,
		IsActive:         true,
		IsTemplate:       true,
		AssignedBranches: []string{"branchA", "branchB"},
		Overrides: []membership.PlanOverride{
			{AppliesToBranchID: "branchA", Price: price(400000)},
			{AppliesToBranchID: "branchB", IsActive: flag(false)},
		},
	}
}

func directory() membership.BranchMap {
	return membership.NewBranchMap([]membership.BranchRef{
		{ID: "branchA", Name: "District 1"},
		{ID: "branchB", Name: "Thu Duc"},
	})
}

func TestNewPlanCard_Override(t *testing.T) {
	card := NewPlanCard(goldTemplate(), "branchA", directory())

	assert.Equal(t, int64(400000), card.Price)
	assert.Equal(t, "400,000 VND", card.PriceLabel)
	assert.Equal(t, membership.SourceOverride, card.Source)
	assert.Equal(t, "branchA", card.OverrideBranchID)
	assert.Equal(t, []membership.BranchRef{{ID: "branchA", Name: "District 1"}}, card.Branches)
	assert.NotNil(t, card.Benefits)
	assert.Empty(t, card.Warnings)
}

func TestNewPlanCard_Template(t *testing.T) {
	card := NewPlanCard(goldTemplate(), "", directory())

	assert.Equal(t, "500,000 VND", card.PriceLabel)
	assert.Equal(t, membership.SourceTemplate, card.Source)
	assert.Empty(t, card.OverrideBranchID)
	assert.Len(t, card.Branches, 2)
}

func TestNewPlanDetail(t *testing.T) {
	detail := NewPlanDetail(goldTemplate(), "branchB", directory())

	assert.False(t, detail.IsActive)
	assert.True(t, detail.Canonical.IsActive)
	require.Len(t, detail.Overrides, 2)
	assert.Equal(t, "District 1", detail.Overrides[0].BranchName)
	assert.Equal(t, []string{"price"}, detail.Overrides[0].Fields)
	assert.False(t, detail.Overrides[0].Paused)
	assert.True(t, detail.Overrides[1].Paused)
	assert.NotNil(t, detail.Violations)
	assert.Empty(t, detail.Violations)
}

func TestNewPlanDetail_ReportsViolations(t *testing.T) {
	tpl := goldTemplate()
	tpl.IsTemplate = false

	detail := NewPlanDetail(tpl, "branchA", directory())

	assert.NotEmpty(t, detail.Warnings)
	assert.Len(t, detail.Violations, 2)
	// Best effort: template fields only.
	assert.Equal(t, int64(500000), detail.Price)
}

func TestPlanCardJSON(t *testing.T) {
	raw, err := json.Marshal(NewPlanCard(goldTemplate(), "", directory()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "template", decoded["source"])
	assert.Equal(t, []any{}, decoded["benefits"])
	_, hasWarnings := decoded["warnings"]
	assert.False(t, hasWarnings)
}

func TestOverrideRowJSONKeepsClearedBenefits(t *testing.T) {
	tpl := goldTemplate()
	tpl.Overrides[0].Benefits = []string{}

	raw, err := json.Marshal(NewPlanDetail(tpl, "", directory()))
	require.NoError(t, err)

	var decoded struct {
		Overrides []map[string]any `json:"overrides"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Overrides, 2)

	cleared := decoded.Overrides[0]
	assert.Equal(t, []any{}, cleared["benefits"])
	assert.Contains(t, cleared["fields"], "benefits")

	inherited := decoded.Overrides[1]
	v, present := inherited["benefits"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		minor    int64
		currency string
		want     string
	}{
		{minor: 500000, currency: "VND", want: "500,000 VND"},
		{minor: 1999, currency: "USD", want: "19.99 USD"},
		{minor: 0, currency: "vnd", want: "0 VND"},
		{minor: 1500, currency: "", want: "1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.minor, tt.currency))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 month", FormatDuration(1))
	assert.Equal(t, "3 months", FormatDuration(3))
	assert.Equal(t, "1 year", FormatDuration(12))
	assert.Equal(t, "2 years", FormatDuration(24))
	assert.Equal(t, "18 months", FormatDuration(18))
}
