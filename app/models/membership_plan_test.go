package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymfox/gymfox/internal/pkg/membership"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func newGoldPlan() *MembershipPlan {
	p := &MembershipPlan{
		Name:             "Gold",
		Description:      "Unlimited gym floor access",
		Price:            500000,
		Currency:         "VND",
		DurationInMonths: 1,
		Benefits:         []string{"Gym floor", "Locker"},
		IsActive:         true,
		IsTemplate:       true,
	}
	p.EnsureID()
	p.AssignBranches([]string{"branchA", "branchB"})
	return p
}

func TestMembershipPlanValidate(t *testing.T) {
	p := newGoldPlan()
	require.NoError(t, p.Validate())

	p.Currency = "vnd"
	assert.Error(t, p.Validate())

	p.Currency = "VND"
	p.DurationInMonths = 0
	assert.Error(t, p.Validate())

	p.DurationInMonths = 1
	p.Price = -1
	assert.Error(t, p.Validate())

	p.Price = 0
	p.Overrides = []PlanOverride{{BranchID: "branchA", Currency: strPtr("usd")}}
	assert.Error(t, p.Validate())
}

func TestMembershipPlanEnsureID(t *testing.T) {
	p := newGoldPlan()
	assert.Len(t, p.ID, 36)

	id := p.ID
	p.EnsureID()
	assert.Equal(t, id, p.ID)
	for _, b := range p.Branches {
		assert.Equal(t, id, b.PlanID)
	}
}

func TestMembershipPlanAssignBranchesKeepsOrder(t *testing.T) {
	p := newGoldPlan()
	p.AssignBranches([]string{"branchC", "", "branchA", "branchC"})

	assert.Equal(t, []string{"branchC", "branchA"}, p.BranchIDs())
	assert.Equal(t, 0, p.Branches[0].Position)
	assert.Equal(t, 1, p.Branches[1].Position)
}

func TestMembershipPlanTemplate(t *testing.T) {
	p := newGoldPlan()
	p.Overrides = []PlanOverride{
		{BranchID: "branchA", Price: int64Ptr(400000)},
		{BranchID: "branchB", IsActive: boolPtr(false)},
	}

	tpl := p.Template()
	assert.Equal(t, p.ID, tpl.ID)
	assert.Equal(t, []string{"branchA", "branchB"}, tpl.AssignedBranches)
	require.Len(t, tpl.Overrides, 2)
	assert.Equal(t, "branchA", tpl.Overrides[0].AppliesToBranchID)
	assert.Nil(t, tpl.Overrides[0].Name)

	view := membership.Resolve(tpl, "branchA")
	assert.Equal(t, int64(400000), view.Price)
	assert.Equal(t, "Gold", view.Name)

	// The template must not alias the model.
	*tpl.Overrides[0].Price = 1
	assert.Equal(t, int64(400000), *p.Overrides[0].Price)
}

func TestMembershipPlanPutOverrideReplaces(t *testing.T) {
	p := newGoldPlan()
	p.PutOverride(PlanOverride{ID: 7, BranchID: "branchA", Price: int64Ptr(400000)})
	p.PutOverride(PlanOverride{BranchID: "branchA", Name: strPtr("Gold A")})

	require.Len(t, p.Overrides, 1)
	assert.Equal(t, uint(7), p.Overrides[0].ID)
	assert.Equal(t, p.ID, p.Overrides[0].PlanID)
	assert.Nil(t, p.Overrides[0].Price)
	assert.Equal(t, "Gold A", *p.Overrides[0].Name)

	assert.True(t, p.RemoveOverride("branchA"))
	assert.False(t, p.RemoveOverride("branchA"))
	assert.Empty(t, p.Overrides)
}

func TestMembershipPlanPutOverrideKeepsOneRowPerBranch(t *testing.T) {
	p := newGoldPlan()
	p.PutOverride(PlanOverride{BranchID: "branchA", Price: int64Ptr(400000)})
	p.PutOverride(PlanOverride{BranchID: "branchB", IsActive: boolPtr(false)})
	p.PutOverride(PlanOverride{BranchID: "branchA", Name: strPtr("Gold A")})

	require.Len(t, p.Overrides, 2)
	assert.Equal(t, "branchA", p.Overrides[0].BranchID)
	assert.Equal(t, "branchB", p.Overrides[1].BranchID)
	assert.Empty(t, membership.Validate(p.Template()))

	assert.True(t, p.RemoveOverride("branchA"))
	require.Len(t, p.Overrides, 1)
	assert.Equal(t, "branchB", p.Overrides[0].BranchID)
}

func TestMembershipPlanClone(t *testing.T) {
	p := newGoldPlan()
	p.PutOverride(PlanOverride{BranchID: "branchA", Benefits: []string{"Yoga"}})

	c := p.Clone()
	c.Benefits[0] = "changed"
	c.Overrides[0].Benefits[0] = "changed"
	c.AssignBranches([]string{"branchZ"})

	assert.Equal(t, "Gym floor", p.Benefits[0])
	assert.Equal(t, "Yoga", p.Overrides[0].Benefits[0])
	assert.Equal(t, []string{"branchA", "branchB"}, p.BranchIDs())
}

func TestBranchDirectory(t *testing.T) {
	dir := BranchDirectory([]Branch{{ID: "branchA", Name: "District 1"}})

	ref, ok := dir.LookupBranch("branchA")
	assert.True(t, ok)
	assert.Equal(t, "District 1", ref.Name)

	_, ok = dir.LookupBranch("branchB")
	assert.False(t, ok)
}

func TestPlanOverrideJSONBenefits(t *testing.T) {
	cleared := PlanOverride{BranchID: "branchA", Benefits: []string{}}
	raw, err := json.Marshal(cleared)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"benefits":[]`)

	var back PlanOverride
	require.NoError(t, json.Unmarshal(raw, &back))
	require.NotNil(t, back.Benefits)
	assert.Empty(t, back.Benefits)
	assert.True(t, back.Override().HasFields())

	raw, err = json.Marshal(PlanOverride{BranchID: "branchA"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"benefits":null`)
	back = PlanOverride{}
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Nil(t, back.Benefits)
}
