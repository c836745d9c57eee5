package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDirectory() BranchMap {
	return NewBranchMap([]BranchRef{
		{ID: "branchA", Name: "District 1", Location: "Ho Chi Minh City"},
		{ID: "branchB", Name: "Thu Duc"},
		{ID: "branchC", Name: "Hoan Kiem", Location: "Hanoi"},
	})
}

func TestBranchesToDisplay_TemplateKeepsStoredOrder(t *testing.T) {
	tpl := pureTemplate()
	tpl.AssignedBranches = []string{"branchC", "branchA", "branchB"}

	got := BranchesToDisplay(tpl, Resolve(tpl, ""), testDirectory())

	assert.Equal(t, []string{"branchC", "branchA", "branchB"}, refIDs(got))
}

func TestBranchesToDisplay_OverrideShowsOnlyItsBranch(t *testing.T) {
	tpl := pureTemplate()
	tpl.Overrides = []PlanOverride{{AppliesToBranchID: "branchB", Price: ptr(int64(1))}}

	got := BranchesToDisplay(tpl, Resolve(tpl, "branchB"), testDirectory())

	assert.Equal(t, []BranchRef{{ID: "branchB", Name: "Thu Duc"}}, got)
}

func TestBranchesToDisplay_UnresolvableBranchesAreOmitted(t *testing.T) {
	tpl := pureTemplate()
	tpl.AssignedBranches = []string{"branchA", "closed-branch", "branchB"}
	tpl.Overrides = []PlanOverride{{AppliesToBranchID: "closed-branch", Price: ptr(int64(1))}}

	dir := testDirectory()
	assert.Equal(t, []string{"branchA", "branchB"}, refIDs(BranchesToDisplay(tpl, Resolve(tpl, ""), dir)))

	overrideView := Resolve(tpl, "closed-branch")
	assert.Equal(t, SourceOverride, overrideView.Source)
	got := BranchesToDisplay(tpl, overrideView, dir)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBranchesToDisplay_OverrideOutsideAssignmentIsEmpty(t *testing.T) {
	tpl := pureTemplate()
	tpl.AssignedBranches = []string{"branchA"}
	tpl.Overrides = []PlanOverride{{AppliesToBranchID: "branchB", Price: ptr(int64(1))}}

	assert.Empty(t, BranchesToDisplay(tpl, Resolve(tpl, "branchB"), testDirectory()))
}

func TestBranchesToDisplay_NilDirectory(t *testing.T) {
	tpl := pureTemplate()
	assert.Empty(t, BranchesToDisplay(tpl, Resolve(tpl, ""), nil))
}

func refIDs(refs []BranchRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ID)
	}
	return out
}
