package membership

// BranchRef is a branch as supplied by the external branch store.
type BranchRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// BranchDirectory resolves branch ids to display data.
type BranchDirectory interface {
	LookupBranch(id string) (BranchRef, bool)
}

// BranchMap is a BranchDirectory backed by a map keyed by branch id.
type BranchMap map[string]BranchRef

// NewBranchMap indexes refs by id.
func NewBranchMap(refs []BranchRef) BranchMap {
	m := make(BranchMap, len(refs))
	for _, ref := range refs {
		m[ref.ID] = ref
	}
	return m
}

func (m BranchMap) LookupBranch(id string) (BranchRef, bool) {
	ref, ok := m[id]
	return ref, ok
}

// BranchesToDisplay picks the branches relevant to view. An override view shows
// only its own branch; a template view shows every assigned branch in stored
// order. Ids the directory cannot resolve are left out.
func BranchesToDisplay(t PlanTemplate, view ResolvedPlanView, dir BranchDirectory) []BranchRef {
	if view.Source == SourceOverride {
		if view.Override == nil || !t.IsAssigned(view.Override.AppliesToBranchID) {
			return []BranchRef{}
		}
		ref, ok := lookup(dir, view.Override.AppliesToBranchID)
		if !ok {
			return []BranchRef{}
		}
		return []BranchRef{ref}
	}

	out := make([]BranchRef, 0, len(t.AssignedBranches))
	for _, id := range t.AssignedBranches {
		if ref, ok := lookup(dir, id); ok {
			out = append(out, ref)
		}
	}
	return out
}

func lookup(dir BranchDirectory, id string) (BranchRef, bool) {
	if dir == nil {
		return BranchRef{}, false
	}
	return dir.LookupBranch(id)
}
