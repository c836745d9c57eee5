package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gymfox/gymfox/internal/pkg/membership"
)

// MembershipPlan is a plan template or a standalone branch plan. Prices are
// stored in minor units of Currency.
type MembershipPlan struct {
	ID               string         `gorm:"type:char(36);primaryKey" json:"id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Description      string         `gorm:"type:text" json:"description" validate:"max=2000"`
	Price            int64          `gorm:"not null" json:"price" validate:"gte=0"`
	Currency         string         `gorm:"type:char(3);not null" json:"currency" validate:"required,len=3,uppercase"`
	DurationInMonths int            `gorm:"not null" json:"duration_in_months" validate:"required,gte=1,lte=120"`
	Benefits         []string       `gorm:"type:json;serializer:json" json:"benefits" validate:"dive,required,max=255"`
	IsActive         bool           `gorm:"not null;index" json:"is_active"`
	IsTemplate       bool           `gorm:"not null;index" json:"is_template"`
	Branches         []PlanBranch   `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"branches" validate:"-"`
	Overrides        []PlanOverride `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"overrides" validate:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// PlanBranch assigns a plan to a branch. Position keeps the operator's order.
type PlanBranch struct {
	PlanID   string `gorm:"type:char(36);primaryKey" json:"-"`
	BranchID string `gorm:"type:varchar(64);primaryKey" json:"branch_id"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (p *MembershipPlan) Validate() error {
	v := validator.New()
	if err := v.Struct(p); err != nil {
		return err
	}
	for i := range p.Overrides {
		if err := p.Overrides[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EnsureID assigns a fresh UUID to plans that have none yet.
func (p *MembershipPlan) EnsureID() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for i := range p.Overrides {
		p.Overrides[i].PlanID = p.ID
	}
	for i := range p.Branches {
		p.Branches[i].PlanID = p.ID
	}
}

// BranchIDs returns the assigned branch ids in stored order.
func (p *MembershipPlan) BranchIDs() []string {
	ids := make([]string, 0, len(p.Branches))
	for _, b := range p.Branches {
		ids = append(ids, b.BranchID)
	}
	return ids
}

// AssignBranches replaces the branch assignment, keeping the given order and
// dropping repeated ids.
func (p *MembershipPlan) AssignBranches(ids []string) {
	seen := make(map[string]struct{}, len(ids))
	p.Branches = make([]PlanBranch, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p.Branches = append(p.Branches, PlanBranch{PlanID: p.ID, BranchID: id, Position: len(p.Branches)})
	}
}

// Clone returns a deep copy, used to stage a mutation before it is validated.
func (p *MembershipPlan) Clone() *MembershipPlan {
	c := *p
	if p.Benefits != nil {
		c.Benefits = append([]string{}, p.Benefits...)
	}
	c.Branches = append([]PlanBranch(nil), p.Branches...)
	c.Overrides = make([]PlanOverride, 0, len(p.Overrides))
	for _, o := range p.Overrides {
		c.Overrides = append(c.Overrides, o.Clone())
	}
	return &c
}

// Template converts the stored plan into the resolver's representation.
func (p *MembershipPlan) Template() membership.PlanTemplate {
	t := membership.PlanTemplate{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Currency:         p.Currency,
		DurationInMonths: p.DurationInMonths,
		IsActive:         p.IsActive,
		IsTemplate:       p.IsTemplate,
		AssignedBranches: p.BranchIDs(),
		Overrides:        make([]membership.PlanOverride, 0, len(p.Overrides)),
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Benefits != nil {
		t.Benefits = append([]string{}, p.Benefits...)
	}
	for _, o := range p.Overrides {
		t.Overrides = append(t.Overrides, o.Override())
	}
	return t
}

// FindOverride returns the index of the override for branchID, or -1.
func (p *MembershipPlan) FindOverride(branchID string) int {
	for i := range p.Overrides {
		if p.Overrides[i].BranchID == branchID {
			return i
		}
	}
	return -1
}

// PutOverride stores o, replacing an existing override for the same branch.
func (p *MembershipPlan) PutOverride(o PlanOverride) {
	o.PlanID = p.ID
	if i := p.FindOverride(o.BranchID); i >= 0 {
		o.ID = p.Overrides[i].ID
		p.Overrides[i] = o
		return
	}
	p.Overrides = append(p.Overrides, o)
}

// RemoveOverride drops the override for branchID and reports whether one existed.
func (p *MembershipPlan) RemoveOverride(branchID string) bool {
	i := p.FindOverride(branchID)
	if i < 0 {
		return false
	}
	p.Overrides = append(p.Overrides[:i], p.Overrides[i+1:]...)
	return true
}

// Templates converts a list of stored plans, keeping their order.
func Templates(plans []MembershipPlan) []membership.PlanTemplate {
	out := make([]membership.PlanTemplate, 0, len(plans))
	for i := range plans {
		out = append(out, plans[i].Template())
	}
	return out
}
