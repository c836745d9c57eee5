package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/gymfox/gymfox/internal/pkg/membership"
)

// Branch is a gym location plans can be offered at.
type Branch struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id" validate:"required,min=1,max=64"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	Location  string    `gorm:"type:varchar(255)" json:"location" validate:"max=255"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Branch) Validate() error {
	v := validator.New()
	return v.Struct(b)
}

// Ref returns the branch as the resolver references it.
func (b Branch) Ref() membership.BranchRef {
	return membership.BranchRef{ID: b.ID, Name: b.Name, Location: b.Location}
}

// BranchDirectory indexes branches for display lookups.
func BranchDirectory(branches []Branch) membership.BranchMap {
	refs := make([]membership.BranchRef, 0, len(branches))
	for _, b := range branches {
		refs = append(refs, b.Ref())
	}
	return membership.NewBranchMap(refs)
}

func GetAllBranches(db *gorm.DB) ([]Branch, error) {
	var branches []Branch
	err := db.Order("name ASC").Find(&branches).Error
	return branches, err
}
