package main

import (
	"github.com/gymfox/gymfox/app/models"
	"github.com/gymfox/gymfox/app/repository"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

// seedDemoData fills empty in-memory repositories with a few branches and plans
// so the console has something to show.
func seedDemoData(repos *repository.Repositories) error {
	if n, err := repos.Plan.Count(); err != nil || n > 0 {
		return err
	}

	branches := []models.Branch{
		{ID: "hcm-d1", Name: "District 1", Location: "Ho Chi Minh City"},
		{ID: "hcm-td", Name: "Thu Duc", Location: "Ho Chi Minh City"},
		{ID: "hn-hk", Name: "Hoan Kiem", Location: "Ha Noi"},
	}
	for i := range branches {
		if err := repos.Branch.Create(&branches[i]); err != nil {
			return err
		}
	}

	gold := &models.MembershipPlan{
		Name:             "Gold",
		Description:      "Unlimited gym floor access",
		Price:            500000,
		Currency:         "VND",
		DurationInMonths: 1,
		Benefits:         []string{"Gym floor", "Locker", "Sauna"},
		IsActive:         true,
		IsTemplate:       true,
	}
	gold.EnsureID()
	gold.AssignBranches([]string{"hcm-d1", "hcm-td", "hn-hk"})
	gold.PutOverride(models.PlanOverride{BranchID: "hcm-d1", Price: int64Ptr(600000), Name: strPtr("Gold Central")})
	gold.PutOverride(models.PlanOverride{BranchID: "hn-hk", IsActive: boolPtr(false)})

	swim := &models.MembershipPlan{
		Name:             "Swim",
		Description:      "Pool access during opening hours",
		Price:            900000,
		Currency:         "VND",
		DurationInMonths: 3,
		Benefits:         []string{"Pool", "Towel service"},
		IsActive:         true,
		IsTemplate:       false,
	}
	swim.EnsureID()
	swim.AssignBranches([]string{"hcm-td"})

	for _, p := range []*models.MembershipPlan{gold, swim} {
		if err := repos.Plan.Create(p); err != nil {
			return err
		}
	}
	return nil
}
