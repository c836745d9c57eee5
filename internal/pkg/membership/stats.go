package membership

// Stats are fleet-wide plan counters for the console header.
type Stats struct {
	TotalPlans           int `json:"total_plans"`
	ActivePlans          int `json:"active_plans"`
	CustomVersions       int `json:"custom_versions"`
	PausedCustomVersions int `json:"paused_custom_versions"`
}

// Aggregate recomputes Stats from scratch. ActivePlans counts template-level
// activity only; an override that omits IsActive is not paused.
func Aggregate(templates []PlanTemplate) Stats {
	s := Stats{TotalPlans: len(templates)}
	for _, t := range templates {
		if t.IsActive {
			s.ActivePlans++
		}
		s.CustomVersions += len(t.Overrides)
		for _, o := range t.Overrides {
			if o.Paused() {
				s.PausedCustomVersions++
			}
		}
	}
	return s
}
