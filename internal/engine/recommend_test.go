package engine

import (
	"strings"
	"testing"

	"github.com/nkov/cogwatt/internal/core"
)

// budgets builds a domain map from remaining values with 0.25 capacity.
func budgets(remaining map[core.Domain]float64) map[core.Domain]core.DomainBudget {
	out := make(map[core.Domain]core.DomainBudget, len(core.AllDomains))
	for _, d := range core.AllDomains {
		r := 0.25
		if v, ok := remaining[d]; ok {
			r = v
		}
		out[d] = core.DomainBudget{
			Capacity:  0.25,
			Spent:     0.25 - r,
			Remaining: r,
			Status:    core.StatusFor(r, 0.25),
		}
	}
	return out
}

func TestRecommendationsAllHealthy(t *testing.T) {
	recs := recommendationsFor(budgets(nil))
	if len(recs) != 0 {
		t.Errorf("recs = %v, want none", recs)
	}
}

func TestRecommendationsPointAtHealthyHelpers(t *testing.T) {
	recs := recommendationsFor(budgets(map[core.Domain]float64{core.Work: 0.0}))
	if len(recs) != 2 {
		t.Fatalf("got %d recs, want 2 (both work helpers healthy): %v", len(recs), recs)
	}
	// Helper order for work is health, then social
	if !strings.Contains(recs[0], "health") {
		t.Errorf("first rec should lean on health: %q", recs[0])
	}
	if !strings.Contains(recs[1], "social") {
		t.Errorf("second rec should lean on social: %q", recs[1])
	}
}

func TestRecommendationsSkipUnhealthyHelpers(t *testing.T) {
	recs := recommendationsFor(budgets(map[core.Domain]float64{
		core.Work:   0.0,
		core.Health: 0.01, // depleted, cannot help
	}))
	for _, r := range recs {
		if strings.Contains(r, "through health") {
			t.Errorf("depleted helper recommended: %q", r)
		}
	}
}

func TestRecommendationsMostDepletedFirst(t *testing.T) {
	recs := recommendationsFor(budgets(map[core.Domain]float64{
		core.Work:     0.05,  // depleted
		core.Learning: -0.10, // overdrawn, worse
	}))
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	if !strings.Contains(recs[0], "learning energy") {
		t.Errorf("most depleted domain should lead: %q", recs[0])
	}
}

func TestRecommendationsCapped(t *testing.T) {
	recs := recommendationsFor(budgets(map[core.Domain]float64{
		core.Work:     0.0,
		core.Social:   0.0,
		core.Learning: 0.0,
	}))
	if len(recs) != maxRecommendations {
		t.Errorf("got %d recs, want cap of %d", len(recs), maxRecommendations)
	}
}
