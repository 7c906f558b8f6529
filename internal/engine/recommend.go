package engine

import (
	"fmt"
	"sort"

	"github.com/nkov/cogwatt/internal/core"
)

// maxRecommendations caps the recommendation list per read.
const maxRecommendations = 3

// restorativeHints is the phrasing used when pointing at a helper domain.
var restorativeHints = map[core.Domain]string{
	core.Work:     "close the loop on one small task",
	core.Health:   "take a short walk or stretch",
	core.Social:   "catch up with a friend or colleague",
	core.Learning: "read something unrelated to work",
}

// depletedOrder returns the domains in status depleted or overdrawn, most
// depleted first (lowest remaining/capacity ratio). Ties keep canonical
// domain order.
func depletedOrder(domains map[core.Domain]core.DomainBudget) []core.Domain {
	var out []core.Domain
	for _, d := range core.AllDomains {
		if domains[d].Status != core.StatusHealthy {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := domains[out[i]], domains[out[j]]
		return a.Remaining/a.Capacity < b.Remaining/b.Capacity
	})
	return out
}

// recommendationsFor builds the human-readable recommendation list: for each
// depleted domain, point at its helper domains that still have energy to
// give, capped at maxRecommendations.
func recommendationsFor(domains map[core.Domain]core.DomainBudget) []string {
	var recs []string
	for _, d := range depletedOrder(domains) {
		for _, helper := range core.HelperDomains[d] {
			if domains[helper].Status != core.StatusHealthy {
				continue
			}
			recs = append(recs, fmt.Sprintf(
				"Your %s energy is running low — %s to recharge through %s.",
				d, restorativeHints[helper], helper))
			if len(recs) == maxRecommendations {
				return recs
			}
		}
	}
	return recs
}
