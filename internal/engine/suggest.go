package engine

import (
	"context"
	"math/rand"
	"sort"

	"github.com/nkov/cogwatt/internal/core"
)

// lowTotalThreshold mirrors the per-domain depletion cutoff at the whole-
// budget level: below it the selection adds one strong restorer.
const lowTotalThreshold = 0.3

// strongRestorePercent qualifies a catalog entry as a strong restorer.
const strongRestorePercent = 15

// SelectSuggestions picks up to targetCount restorative activities for the
// given ledger state. Depleted domains get first claim via their helper
// domains, a low overall budget adds one strong restorer, and the rest is
// random backfill. The result has unique entries sorted by restore percent,
// descending. Deterministic for a fixed rng.
func SelectSuggestions(state *core.BudgetState, catalog []core.RestorativeActivity, targetCount int, rng *rand.Rand) []core.RestorativeActivity {
	if targetCount <= 0 {
		return nil
	}

	selected := make([]core.RestorativeActivity, 0, targetCount)
	used := make(map[string]bool)

	draw := func(match func(core.RestorativeActivity) bool) bool {
		var candidates []core.RestorativeActivity
		for _, a := range catalog {
			if !used[a.ID] && match(a) {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) == 0 {
			return false
		}
		pick := candidates[rng.Intn(len(candidates))]
		used[pick.ID] = true
		selected = append(selected, pick)
		return true
	}

	for _, d := range depletedOrder(state.Domains) {
		for _, helper := range core.HelperDomains[d] {
			if len(selected) == targetCount {
				break
			}
			if state.Domains[helper].Status != core.StatusHealthy {
				continue
			}
			h := helper
			draw(func(a core.RestorativeActivity) bool { return a.Domain == h })
		}
	}

	if len(selected) < targetCount && state.Ratio() < lowTotalThreshold {
		draw(func(a core.RestorativeActivity) bool { return a.RestorePercent >= strongRestorePercent })
	}

	for len(selected) < targetCount {
		if !draw(func(core.RestorativeActivity) bool { return true }) {
			break
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].RestorePercent > selected[j].RestorePercent
	})
	return selected
}

// Suggestions selects restorative activities against the user's current
// ledger state.
func (s *Session) Suggestions(ctx context.Context, count int) ([]core.RestorativeActivity, error) {
	if count <= 0 {
		return nil, core.Invalidf("count", "count must be positive")
	}
	state, err := s.BudgetState(ctx)
	if err != nil {
		return nil, err
	}
	return SelectSuggestions(state, s.eng.Catalog, count, s.eng.newRand()), nil
}

// CompleteSuggestion records a finished restorative activity as a negative-
// cost ledger entry and returns its restore percent so the caller can keep
// a session counter of energy restored.
func (s *Session) CompleteSuggestion(ctx context.Context, activityID string) (int, error) {
	entry := core.CatalogByID(s.eng.Catalog, activityID)
	if entry == nil {
		return 0, core.Invalidf("activity", "unknown catalog activity %q", activityID)
	}
	cost := -float64(entry.RestorePercent) / 100
	if err := s.LogActivity(ctx, entry.ID, entry.Domain, cost); err != nil {
		return 0, err
	}
	return entry.RestorePercent, nil
}
