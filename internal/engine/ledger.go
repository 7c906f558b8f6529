package engine

import (
	"context"
	"math"

	"github.com/nkov/cogwatt/internal/core"
)

// totalCapacity is the whole-day energy budget, split evenly across domains.
const totalCapacity = 1.0

// DomainCapacity returns the fixed per-domain share of the daily budget.
func DomainCapacity() float64 {
	return totalCapacity / float64(len(core.AllDomains))
}

// LogActivity appends one entry to the user's activity log. Positive cost
// spends, negative restores. Deliberately not idempotent: logging the same
// activity twice doubles its effect, and duplicate suppression belongs to
// the caller.
func (s *Session) LogActivity(ctx context.Context, activityID string, domain core.Domain, cost float64) error {
	if activityID == "" {
		return core.Invalidf("activity", "activity id required")
	}
	if !core.ValidDomain(domain) {
		return core.Invalidf("domain", "unknown domain %q", domain)
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return core.Invalidf("cost", "cost must be finite")
	}
	if cost < -1 || cost > 1 {
		return core.Invalidf("cost", "cost %v outside [-1, 1]", cost)
	}

	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()
	return core.Storagef("append activity",
		s.eng.DB.AddActivity(ctx, s.userID, activityID, domain.String(), cost, s.eng.Clock.Now()))
}

// BudgetState materializes the user's current ledger view by replaying the
// activity log since local midnight. The daily reset needs no bookkeeping:
// yesterday's rows simply fall outside the replay window while staying in
// the log for history.
func (s *Session) BudgetState(ctx context.Context) (*core.BudgetState, error) {
	now := s.eng.Clock.Now()
	dayStart := core.StartOfDay(now)

	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()
	acts, err := s.eng.DB.ActivitiesBetween(ctx, s.userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, core.Storagef("read activities", err)
	}

	spent := make(map[core.Domain]float64, len(core.AllDomains))
	for _, a := range acts {
		spent[core.Domain(a.Domain)] += a.Cost
	}

	capacity := DomainCapacity()
	state := &core.BudgetState{
		Domains:     make(map[core.Domain]core.DomainBudget, len(core.AllDomains)),
		LastUpdated: now,
		Version:     int64(len(acts)),
	}
	for _, d := range core.AllDomains {
		// Restoration cannot push remaining past capacity; overdraw is
		// allowed to go negative so status can distinguish it.
		remaining := math.Min(capacity-spent[d], capacity)
		state.Domains[d] = core.DomainBudget{
			Capacity:  capacity,
			Spent:     spent[d],
			Remaining: remaining,
			Status:    core.StatusFor(remaining, capacity),
		}
		state.Total.Capacity += capacity
		state.Total.Spent += spent[d]
		state.Total.Remaining += remaining
	}

	state.Recommendations = recommendationsFor(state.Domains)
	return state, nil
}

// Recommendations returns just the regenerated recommendation strings.
func (s *Session) Recommendations(ctx context.Context) ([]string, error) {
	state, err := s.BudgetState(ctx)
	if err != nil {
		return nil, err
	}
	return state.Recommendations, nil
}
