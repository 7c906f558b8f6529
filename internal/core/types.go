package core

import (
	"time"
)

// Domain is one of the fixed cognitive-energy categories. Domains partition
// the total daily capacity and never change at runtime.
type Domain string

const (
	Work     Domain = "work"
	Health   Domain = "health"
	Social   Domain = "social"
	Learning Domain = "learning"
)

// AllDomains lists every domain in canonical order. Iteration over budgets
// and tie-breaking both follow this order.
var AllDomains = []Domain{Work, Health, Social, Learning}

func (d Domain) String() string { return string(d) }

// ValidDomain reports whether d is a member of the closed domain set.
func ValidDomain(d Domain) bool {
	for _, known := range AllDomains {
		if d == known {
			return true
		}
	}
	return false
}

// Status classifies how much of a domain's budget is left.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDepleted  Status = "depleted"
	StatusOverdrawn Status = "overdrawn"
)

// depletedThreshold is the remaining/capacity ratio below which a domain
// counts as depleted.
const depletedThreshold = 0.3

// StatusFor derives a status from a remaining/capacity pair. It has no other
// inputs: overdrawn below zero, depleted below the threshold, healthy above.
func StatusFor(remaining, capacity float64) Status {
	ratio := remaining / capacity
	switch {
	case ratio < 0:
		return StatusOverdrawn
	case ratio < depletedThreshold:
		return StatusDepleted
	default:
		return StatusHealthy
	}
}

// DomainBudget is the per-domain accounting view. Remaining is capped at
// capacity (restoration cannot bank surplus energy) but may go negative
// when a domain is overdrawn.
type DomainBudget struct {
	Capacity  float64 `json:"capacity"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Status    Status  `json:"status"`
}

// Totals aggregates capacity, spend, and remaining across all domains.
type Totals struct {
	Capacity  float64 `json:"capacity"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// BudgetState is the materialized per-user ledger view. It is derived by
// replaying the day's activity log and is never stored; Version counts the
// log entries that produced it, so a caller can detect writes from another
// session between two reads.
type BudgetState struct {
	Domains         map[Domain]DomainBudget `json:"domains"`
	Total           Totals                  `json:"total"`
	Recommendations []string                `json:"recommendations"`
	LastUpdated     time.Time               `json:"last_updated"`
	Version         int64                   `json:"version"`
}

// Ratio returns total remaining over total capacity.
func (s *BudgetState) Ratio() float64 {
	return s.Total.Remaining / s.Total.Capacity
}

// Load buckets how contended a forecast hour is.
type Load string

const (
	LoadLow    Load = "low"
	LoadMedium Load = "medium"
	LoadHigh   Load = "high"
)

// ForecastPoint is one hour of the predicted energy curve.
type ForecastPoint struct {
	Hour   int      `json:"hour"`
	Energy int      `json:"energy"`
	Events []string `json:"events,omitempty"`
	Load   Load     `json:"load"`
}

// WorkWindow is a half-open [Start, End) span of forecast hours.
type WorkWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DayForecast is the full day-ahead view: one point per hour from 6 through
// 22, summary extremes, the best 3-hour work window, and any warnings.
// Degraded is set when calendar or history inputs could not be loaded and
// the curve was computed from partial data.
type DayForecast struct {
	Date          string          `json:"date"`
	Points        []ForecastPoint `json:"points"`
	PeakEnergy    int             `json:"peak_energy"`
	LowEnergy     int             `json:"low_energy"`
	OptimalWindow WorkWindow      `json:"optimal_work_window"`
	Warnings      []string        `json:"warnings,omitempty"`
	Degraded      bool            `json:"degraded,omitempty"`
}

// CalendarEvent is a read-only event fed in by the calendar collaborator.
type CalendarEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Start        time.Time `json:"start_time"`
	End          time.Time `json:"end_time"`
	IsMeeting    bool      `json:"is_meeting"`
	IsFocusBlock bool      `json:"is_focus_block"`
}

// BudgetSample is one historical observation of a user's overall budget
// ratio, used to blend lived experience into the circadian baseline.
type BudgetSample struct {
	CognitiveBudget float64   `json:"cognitive_budget"`
	CreatedAt       time.Time `json:"created_at"`
}

// RestorativeActivity is immutable catalog data: an action that returns
// energy to a domain when completed.
type RestorativeActivity struct {
	ID             string `json:"id"`
	Domain         Domain `json:"domain"`
	RestorePercent int    `json:"energy_restore_percent"`
	Duration       string `json:"duration"`
}
