package store

import (
	"context"
	"testing"
	"time"
)

func TestAddSamplesBatch(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	batch := []BudgetSample{
		{CognitiveBudget: 0.6, CreatedAt: base.UnixMilli()},
		{CognitiveBudget: 0.4, CreatedAt: base.AddDate(0, 0, 1).UnixMilli()},
	}
	if err := db.AddSamples(ctx, "u1", batch); err != nil {
		t.Fatalf("AddSamples: %v", err)
	}
	if err := db.AddSamples(ctx, "u1", nil); err != nil {
		t.Fatalf("AddSamples(empty): %v", err)
	}

	samples, err := db.RecentSamples(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("RecentSamples: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].CognitiveBudget != 0.4 || samples[1].CognitiveBudget != 0.6 {
		t.Errorf("order wrong: %+v", samples)
	}
}

func TestRecentSamplesOrderAndLimit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := db.AddSample(ctx, "u1", float64(i)/10, base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("AddSample: %v", err)
		}
	}
	db.AddSample(ctx, "u2", 0.9, base)

	samples, err := db.RecentSamples(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("RecentSamples: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	// Newest first
	if samples[0].CognitiveBudget != 0.4 || samples[2].CognitiveBudget != 0.2 {
		t.Errorf("order wrong: %+v", samples)
	}
	for _, s := range samples {
		if s.UserID != "u1" {
			t.Errorf("leaked sample for %s", s.UserID)
		}
	}
}
