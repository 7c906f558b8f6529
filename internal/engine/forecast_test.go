package engine

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/nkov/cogwatt/internal/core"
	"github.com/nkov/cogwatt/internal/store"
)

var forecastDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func energyAt(t *testing.T, fc core.DayForecast, hour int) int {
	t.Helper()
	for _, p := range fc.Points {
		if p.Hour == hour {
			return p.Energy
		}
	}
	t.Fatalf("no point for hour %d", hour)
	return 0
}

func loadAt(t *testing.T, fc core.DayForecast, hour int) core.Load {
	t.Helper()
	for _, p := range fc.Points {
		if p.Hour == hour {
			return p.Load
		}
	}
	t.Fatalf("no point for hour %d", hour)
	return ""
}

func meetingAt(hour int, title string) core.CalendarEvent {
	return core.CalendarEvent{
		ID:        title,
		Title:     title,
		Start:     forecastDay.Add(time.Duration(hour) * time.Hour),
		End:       forecastDay.Add(time.Duration(hour+1) * time.Hour),
		IsMeeting: true,
	}
}

func TestForecastShape(t *testing.T) {
	fc := BuildForecast(forecastDay, nil, nil)

	if len(fc.Points) != 17 {
		t.Fatalf("got %d points, want 17", len(fc.Points))
	}
	for i, p := range fc.Points {
		if p.Hour != 6+i {
			t.Errorf("point %d: hour = %d, want %d", i, p.Hour, 6+i)
		}
		if p.Energy < 0 || p.Energy > 100 {
			t.Errorf("hour %d: energy %d out of [0,100]", p.Hour, p.Energy)
		}
	}
	if fc.OptimalWindow.End-fc.OptimalWindow.Start != 3 {
		t.Errorf("window %+v is not 3 hours", fc.OptimalWindow)
	}
	if fc.Date != "2026-03-10" {
		t.Errorf("date = %q", fc.Date)
	}
}

func TestForecastCircadianBaseline(t *testing.T) {
	fc := BuildForecast(forecastDay, nil, nil)

	want := map[int]int{6: 60, 7: 75, 9: 90, 11: 85, 14: 65, 16: 75, 18: 70, 20: 55, 21: 40, 22: 40}
	for hour, energy := range want {
		if got := energyAt(t, fc, hour); got != energy {
			t.Errorf("hour %d: energy = %d, want %d", hour, got, energy)
		}
	}
	if fc.PeakEnergy != 90 {
		t.Errorf("peak = %d, want 90", fc.PeakEnergy)
	}
	if fc.LowEnergy != 40 {
		t.Errorf("low = %d, want 40", fc.LowEnergy)
	}
	// 8-11 is the flat 90 plateau
	if fc.OptimalWindow.Start != 8 || fc.OptimalWindow.End != 11 {
		t.Errorf("window = %+v, want 8-11", fc.OptimalWindow)
	}
	for _, p := range fc.Points {
		if p.Load != core.LoadLow {
			t.Errorf("hour %d: load = %s with no events", p.Hour, p.Load)
		}
	}
	if len(fc.Warnings) != 0 {
		t.Errorf("warnings = %v, want none on an empty day", fc.Warnings)
	}
}

func TestForecastMeetingsDragEnergy(t *testing.T) {
	events := []core.CalendarEvent{meetingAt(10, "standup"), meetingAt(10, "1:1")}
	fc := BuildForecast(forecastDay, events, nil)

	if got := energyAt(t, fc, 10); got != 70 {
		t.Errorf("hour 10: energy = %d, want 90-20=70", got)
	}
	if got := loadAt(t, fc, 10); got != core.LoadHigh {
		t.Errorf("hour 10: load = %s, want high (2 meetings)", got)
	}
}

func TestForecastFocusBlocksBoostEnergy(t *testing.T) {
	events := []core.CalendarEvent{{
		ID: "f", Title: "writing", IsFocusBlock: true,
		Start: forecastDay.Add(14 * time.Hour), End: forecastDay.Add(15 * time.Hour),
	}}
	fc := BuildForecast(forecastDay, events, nil)

	if got := energyAt(t, fc, 14); got != 70 {
		t.Errorf("hour 14: energy = %d, want 65+5=70", got)
	}
	if got := loadAt(t, fc, 14); got != core.LoadMedium {
		t.Errorf("hour 14: load = %s, want medium", got)
	}
}

func TestForecastHistoricalBlend(t *testing.T) {
	samples := []core.BudgetSample{
		{CognitiveBudget: 0.5, CreatedAt: forecastDay.AddDate(0, 0, -1).Add(9 * time.Hour)},
		{CognitiveBudget: 0.7, CreatedAt: forecastDay.AddDate(0, 0, -2).Add(9 * time.Hour)},
	}
	fc := BuildForecast(forecastDay, nil, samples)

	// avg historical = 60, blended with the 90 baseline -> 75
	if got := energyAt(t, fc, 9); got != 75 {
		t.Errorf("hour 9: energy = %d, want (90+60)/2=75", got)
	}
	// Hours without samples stay on the baseline
	if got := energyAt(t, fc, 14); got != 65 {
		t.Errorf("hour 14: energy = %d, want 65", got)
	}
}

func TestForecastEnergyClamped(t *testing.T) {
	var events []core.CalendarEvent
	for i := 0; i < 6; i++ {
		events = append(events, meetingAt(21, "late"))
	}
	fc := BuildForecast(forecastDay, events, nil)
	if got := energyAt(t, fc, 21); got != 0 {
		t.Errorf("hour 21: energy = %d, want clamp at 0 (40-60)", got)
	}
}

func TestForecastWarnings(t *testing.T) {
	// Four high-load hours plus three evening events
	events := []core.CalendarEvent{
		meetingAt(9, "a"), meetingAt(9, "b"),
		meetingAt(10, "c"), meetingAt(10, "d"),
		meetingAt(11, "e"), meetingAt(11, "f"),
		meetingAt(18, "g"), meetingAt(18, "h"),
		meetingAt(19, "i"), meetingAt(19, "j"),
	}
	fc := BuildForecast(forecastDay, events, nil)

	wantSubstr := []string{"Heavy day", "Busy evening"}
	for _, sub := range wantSubstr {
		found := false
		for _, w := range fc.Warnings {
			if len(w) >= len(sub) && w[:len(sub)] == sub {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %q warning in %v", sub, fc.Warnings)
		}
	}
}

func TestForecastAfternoonDip(t *testing.T) {
	// Enough meetings at 14-16 to drive every one of those hours under 50:
	// 14 starts at 65, 15 and 16 start at 75.
	events := []core.CalendarEvent{
		meetingAt(14, "a"), meetingAt(14, "b"),
		meetingAt(15, "c"), meetingAt(15, "d"), meetingAt(15, "e"),
		meetingAt(16, "f"), meetingAt(16, "g"), meetingAt(16, "h"),
	}
	fc := BuildForecast(forecastDay, events, nil)

	found := false
	for _, w := range fc.Warnings {
		if len(w) >= 13 && w[:13] == "Afternoon dip" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing afternoon dip warning: %v", fc.Warnings)
	}
}

func TestForecastDeterministic(t *testing.T) {
	events := []core.CalendarEvent{meetingAt(10, "standup")}
	samples := []core.BudgetSample{{CognitiveBudget: 0.6, CreatedAt: forecastDay.Add(10 * time.Hour)}}

	a := BuildForecast(forecastDay, events, samples)
	b := BuildForecast(forecastDay, events, samples)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different forecasts")
	}
}

func TestSessionForecastFromStore(t *testing.T) {
	eng := testEngine(t)
	s := testSession(t, eng)
	ctx := context.Background()

	day := core.StartOfDay(testNow)
	err := eng.DB.AddEvent(ctx, &store.CalendarEvent{
		UserID:    "u1",
		Title:     "standup",
		StartTime: day.Add(10 * time.Hour).UnixMilli(),
		EndTime:   day.Add(11 * time.Hour).UnixMilli(),
		IsMeeting: true,
	})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if err := eng.DB.AddSample(ctx, "u1", 0.6, day.AddDate(0, 0, -1).Add(9*time.Hour)); err != nil {
		t.Fatalf("AddSample: %v", err)
	}

	fc, err := s.Forecast(ctx, testNow)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if fc.Degraded {
		t.Error("forecast flagged degraded with a healthy store")
	}
	if got := energyAt(t, *fc, 10); got != 80 {
		t.Errorf("hour 10: energy = %d, want 90-10=80", got)
	}
	if got := loadAt(t, *fc, 10); got != core.LoadMedium {
		t.Errorf("hour 10: load = %s, want medium", got)
	}
	// Yesterday's 9:00 sample blends into today's 9:00 point
	if got := energyAt(t, *fc, 9); got != 75 {
		t.Errorf("hour 9: energy = %d, want (90+60)/2=75", got)
	}
}

func TestSessionForecastDegradesOnStoreFailure(t *testing.T) {
	eng := testEngine(t)
	s := testSession(t, eng)
	eng.DB.Close()

	fc, err := s.Forecast(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Forecast should degrade, not fail: %v", err)
	}
	if !fc.Degraded {
		t.Error("expected degraded flag after store failure")
	}
	if len(fc.Points) != 17 {
		t.Errorf("points = %d, want 17 on pure baseline", len(fc.Points))
	}
	if energyAt(t, *fc, 9) != 90 {
		t.Errorf("degraded forecast should be pure baseline")
	}
}
