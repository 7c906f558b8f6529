package engine

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/nkov/cogwatt/internal/core"
)

// Forecast hours cover 6:00 through 22:00 inclusive, one point per hour.
const (
	forecastFirstHour = 6
	forecastLastHour  = 22
	workWindowHours   = 3
	maxHistorySamples = 100
)

// circadianBaseline is the fixed time-of-day energy curve the forecast
// starts from, before calendar and history adjustments.
func circadianBaseline(hour int) float64 {
	switch {
	case hour >= 6 && hour < 8:
		return 60 + 15*float64(hour-6)
	case hour >= 8 && hour < 11:
		return 90
	case hour >= 11 && hour < 13:
		return 85
	case hour >= 13 && hour < 15:
		return 65
	case hour >= 15 && hour < 17:
		return 75
	case hour >= 17 && hour < 19:
		return 70
	case hour >= 19 && hour < 21:
		return 55
	default:
		return 40
	}
}

// BuildForecast computes the hourly energy curve for one day. Pure and
// deterministic: same events, samples, and date give an identical result.
func BuildForecast(date time.Time, events []core.CalendarEvent, samples []core.BudgetSample) core.DayForecast {
	loc := date.Location()

	eventsByHour := make(map[int][]core.CalendarEvent)
	for _, ev := range events {
		h := ev.Start.In(loc).Hour()
		eventsByHour[h] = append(eventsByHour[h], ev)
	}
	samplesByHour := make(map[int][]float64)
	for _, s := range samples {
		h := s.CreatedAt.In(loc).Hour()
		samplesByHour[h] = append(samplesByHour[h], s.CognitiveBudget)
	}

	fc := core.DayForecast{
		Date:   date.Format("2006-01-02"),
		Points: make([]core.ForecastPoint, 0, forecastLastHour-forecastFirstHour+1),
	}

	for h := forecastFirstHour; h <= forecastLastHour; h++ {
		evs := eventsByHour[h]
		meetings, focusBlocks := 0, 0
		titles := make([]string, 0, len(evs))
		for _, ev := range evs {
			if ev.IsMeeting {
				meetings++
			}
			if ev.IsFocusBlock {
				focusBlocks++
			}
			titles = append(titles, ev.Title)
		}

		energy := circadianBaseline(h)
		energy -= 10 * float64(meetings)
		energy += 5 * float64(focusBlocks)

		if hist := samplesByHour[h]; len(hist) > 0 {
			sum := 0.0
			for _, v := range hist {
				sum += v
			}
			avgHistorical := sum / float64(len(hist)) * 100
			energy = (energy + avgHistorical) / 2
		}

		load := core.LoadLow
		switch {
		case len(evs) > 2 || meetings > 1:
			load = core.LoadHigh
		case len(evs) > 0:
			load = core.LoadMedium
		}

		fc.Points = append(fc.Points, core.ForecastPoint{
			Hour:   h,
			Energy: int(math.Round(math.Max(0, math.Min(100, energy)))),
			Events: titles,
			Load:   load,
		})
	}

	fc.PeakEnergy, fc.LowEnergy = energyExtremes(fc.Points)
	fc.OptimalWindow = optimalWorkWindow(fc.Points)
	fc.Warnings = forecastWarnings(fc.Points, events, loc)
	return fc
}

func energyExtremes(points []core.ForecastPoint) (peak, low int) {
	peak, low = points[0].Energy, points[0].Energy
	for _, p := range points[1:] {
		if p.Energy > peak {
			peak = p.Energy
		}
		if p.Energy < low {
			low = p.Energy
		}
	}
	return peak, low
}

// optimalWorkWindow scans 3-hour spans starting at hours 6 through 19 and
// keeps the one with the strictly highest mean energy, first-found winning
// ties. The 9-12 default only survives if no span beats a zero average.
func optimalWorkWindow(points []core.ForecastPoint) core.WorkWindow {
	best := core.WorkWindow{Start: 9, End: 12}
	bestAvg := 0.0
	for i := 0; i+workWindowHours <= len(points) && points[i].Hour <= 19; i++ {
		sum := 0
		for _, p := range points[i : i+workWindowHours] {
			sum += p.Energy
		}
		avg := float64(sum) / workWindowHours
		if avg > bestAvg {
			bestAvg = avg
			best = core.WorkWindow{Start: points[i].Hour, End: points[i].Hour + workWindowHours}
		}
	}
	return best
}

func forecastWarnings(points []core.ForecastPoint, events []core.CalendarEvent, loc *time.Location) []string {
	var warnings []string

	highHours := 0
	for _, p := range points {
		if p.Load == core.LoadHigh {
			highHours++
		}
	}
	if highHours >= 4 {
		warnings = append(warnings, "Heavy day: four or more high-load hours scheduled.")
	}

	dip := true
	for _, p := range points {
		if p.Hour >= 14 && p.Hour <= 16 && p.Energy >= 50 {
			dip = false
		}
	}
	if dip {
		warnings = append(warnings, "Afternoon dip expected between 14:00 and 16:00.")
	}

	evening := 0
	for _, ev := range events {
		if ev.Start.In(loc).Hour() >= 18 {
			evening++
		}
	}
	if evening > 2 {
		warnings = append(warnings, "Busy evening: more than two events after 18:00.")
	}

	return warnings
}

// Forecast builds the user's day-ahead view for the given date from the
// stored calendar feed and budget history. Either feed failing to load
// degrades the forecast to partial inputs instead of failing it; the result
// is flagged so callers can tell.
func (s *Session) Forecast(ctx context.Context, date time.Time) (*core.DayForecast, error) {
	loc := s.eng.Clock.Now().Location()
	date = date.In(loc)
	dayStart := core.StartOfDay(date)

	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()

	degraded := false

	var events []core.CalendarEvent
	rows, err := s.eng.DB.EventsBetween(ctx, s.userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		log.Printf("forecast: calendar load failed for %s, continuing without: %v", s.userID, err)
		degraded = true
	}
	for _, r := range rows {
		events = append(events, core.CalendarEvent{
			ID:           r.ID,
			Title:        r.Title,
			Start:        time.UnixMilli(r.StartTime).In(loc),
			End:          time.UnixMilli(r.EndTime).In(loc),
			IsMeeting:    r.IsMeeting,
			IsFocusBlock: r.IsFocusBlock,
		})
	}

	var samples []core.BudgetSample
	srows, err := s.eng.DB.RecentSamples(ctx, s.userID, maxHistorySamples)
	if err != nil {
		log.Printf("forecast: history load failed for %s, continuing without: %v", s.userID, err)
		degraded = true
	}
	for _, r := range srows {
		samples = append(samples, core.BudgetSample{
			CognitiveBudget: r.CognitiveBudget,
			CreatedAt:       time.UnixMilli(r.CreatedAt).In(loc),
		})
	}

	fc := BuildForecast(dayStart, events, samples)
	fc.Degraded = degraded
	return &fc, nil
}
