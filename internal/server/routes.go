package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nkov/cogwatt/internal/core"
	"github.com/nkov/cogwatt/internal/engine"
	"github.com/nkov/cogwatt/internal/store"
)

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*engine.Session, bool) {
	sess, err := s.engine.Session(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		ActivityID string  `json:"activity_id"`
		Domain     string  `json:"domain"`
		Cost       float64 `json:"cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := sess.LogActivity(r.Context(), req.ActivityID, core.Domain(req.Domain), req.Cost); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

func (s *Server) handleBudgetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	state, err := sess.BudgetState(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	recs, err := sess.Recommendations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	date := s.engine.Clock.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, date.Location())
		if err != nil {
			writeError(w, core.Invalidf("date", "want YYYY-MM-DD, got %q", q))
			return
		}
		date = parsed
	}

	fc, err := sess.Forecast(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	count := 3
	if q := r.URL.Query().Get("count"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, core.Invalidf("count", "not a number: %q", q))
			return
		}
		count = n
	}

	suggestions, err := sess.Suggestions(r.Context(), count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleCompleteSuggestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	restored, err := sess.CompleteSuggestion(r.Context(), chi.URLParam(r, "activityID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "completed",
		"restored_percent": restored,
	})
}

// handleIngestEvents accepts a batch of calendar events from the calendar
// collaborator. Cogwatt only reads these back for forecasting.
func (s *Server) handleIngestEvents(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Events []struct {
			ID           string    `json:"id"`
			Title        string    `json:"title"`
			StartTime    time.Time `json:"start_time"`
			EndTime      time.Time `json:"end_time"`
			IsMeeting    bool      `json:"is_meeting"`
			IsFocusBlock bool      `json:"is_focus_block"`
		} `json:"events"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	events := make([]*store.CalendarEvent, 0, len(req.Events))
	for _, ev := range req.Events {
		events = append(events, &store.CalendarEvent{
			ID:           ev.ID,
			UserID:       userID,
			Title:        ev.Title,
			StartTime:    ev.StartTime.UnixMilli(),
			EndTime:      ev.EndTime.UnixMilli(),
			IsMeeting:    ev.IsMeeting,
			IsFocusBlock: ev.IsFocusBlock,
		})
	}
	if err := s.db.AddEvents(r.Context(), events); err != nil {
		writeError(w, core.Storagef("ingest events", err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ingested": len(events)})
}

// handleIngestSamples accepts historical budget observations from an
// external history feed.
func (s *Server) handleIngestSamples(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Samples []struct {
			CognitiveBudget float64   `json:"cognitive_budget"`
			CreatedAt       time.Time `json:"created_at"`
		} `json:"samples"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	// Reject the whole batch before writing anything, so a bad row midway
	// can never leave a partial ingest behind.
	samples := make([]store.BudgetSample, 0, len(req.Samples))
	for _, sm := range req.Samples {
		if sm.CognitiveBudget < 0 || sm.CognitiveBudget > 1 {
			writeError(w, core.Invalidf("cognitive_budget", "%v outside [0, 1]", sm.CognitiveBudget))
			return
		}
		samples = append(samples, store.BudgetSample{
			UserID:          userID,
			CognitiveBudget: sm.CognitiveBudget,
			CreatedAt:       sm.CreatedAt.UnixMilli(),
		})
	}
	if err := s.db.AddSamples(r.Context(), userID, samples); err != nil {
		writeError(w, core.Storagef("ingest samples", err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ingested": len(samples)})
}
