package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a stored row of the ingested calendar feed. Cogwatt never
// edits events; it only reads them for forecasting.
type CalendarEvent struct {
	ID           string
	UserID       string
	Title        string
	StartTime    int64 // unix millis
	EndTime      int64
	IsMeeting    bool
	IsFocusBlock bool
}

// AddEvent stores one calendar event. Events without an id get a generated
// one; re-ingesting an event with the same id replaces it.
func (db *DB) AddEvent(ctx context.Context, ev *CalendarEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO calendar_events (id, user_id, title, start_time, end_time, is_meeting, is_focus_block)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_meeting = excluded.is_meeting,
			is_focus_block = excluded.is_focus_block
	`, ev.ID, ev.UserID, ev.Title, ev.StartTime, ev.EndTime, boolInt(ev.IsMeeting), boolInt(ev.IsFocusBlock))
	if err != nil {
		return fmt.Errorf("add event: %w", err)
	}
	return nil
}

// AddEvents stores a batch of calendar events in one transaction. Either
// every event lands or none do.
func (db *DB) AddEvents(ctx context.Context, events []*CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add events: %w", err)
	}
	for _, ev := range events {
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO calendar_events (id, user_id, title, start_time, end_time, is_meeting, is_focus_block)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				title = excluded.title,
				start_time = excluded.start_time,
				end_time = excluded.end_time,
				is_meeting = excluded.is_meeting,
				is_focus_block = excluded.is_focus_block
		`, ev.ID, ev.UserID, ev.Title, ev.StartTime, ev.EndTime, boolInt(ev.IsMeeting), boolInt(ev.IsFocusBlock))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("add events: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add events: %w", err)
	}
	return nil
}

// EventsBetween returns a user's events with from <= start_time < to,
// ordered by start time.
func (db *DB) EventsBetween(ctx context.Context, userID string, from, to time.Time) ([]CalendarEvent, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, title, start_time, end_time, is_meeting, is_focus_block
		FROM calendar_events
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time
	`, userID, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("events between: %w", err)
	}
	defer rows.Close()

	var events []CalendarEvent
	for rows.Next() {
		var ev CalendarEvent
		var meeting, focus int
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.StartTime, &ev.EndTime, &meeting, &focus); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.IsMeeting = meeting != 0
		ev.IsFocusBlock = focus != 0
		events = append(events, ev)
	}
	return events, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
