package store

import (
	"context"
	"fmt"
	"time"
)

// Activity is one row of the append-only energy log. A positive cost spends
// energy in a domain, a negative cost restores it. The ledger's view of
// spend is always a replay of these rows — nothing else is authoritative.
type Activity struct {
	ID         int64
	UserID     string
	ActivityID string
	Domain     string
	Cost       float64
	CreatedAt  int64 // unix millis
}

// AddActivity appends an entry to the activity log. Never updates in place;
// duplicate submissions are the caller's problem.
func (db *DB) AddActivity(ctx context.Context, userID, activityID, domain string, cost float64, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO activities (user_id, activity_id, domain, cost, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, activityID, domain, cost, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	return nil
}

// ActivitiesBetween returns a user's activities with from <= created_at < to,
// ordered by insertion.
func (db *DB) ActivitiesBetween(ctx context.Context, userID string, from, to time.Time) ([]Activity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, activity_id, domain, cost, created_at
		FROM activities
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY id
	`, userID, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("activities between: %w", err)
	}
	defer rows.Close()

	var acts []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityID, &a.Domain, &a.Cost, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

// ActiveUsersSince returns the distinct user ids that logged anything at or
// after the given time. Used by the nightly snapshot job.
func (db *DB) ActiveUsersSince(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM activities WHERE created_at >= ? ORDER BY user_id
	`, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("active users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
