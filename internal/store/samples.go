package store

import (
	"context"
	"fmt"
	"time"
)

// BudgetSample is one historical observation of a user's overall remaining
// budget ratio, in [0, 1]. Rows come from the nightly snapshot job or from
// an external history feed.
type BudgetSample struct {
	ID              int64
	UserID          string
	CognitiveBudget float64
	CreatedAt       int64 // unix millis
}

// AddSample records one budget observation.
func (db *DB) AddSample(ctx context.Context, userID string, value float64, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO budget_samples (user_id, cognitive_budget, created_at)
		VALUES (?, ?, ?)
	`, userID, value, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("add sample: %w", err)
	}
	return nil
}

// AddSamples records a batch of observations for one user in a single
// transaction, so a failed batch leaves no partial history behind.
func (db *DB) AddSamples(ctx context.Context, userID string, samples []BudgetSample) error {
	if len(samples) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add samples: %w", err)
	}
	for _, s := range samples {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budget_samples (user_id, cognitive_budget, created_at)
			VALUES (?, ?, ?)
		`, userID, s.CognitiveBudget, s.CreatedAt)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("add samples: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add samples: %w", err)
	}
	return nil
}

// RecentSamples returns a user's most recent samples, newest first,
// capped at limit.
func (db *DB) RecentSamples(ctx context.Context, userID string, limit int) ([]BudgetSample, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, cognitive_budget, created_at
		FROM budget_samples
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent samples: %w", err)
	}
	defer rows.Close()

	var samples []BudgetSample
	for rows.Next() {
		var s BudgetSample
		if err := rows.Scan(&s.ID, &s.UserID, &s.CognitiveBudget, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
