package server

import (
	"context"
	"log"
	"time"

	"github.com/nkov/cogwatt/internal/core"
	"github.com/nkov/cogwatt/internal/engine"
	"github.com/nkov/cogwatt/internal/store"
	"github.com/robfig/cron/v3"
)

// Snapshotter records each active user's end-of-day budget ratio into
// budget_samples, which feeds the forecast's historical blend. It runs
// server-side on a schedule; the engine itself stays pull-based.
type Snapshotter struct {
	db     *store.DB
	engine *engine.Engine
	cron   *cron.Cron
}

// NewSnapshotter creates a Snapshotter for the given store and engine.
func NewSnapshotter(db *store.DB, eng *engine.Engine) *Snapshotter {
	return &Snapshotter{db: db, engine: eng}
}

// Start schedules the snapshot job. The default schedule fires at 23:50
// local time, late enough to capture the day but before the midnight reset.
func (s *Snapshotter) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, s.Run); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	log.Printf("[snapshot] scheduled at %q", schedule)
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (s *Snapshotter) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Run snapshots every user who logged activity today. Exported so the job
// can be triggered manually.
func (s *Snapshotter) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := s.engine.Clock.Now()
	users, err := s.db.ActiveUsersSince(ctx, core.StartOfDay(now))
	if err != nil {
		log.Printf("[snapshot] list users: %v", err)
		return
	}

	for _, userID := range users {
		sess, err := s.engine.Session(userID)
		if err != nil {
			continue
		}
		state, err := sess.BudgetState(ctx)
		if err != nil {
			log.Printf("[snapshot] state for %s: %v", userID, err)
			continue
		}
		ratio := state.Ratio()
		if ratio < 0 {
			ratio = 0
		}
		if err := s.db.AddSample(ctx, userID, ratio, now); err != nil {
			log.Printf("[snapshot] save for %s: %v", userID, err)
			continue
		}
	}
	if len(users) > 0 {
		log.Printf("[snapshot] recorded %d users", len(users))
	}
}
