package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nkov/cogwatt/internal/config"
	"github.com/nkov/cogwatt/internal/core"
	"github.com/nkov/cogwatt/internal/engine"
	"github.com/nkov/cogwatt/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagUser     string
	flagActivity string
	flagDate     string
	flagCount    int
	flagSeed     int64
)

// withSession opens the local store and runs fn with the engine and a
// bound session.
func withSession(fn func(ctx context.Context, eng *engine.Engine, sess *engine.Session) error) error {
	cfg := config.FromEnv()
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	eng := engine.New(db)
	if flagSeed != 0 {
		eng.SetRand(rand.New(rand.NewSource(flagSeed)))
	}

	sess, err := eng.Session(flagUser)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return fn(ctx, eng, sess)
}

var logCmd = &cobra.Command{
	Use:   "log <domain> <cost>",
	Short: "Log an energy-affecting activity (negative cost restores)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parse cost %q: %w", args[1], err)
		}
		return withSession(func(ctx context.Context, eng *engine.Engine, sess *engine.Session) error {
			if err := sess.LogActivity(ctx, flagActivity, core.Domain(args[0]), cost); err != nil {
				return err
			}
			fmt.Printf("logged %s %+.2f (%s)\n", args[0], cost, flagActivity)
			return nil
		})
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show today's budget state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, eng *engine.Engine, sess *engine.Session) error {
			state, err := sess.BudgetState(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("budget for %s (%.0f%% remaining)\n", sess.UserID(), state.Ratio()*100)
			for _, d := range core.AllDomains {
				b := state.Domains[d]
				fmt.Printf("  %-9s %6.2f / %.2f  %s\n", d, b.Remaining, b.Capacity, b.Status)
			}
			for _, r := range state.Recommendations {
				fmt.Printf("  * %s\n", r)
			}
			return nil
		})
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show the hourly energy forecast for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, eng *engine.Engine, sess *engine.Session) error {
			date := eng.Clock.Now()
			if flagDate != "" {
				parsed, err := time.ParseInLocation("2006-01-02", flagDate, date.Location())
				if err != nil {
					return core.Invalidf("date", "want YYYY-MM-DD, got %q", flagDate)
				}
				date = parsed
			}
			fc, err := sess.Forecast(ctx, date)
			if err != nil {
				return err
			}
			fmt.Printf("forecast %s (peak %d, low %d, best window %02d:00-%02d:00)\n",
				fc.Date, fc.PeakEnergy, fc.LowEnergy, fc.OptimalWindow.Start, fc.OptimalWindow.End)
			for _, p := range fc.Points {
				bar := strings.Repeat("#", p.Energy/5)
				fmt.Printf("  %02d:00 %3d %-6s %s\n", p.Hour, p.Energy, p.Load, bar)
			}
			for _, w := range fc.Warnings {
				fmt.Printf("  ! %s\n", w)
			}
			if fc.Degraded {
				fmt.Fprintln(os.Stderr, "note: partial inputs, forecast degraded to baseline")
			}
			return nil
		})
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest restorative activities for the current state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, eng *engine.Engine, sess *engine.Session) error {
			suggestions, err := sess.Suggestions(ctx, flagCount)
			if err != nil {
				return err
			}
			for _, a := range suggestions {
				fmt.Printf("  %-16s +%2d%%  %-9s %s\n", a.ID, a.RestorePercent, a.Domain, a.Duration)
			}
			return nil
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{logCmd, stateCmd, forecastCmd, suggestCmd} {
		cmd.Flags().StringVar(&flagUser, "user", "default", "user id to operate on")
	}
	logCmd.Flags().StringVar(&flagActivity, "activity", "manual", "activity id for the log entry")
	forecastCmd.Flags().StringVar(&flagDate, "date", "", "forecast date (YYYY-MM-DD, default today)")
	suggestCmd.Flags().IntVar(&flagCount, "count", 3, "number of suggestions")
	suggestCmd.Flags().Int64Var(&flagSeed, "seed", 0, "seed the suggestion shuffle (0 = random)")
}
