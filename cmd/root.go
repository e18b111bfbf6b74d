// Package cmd implements the subman CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/config"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/store"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"

	"github.com/spf13/cobra"
)

var (
	flagDB           string
	flagToday        string
	flagMonthsBefore int
	flagMonthsAfter  int
)

var rootCmd = &cobra.Command{
	Use:   "subman",
	Short: "Subscription timeline tracker",
	Long:  "Track recurring subscriptions: a Gantt-style billing timeline, spend summaries, and renewal projections.",
	RunE:  runTimeline,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Override today's date (YYYY-MM-DD) for deterministic output")
	rootCmd.PersistentFlags().IntVar(&flagMonthsBefore, "months-before", -1, "Months before the current month in the timeline window")
	rootCmd.PersistentFlags().IntVar(&flagMonthsAfter, "months-after", -1, "Months after the current month in the timeline window")

	// Reaching the projection cap means a data anomaly (or a cap set too
	// low), never a normal condition; surface it instead of hiding it.
	timeline.OnProjectionCapHit = func(start time.Time, cycle model.Cycle) {
		fmt.Fprintf(os.Stderr, "  warning: renewal projection hit its iteration cap (start %s, cycle %s)\n",
			start.Format("2006-01-02"), cycle)
	}
}

// loadConfigOrDefault loads config, returning defaults on error so every
// command can still run with a corrupted config file.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  warning: %v, using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// openStore opens the subscription database honoring --db and config.
func openStore(cfg config.Config) (*store.Store, error) {
	path := config.DBPath(cfg)
	if flagDB != "" {
		path = flagDB
	}
	return store.Open(path)
}

// resolveToday returns the reference date for renewal projection and
// activity classification: --today when given, the real clock otherwise.
func resolveToday(clock timeline.Clock) (time.Time, error) {
	if flagToday == "" {
		return clock.Now(), nil
	}
	t, err := time.Parse("2006-01-02", flagToday)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: %w", flagToday, err)
	}
	return t, nil
}

// visibleWindow builds the timeline window from flags and config.
func visibleWindow(now time.Time, cfg config.Config) (timeline.Window, error) {
	before := cfg.Timeline.MonthsBefore
	if flagMonthsBefore >= 0 {
		before = flagMonthsBefore
	}
	after := cfg.Timeline.MonthsAfter
	if flagMonthsAfter >= 0 {
		after = flagMonthsAfter
	}

	current := timeline.MonthStart(now)
	start := current.AddDate(0, -before, 0)
	end := current.AddDate(0, after, 0)
	return timeline.ComputeRange(&start, &end, now)
}

// loadSubscriptions is the shared read path used by the display commands.
func loadSubscriptions(cfg config.Config) ([]model.Subscription, error) {
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()
	return s.List()
}

// findSubscription resolves an id or unique name prefix to a record.
func findSubscription(s *store.Store, key string) (model.Subscription, error) {
	if sub, err := s.Get(key); err == nil {
		return sub, nil
	}

	subs, err := s.List()
	if err != nil {
		return model.Subscription{}, err
	}

	var matches []model.Subscription
	for _, sub := range subs {
		if sub.Name == key {
			return sub, nil
		}
		if len(key) > 0 && len(sub.Name) >= len(key) && strings.EqualFold(sub.Name[:len(key)], key) {
			matches = append(matches, sub)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Subscription{}, fmt.Errorf("no subscription matches %q", key)
	default:
		return model.Subscription{}, fmt.Errorf("%q is ambiguous (%d matches); use the id", key, len(matches))
	}
}
