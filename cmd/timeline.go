package cmd

import (
	"fmt"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/pipeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"

	"github.com/spf13/cobra"
)

var flagTimelineWidth int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Render the subscription billing timeline",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().IntVar(&flagTimelineWidth, "width", 120, "Output width in columns")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	today, err := resolveToday(timeline.RealClock{})
	if err != nil {
		return err
	}

	window, err := visibleWindow(today, cfg)
	if err != nil {
		return err
	}

	subs, err := loadSubscriptions(cfg)
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		fmt.Println("\n  No subscriptions yet. Add one with `subman add`.")
		return nil
	}

	width := flagTimelineWidth
	if width < 60 {
		width = 60
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUBSCRIPTIONS  %s - %s",
		window.Start.Format("Jan 2006"), window.End.Format("Jan 2006"))))
	fmt.Println()
	fmt.Print(cli.RenderTimeline(subs, window, today, width))

	stats := pipeline.Summarize(subs, today)
	fmt.Printf("\n  %d active · %s/month · %s/year\n\n",
		stats.ActiveCount,
		cli.FormatAmount(stats.MonthlySpend, cfg.General.Currency),
		cli.FormatAmount(stats.YearlySpend, cfg.General.Currency))

	return nil
}
