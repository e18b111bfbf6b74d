package cmd

import (
	"fmt"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/pipeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spend summary and upcoming renewals",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	currency := cfg.General.Currency

	today, err := resolveToday(timeline.RealClock{})
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

	stats := pipeline.Summarize(subs, today)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUBSCRIPTION SUMMARY"))
	fmt.Println()

	rows := [][]string{
		{"Active", fmt.Sprintf("%d", stats.ActiveCount)},
		{"Ended", fmt.Sprintf("%d", stats.EndedCount)},
		{"---"},
		{"Monthly spend", cli.FormatAmount(stats.MonthlySpend, currency)},
		{"Yearly spend", cli.FormatAmount(stats.YearlySpend, currency)},
	}
	if !stats.NextRenewal.IsZero() {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Next renewal", fmt.Sprintf("%s (%s)", cli.FormatDate(stats.NextRenewal), stats.NextRenewalName)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Renewals in the next 90 days
	renewals := pipeline.UpcomingRenewals(subs, today, 90*24*time.Hour)
	if len(renewals) > 0 {
		renewalRows := make([][]string, 0, len(renewals))
		for _, r := range renewals {
			renewalRows = append(renewalRows, []string{
				r.Name,
				cli.FormatDate(r.Date),
				cli.FormatAmount(r.Amount, currency),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Upcoming Renewals (90d)",
			Headers: []string{"Subscription", "Date", "Amount"},
			Rows:    renewalRows,
		}))
	}

	fmt.Println()
	return nil
}
