package cmd

import (
	"fmt"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all subscriptions in display order",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
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

	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		if s.IsCategory() {
			rows = append(rows, []string{"---"})
			rows = append(rows, []string{s.Name, "", "", "", "", "", ""})
			continue
		}

		renews := "-"
		if s.AutoRenew || s.EndDate == nil {
			renews = cli.FormatDate(timeline.ProjectNextRenewal(s.StartDate, s.Cycle, today))
		}
		auto := "no"
		if s.AutoRenew {
			auto = "yes"
		}

		rows = append(rows, []string{
			s.Name,
			shortID(s.ID),
			cli.FormatAmount(s.Amount, currency),
			cli.FormatCycle(s.Cycle),
			cli.FormatDate(s.StartDate),
			cli.FormatEndDate(s.EndDate),
			renews + " (" + auto + ")",
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "ID", "Amount", "Cycle", "Start", "End", "Renews (auto)"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

// shortID keeps tables readable; full ids still work everywhere keys are
// accepted since name lookup falls back to Get.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
