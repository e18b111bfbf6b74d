package cmd

import (
	"fmt"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagEditName      string
	flagEditAmount    float64
	flagEditCycle     string
	flagEditStart     string
	flagEditEnd       string
	flagEditColor     string
	flagEditAutoRenew string
)

var editCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Edit fields of an existing subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditName, "name", "", "New name")
	editCmd.Flags().Float64Var(&flagEditAmount, "amount", -1, "New billing amount per cycle")
	editCmd.Flags().StringVar(&flagEditCycle, "cycle", "", "New billing cycle: monthly or yearly")
	editCmd.Flags().StringVar(&flagEditStart, "start", "", "New start date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&flagEditEnd, "end", "", "New end date (YYYY-MM-DD), or 'open' to clear")
	editCmd.Flags().StringVar(&flagEditColor, "color", "", "New bar color (hex)")
	editCmd.Flags().StringVar(&flagEditAutoRenew, "auto-renew", "", "Set auto-renew: true or false")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sub, err := findSubscription(s, args[0])
	if err != nil {
		return err
	}

	changed := false
	if flagEditName != "" {
		sub.Name = flagEditName
		changed = true
	}
	if cmd.Flags().Changed("amount") {
		sub.Amount = flagEditAmount
		changed = true
	}
	if flagEditCycle != "" {
		sub.Cycle = model.Cycle(flagEditCycle)
		changed = true
	}
	if flagEditColor != "" {
		sub.Color = flagEditColor
		changed = true
	}
	if flagEditStart != "" {
		start, err := parseDate("--start", flagEditStart)
		if err != nil {
			return err
		}
		sub.StartDate = start
		changed = true
	}
	if flagEditEnd != "" {
		if flagEditEnd == "open" {
			sub.EndDate = nil
		} else {
			end, err := parseDate("--end", flagEditEnd)
			if err != nil {
				return err
			}
			sub.EndDate = &end
		}
		changed = true
	}
	if flagEditAutoRenew != "" {
		switch flagEditAutoRenew {
		case "true":
			sub.AutoRenew = true
		case "false":
			sub.AutoRenew = false
		default:
			return fmt.Errorf("invalid --auto-renew %q: expected true or false", flagEditAutoRenew)
		}
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}

	if err := validateSubscription(sub); err != nil {
		return err
	}
	if err := s.Update(sub); err != nil {
		return err
	}

	fmt.Printf("Updated %q\n", sub.Name)
	return nil
}
