package cmd

import (
	"fmt"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"

	"github.com/spf13/cobra"
)

var (
	flagAddAmount    float64
	flagAddCycle     string
	flagAddStart     string
	flagAddEnd       string
	flagAddColor     string
	flagAddAutoRenew bool
	flagAddCategory  bool
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a subscription or a category separator",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().Float64Var(&flagAddAmount, "amount", 0, "Billing amount per cycle")
	addCmd.Flags().StringVar(&flagAddCycle, "cycle", "monthly", "Billing cycle: monthly or yearly")
	addCmd.Flags().StringVar(&flagAddStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&flagAddEnd, "end", "", "End date (YYYY-MM-DD, default open-ended)")
	addCmd.Flags().StringVar(&flagAddColor, "color", "", "Bar color (hex, e.g. #4385BE)")
	addCmd.Flags().BoolVar(&flagAddAutoRenew, "auto-renew", true, "Whether the subscription renews automatically")
	addCmd.Flags().BoolVar(&flagAddCategory, "category", false, "Add a category separator instead of a subscription")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	sub := model.Subscription{
		Name: args[0],
		Type: model.TypeService,
	}

	if flagAddCategory {
		sub.Type = model.TypeCategory
	} else {
		today, err := resolveToday(timeline.RealClock{})
		if err != nil {
			return err
		}

		sub.Amount = flagAddAmount
		sub.Cycle = model.Cycle(flagAddCycle)
		sub.Color = flagAddColor
		sub.AutoRenew = flagAddAutoRenew
		sub.StartDate = today
		if flagAddStart != "" {
			start, err := parseDate("--start", flagAddStart)
			if err != nil {
				return err
			}
			sub.StartDate = start
		}
		if flagAddEnd != "" {
			end, err := parseDate("--end", flagAddEnd)
			if err != nil {
				return err
			}
			sub.EndDate = &end
		}
	}

	if err := validateSubscription(sub); err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	created, err := s.Insert(sub)
	if err != nil {
		return err
	}

	if created.IsCategory() {
		fmt.Printf("Added category %q\n", created.Name)
	} else {
		fmt.Printf("Added %q (%s)\n", created.Name, shortID(created.ID))
	}
	return nil
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", flag, value)
	}
	return t, nil
}

// validateSubscription rejects malformed records before they reach the
// database. Reads degrade gracefully on bad data; writes do not accept it.
func validateSubscription(sub model.Subscription) error {
	if sub.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if sub.IsCategory() {
		return nil
	}
	if !sub.Cycle.Valid() {
		return fmt.Errorf("invalid cycle %q: expected monthly or yearly", sub.Cycle)
	}
	if sub.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if sub.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if sub.EndDate != nil && sub.EndDate.Before(sub.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			sub.EndDate.Format("2006-01-02"), sub.StartDate.Format("2006-01-02"))
	}
	return nil
}
