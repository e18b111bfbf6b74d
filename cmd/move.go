package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <id|name> <index>",
	Short: "Move a subscription to a new position in the display order",
	Long:  "Positions are zero-based. Out-of-range indexes are clamped to the first or last position.",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q: expected a number", args[1])
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sub, err := findSubscription(s, args[0])
	if err != nil {
		return err
	}

	if err := s.Move(sub.ID, index); err != nil {
		return err
	}
	fmt.Printf("Moved %q to position %d\n", sub.Name, index)
	return nil
}
