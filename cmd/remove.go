package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagRemoveYes bool

var removeCmd = &cobra.Command{
	Use:     "remove <id|name>",
	Aliases: []string{"rm"},
	Short:   "Remove a subscription",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&flagRemoveYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
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

	if !flagRemoveYes {
		fmt.Printf("Remove %q? [y/N] ", sub.Name)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := s.Delete(sub.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %q\n", sub.Name)
	return nil
}
