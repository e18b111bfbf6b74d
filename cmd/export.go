package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/transfer"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all subscriptions as a JSON Lines backup",
	Long:  "Writes every subscription to a JSON Lines backup file, or to stdout when no file is given. Restore with `subman import`.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	subs, err := loadSubscriptions(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return transfer.Export(os.Stdout, subs, time.Now())
	}

	path := args[0]
	if err := transfer.ExportFile(path, subs, time.Now()); err != nil {
		return err
	}
	fmt.Printf("  Exported %d entries to %s\n", len(subs), path)
	return nil
}
