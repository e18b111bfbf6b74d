package cmd

import (
	"fmt"
	"os"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/transfer"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagImportReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import subscriptions from a JSON Lines backup",
	Long:  "Reads a backup written by `subman export` and appends its entries to the database. With --replace the existing entries are removed first.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportReplace, "replace", false, "Remove existing entries before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	res, err := transfer.ImportFile(args[0])
	if err != nil {
		return err
	}
	if len(res.Subs) == 0 && res.SkippedLines == 0 {
		fmt.Println("  Backup file contains no entries.")
		return nil
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	existing, err := s.List()
	if err != nil {
		return err
	}

	if flagImportReplace {
		for _, sub := range existing {
			if err := s.Delete(sub.ID); err != nil {
				return fmt.Errorf("clear existing entries: %w", err)
			}
		}
		existing = nil
	}

	// Imported ids must not collide with records already in the database;
	// colliding or missing ids get fresh ones.
	taken := make(map[string]bool, len(existing))
	for _, sub := range existing {
		taken[sub.ID] = true
	}

	imported := 0
	for _, sub := range res.Subs {
		if sub.ID == "" || taken[sub.ID] {
			sub.ID = uuid.NewString()
		}
		taken[sub.ID] = true

		if _, err := s.Insert(sub); err != nil {
			return fmt.Errorf("import %q: %w", sub.Name, err)
		}
		imported++
	}

	fmt.Printf("  Imported %d entries from %s\n", imported, args[0])
	if res.SkippedLines > 0 {
		fmt.Fprintf(os.Stderr, "  warning: skipped %d malformed or invalid lines\n", res.SkippedLines)
	}
	return nil
}
