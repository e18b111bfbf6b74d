package cmd

import (
	"fmt"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/config"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	today, err := resolveToday(timeline.RealClock{})
	if err != nil {
		return err
	}

	dbPath := config.DBPath(cfg)
	if flagDB != "" {
		dbPath = flagDB
	}

	app := tui.NewApp(cfg, dbPath, today)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
