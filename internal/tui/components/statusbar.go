package components

import (
	"fmt"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// record count and reference date on the right.
func RenderStatusBar(width int, subCount int, today string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [a]dd  [e]dit  [d]elete  [q]uit"
	right := fmt.Sprintf("%d entries · %s ", subCount, today)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
