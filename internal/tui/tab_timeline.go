package tui

import (
	"fmt"
	"strings"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/components"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTimelineTab(cw int) string {
	t := theme.Active

	if len(a.subs) == 0 {
		return a.renderEmptyHint(cw)
	}

	innerW := components.CardInnerWidth(cw)
	gantt := components.Gantt(a.subs, a.window, a.today, innerW, -1)

	title := fmt.Sprintf("Timeline  %s - %s",
		a.window.Start.Format("Jan 2006"), a.window.End.Format("Jan 2006"))

	var b strings.Builder
	b.WriteString(components.ContentCard(title, gantt, cw))
	b.WriteString("\n")

	currency := a.cfg.General.Currency
	summaryStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)

	b.WriteString("  ")
	b.WriteString(accentStyle.Render(fmt.Sprintf("%d", a.stats.ActiveCount)))
	b.WriteString(summaryStyle.Render(" active · "))
	b.WriteString(accentStyle.Render(cli.FormatAmount(a.stats.MonthlySpend, currency)))
	b.WriteString(summaryStyle.Render("/month · "))
	b.WriteString(accentStyle.Render(cli.FormatAmount(a.stats.YearlySpend, currency)))
	b.WriteString(summaryStyle.Render("/year"))

	return b.String()
}

func (a App) renderEmptyHint(cw int) string {
	t := theme.Active
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return components.ContentCard("",
		hintStyle.Render("No subscriptions yet. Press 'a' to add one."), cw)
}
