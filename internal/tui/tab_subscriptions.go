package tui

import (
	"fmt"
	"strings"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/components"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// subsState tracks the subscriptions tab state.
type subsState struct {
	cursor int
}

func (a App) renderSubscriptionsTab(cw, contentH int) string {
	if len(a.subs) == 0 {
		return a.renderEmptyHint(cw)
	}

	if a.isCompactLayout() {
		return a.renderSubsList(cw, contentH)
	}

	halves := components.LayoutRow(cw, 2)
	list := a.renderSubsList(halves[0], contentH)
	detail := a.renderSubsDetail(halves[1])
	return components.CardRow([]string{list, detail})
}

func (a App) renderSubsList(w, contentH int) string {
	t := theme.Active
	currency := a.cfg.General.Currency
	innerW := components.CardInnerWidth(w)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	categoryStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	endedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// Scroll the list so the cursor stays visible; the offset is derived
	// from the cursor each frame rather than carried as state.
	visible := contentH - 4 // card border + title
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if a.subsState.cursor >= visible {
		offset = a.subsState.cursor - visible + 1
	}

	nameW := innerW - 16
	if nameW < 10 {
		nameW = 10
	}

	var b strings.Builder
	for i := offset; i < len(a.subs) && i < offset+visible; i++ {
		sub := a.subs[i]

		if sub.IsCategory() {
			line := "  " + truncEntry(sub.Name, nameW)
			if i == a.subsState.cursor {
				b.WriteString(markerStyle.Render("▸ ") + selectedStyle.Render(line[2:]))
			} else {
				b.WriteString(categoryStyle.Render(line))
			}
			b.WriteString("\n")
			continue
		}

		amount := fmt.Sprintf("%9s/%s",
			cli.FormatAmount(sub.Amount, currency),
			string(sub.Cycle)[:2])

		line := fmt.Sprintf("%-*s %s", nameW, truncEntry(sub.Name, nameW), amount)
		switch {
		case i == a.subsState.cursor:
			b.WriteString(markerStyle.Render("▸ ") + selectedStyle.Render(line))
		case !sub.ActiveOn(a.today):
			b.WriteString(endedStyle.Render("  " + line))
		default:
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(a.subs) > visible {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d",
			offset+1,
			minInt(offset+visible, len(a.subs)),
			len(a.subs))))
	}

	return components.ContentCard("Subscriptions", b.String(), w)
}

func (a App) renderSubsDetail(w int) string {
	t := theme.Active
	currency := a.cfg.General.Currency

	sel, ok := a.selected()
	if !ok {
		return components.ContentCard("Detail", "", w)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	if sel.IsCategory() {
		b.WriteString(labelStyle.Render("Category separator"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("[d] delete  [J/K] reorder"))
		return components.ContentCard(sel.Name, b.String(), w)
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("Amount", fmt.Sprintf("%s %s", cli.FormatAmount(sel.Amount, currency), cli.FormatCycle(sel.Cycle)))
	row("Amortized", fmt.Sprintf("%s/month · %s/year",
		cli.FormatAmount(sel.MonthlyAmount(), currency),
		cli.FormatAmount(sel.YearlyAmount(), currency)))
	row("Start", cli.FormatDate(sel.StartDate))
	row("End", cli.FormatEndDate(sel.EndDate))
	row("Auto-renew", fmt.Sprintf("%v", sel.AutoRenew))

	if sel.ActiveOn(a.today) {
		if sel.AutoRenew || sel.EndDate == nil {
			next := timeline.ProjectNextRenewal(sel.StartDate, sel.Cycle, a.today)
			row("Next renewal", cli.FormatDate(next))
		} else {
			row("Status", "paid through "+cli.FormatDate(*sel.EndDate))
		}
	} else if sel.EndDate != nil && sel.EndDate.Before(a.today) {
		row("Status", "ended")
	} else {
		row("Status", "starts "+cli.FormatDate(sel.StartDate))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[e] edit  [d] delete  [J/K] reorder"))

	return components.ContentCard(sel.Name, b.String(), w)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
