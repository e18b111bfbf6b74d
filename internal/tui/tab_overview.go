package tui

import (
	"fmt"
	"strings"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/components"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	currency := a.cfg.General.Currency
	stats := a.stats
	var b strings.Builder

	if len(a.subs) == 0 {
		return a.renderEmptyHint(cw)
	}

	// Row 1: Metric cards
	nextRenewal := "-"
	nextDetail := ""
	if !stats.NextRenewal.IsZero() {
		nextRenewal = cli.FormatDate(stats.NextRenewal)
		nextDetail = stats.NextRenewalName
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Active", fmt.Sprintf("%d", stats.ActiveCount), fmt.Sprintf("%d ended", stats.EndedCount)},
		{"Monthly", cli.FormatAmount(stats.MonthlySpend, currency), "amortized"},
		{"Yearly", cli.FormatAmount(stats.YearlySpend, currency), ""},
		{"Next renewal", nextRenewal, nextDetail},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Monthly spend chart over the visible window
	if len(a.monthly) > 0 {
		vals := make([]float64, len(a.monthly))
		labels := make([]string, len(a.monthly))
		for i, m := range a.monthly {
			vals[i] = m.Total
			labels[i] = cli.FormatMonthLabel(m.Month)
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			"Monthly Spend",
			components.BarChart(vals, labels, t.Blue, chartInnerW, chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Upcoming renewals
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var renewBody strings.Builder
	if len(a.renewals) == 0 {
		renewBody.WriteString(dimStyle.Render("Nothing renews in the next 90 days."))
		renewBody.WriteString("\n")
	}
	limit := 8
	if len(a.renewals) < limit {
		limit = len(a.renewals)
	}
	for _, r := range a.renewals[:limit] {
		days := int(r.Date.Sub(a.today).Hours() / 24)
		in := fmt.Sprintf("in %d days", days)
		if days == 0 {
			in = "today"
		} else if days == 1 {
			in = "tomorrow"
		}
		fmt.Fprintf(&renewBody, "%s %s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-20s", truncEntry(r.Name, 20))),
			dateStyle.Render(cli.FormatDate(r.Date)),
			amountStyle.Render(fmt.Sprintf("%10s", cli.FormatAmount(r.Amount, currency))),
			dimStyle.Render(in))
	}
	b.WriteString(components.ContentCard("Upcoming Renewals (90d)", renewBody.String(), cw))

	return b.String()
}

func truncEntry(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
