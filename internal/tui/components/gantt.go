package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/cli"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const ganttNameWidth = 16

// Gantt renders the subscription timeline chart: a month-grid header, one
// row per entry with the settled run solid in the entry's color and the
// projected run dimmed, and a today marker column. cursor highlights the
// selected row (-1 for none). Geometry comes entirely from SplitBar.
func Gantt(subs []model.Subscription, w timeline.Window, today time.Time, width, cursor int) string {
	t := theme.Active
	palette := t.BarPalette()

	chartW := width - ganttNameWidth - 2
	if chartW < 12 {
		chartW = 12
	}

	totalDays := w.TotalDays()
	todayCol := ganttColumn(timeline.PositionOf(today, w.Start, totalDays), chartW)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedName := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	categoryStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.BorderBright).Background(t.Surface)
	gapStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(gapStyle.Render(strings.Repeat(" ", ganttNameWidth+2)))
	b.WriteString(headerStyle.Render(cli.MonthGrid(w, chartW)))
	b.WriteString("\n")

	serviceIdx := 0
	for i, sub := range subs {
		if sub.IsCategory() {
			b.WriteString(categoryStyle.Render(ganttName(sub.Name)))
			b.WriteString("\n")
			continue
		}

		color := palette[serviceIdx%len(palette)]
		if sub.Color != "" {
			color = lipgloss.Color(sub.Color)
		}
		serviceIdx++

		name := fmt.Sprintf("%-*s", ganttNameWidth, ganttName(sub.Name))
		if i == cursor {
			b.WriteString(selectedName.Render(name))
		} else {
			b.WriteString(nameStyle.Render(name))
		}
		b.WriteString(gapStyle.Render("  "))
		b.WriteString(ganttBarRow(timeline.SplitBar(sub, w, today), chartW, todayCol, color, markerStyle))
		b.WriteString("\n")
	}

	return b.String()
}

// ganttBarRow paints one entry's segments into a fixed-width row, with the
// today marker drawn only where no bar cell covers it.
func ganttBarRow(segs []model.BarSegment, width, todayCol int, color lipgloss.Color, marker lipgloss.Style) string {
	t := theme.Active

	const (
		cellEmpty = iota
		cellSettled
		cellProjected
	)
	cells := make([]int, width)

	for _, seg := range segs {
		from := ganttColumn(seg.OffsetPercent, width)
		to := ganttColumn(seg.OffsetPercent+seg.WidthPercent, width)
		if to <= from {
			to = from + 1 // visible segments keep at least one cell
		}
		kind := cellSettled
		if seg.Kind == model.SegmentProjected {
			kind = cellProjected
		}
		for i := from; i < to && i < width; i++ {
			cells[i] = kind
		}
	}

	settledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	projectedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, c := range cells {
		switch {
		case c == cellSettled:
			b.WriteString(settledStyle.Render("█"))
		case c == cellProjected:
			b.WriteString(projectedStyle.Render("░"))
		case i == todayCol:
			b.WriteString(marker.Render("┊"))
		default:
			b.WriteString(emptyStyle.Render(" "))
		}
	}
	return b.String()
}

// ganttColumn scales a window percentage to a column index, clamped to [0, width].
func ganttColumn(percent float64, width int) int {
	col := int(percent / 100 * float64(width))
	if col < 0 {
		return 0
	}
	if col > width {
		return width
	}
	return col
}

func ganttName(name string) string {
	runes := []rune(name)
	if len(runes) <= ganttNameWidth {
		return name
	}
	return string(runes[:ganttNameWidth-1]) + "…"
}
