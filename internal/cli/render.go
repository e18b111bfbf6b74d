package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	settledStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	projectedStyle = lipgloss.NewStyle().Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	// Calculate column widths
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if len(h) > widths[i] {
				widths[i] = len(h)
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols && len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}

	var b strings.Builder

	// Title above table if present
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	// Top border
	b.WriteString(dimStyle.Render("╭"))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("┬"))
		}
	}
	b.WriteString(dimStyle.Render("╮"))
	b.WriteString("\n")

	// Header row
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			w := widths[i]
			padded := fmt.Sprintf(" %-*s ", w, h)
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")

		// Header separator
		b.WriteString(dimStyle.Render("├"))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("┼"))
			}
		}
		b.WriteString(dimStyle.Render("┤"))
		b.WriteString("\n")
	}

	// Data rows
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			// Separator row
			b.WriteString(dimStyle.Render("├"))
			for i, w := range widths {
				b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
				if i < numCols-1 {
					b.WriteString(dimStyle.Render("┼"))
				}
			}
			b.WriteString(dimStyle.Render("┤"))
			b.WriteString("\n")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			w := widths[i]
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", w, cell)
			} else {
				padded = fmt.Sprintf(" %*s ", w, cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	// Bottom border
	b.WriteString(dimStyle.Render("╰"))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("┴"))
		}
	}
	b.WriteString(dimStyle.Render("╯"))
	b.WriteString("\n")

	return b.String()
}

const timelineNameWidth = 16

// RenderTimeline renders the subscription Gantt as plain styled text: a
// month-grid header derived from the window, then one row per entry with the
// settled run solid and the projected run dimmed. Geometry comes entirely
// from SplitBar; this function only scales percentages to columns.
func RenderTimeline(subs []model.Subscription, w timeline.Window, today time.Time, width int) string {
	chartW := width - timelineNameWidth - 2
	if chartW < 12 {
		chartW = 12
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timelineNameWidth+2))
	b.WriteString(mutedStyle.Render(MonthGrid(w, chartW)))
	b.WriteString("\n")

	for _, sub := range subs {
		if sub.IsCategory() {
			b.WriteString(headerStyle.Render(truncateName(sub.Name, timelineNameWidth)))
			b.WriteString("\n")
			continue
		}

		b.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", timelineNameWidth, truncateName(sub.Name, timelineNameWidth))))
		b.WriteString("  ")
		b.WriteString(renderBarRow(timeline.SplitBar(sub, w, today), chartW))
		b.WriteString("\n")
	}

	return b.String()
}

// MonthGrid renders the x-axis month labels for a window scaled to width
// columns.
func MonthGrid(w timeline.Window, width int) string {
	buf := []byte(strings.Repeat(" ", width))
	totalDays := w.TotalDays()

	lastEnd := -1
	for _, m := range w.Months {
		col := columnOf(timeline.PositionOf(m, w.Start, totalDays), width)
		label := FormatMonthLabel(m)
		end := col + len(label)
		if col <= lastEnd || end > width {
			continue
		}
		copy(buf[col:end], label)
		lastEnd = end
	}
	return string(buf)
}

// renderBarRow paints one subscription's segments into a fixed-width row.
func renderBarRow(segs []model.BarSegment, width int) string {
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}

	for _, seg := range segs {
		from := columnOf(seg.OffsetPercent, width)
		to := columnOf(seg.OffsetPercent+seg.WidthPercent, width)
		if to <= from {
			to = from + 1 // visible segments keep at least one cell
		}
		glyph := '█'
		if seg.Kind == model.SegmentProjected {
			glyph = '░'
		}
		for i := from; i < to && i < width; i++ {
			cells[i] = glyph
		}
	}

	// Style the two runs separately so the projected part reads dimmed.
	var settled, projected strings.Builder
	split := len(cells)
	for i, c := range cells {
		if c == '░' {
			split = i
			break
		}
	}
	settled.WriteString(string(cells[:split]))
	projected.WriteString(string(cells[split:]))

	return settledStyle.Render(settled.String()) + projectedStyle.Render(projected.String())
}

// columnOf scales a window percentage to a column index, clamped to [0, width].
func columnOf(percent float64, width int) int {
	col := int(percent / 100 * float64(width))
	if col < 0 {
		return 0
	}
	if col > width {
		return width
	}
	return col
}

func truncateName(name string, w int) string {
	if len(name) <= w {
		return name
	}
	if w <= 1 {
		return name[:w]
	}
	return name[:w-1] + "…"
}
