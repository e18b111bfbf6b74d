package components

import (
	"strings"
	"testing"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func ganttDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGanttColumnClamps(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{100, 100, 100},
		{-10, 100, 0},
		{140, 100, 100},
	}
	for _, tc := range tests {
		if got := ganttColumn(tc.percent, tc.width); got != tc.want {
			t.Errorf("ganttColumn(%v, %d) = %d, want %d", tc.percent, tc.width, got, tc.want)
		}
	}
}

func TestGanttRowCount(t *testing.T) {
	theme.SetActive("flexoki-dark")

	now := ganttDate(2024, time.May, 15)
	w, err := timeline.ComputeRange(nil, nil, now)
	if err != nil {
		t.Fatalf("ComputeRange: %v", err)
	}

	subs := []model.Subscription{
		{Name: "Media", Type: model.TypeCategory},
		{Name: "Music", Type: model.TypeService, Amount: 12, Cycle: model.CycleMonthly,
			StartDate: ganttDate(2024, time.January, 10), AutoRenew: true},
		{Name: "Backup", Type: model.TypeService, Amount: 60, Cycle: model.CycleYearly,
			StartDate: ganttDate(2023, time.March, 5), AutoRenew: true},
	}

	out := Gantt(subs, w, now, 100, -1)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Header row plus one row per entry, categories included.
	if got, want := len(lines), 1+len(subs); got != want {
		t.Fatalf("Gantt rendered %d lines, want %d", got, want)
	}

	for i, line := range lines {
		if !strings.Contains(line, "\x1b[") {
			t.Errorf("line %d has no ANSI styling", i)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		for _, total := range []int{80, 101, 120} {
			widths := LayoutRow(total, n)
			sum := 0
			for _, w := range widths {
				sum += w
			}
			if sum != total {
				t.Errorf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
}
