package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
)

// fifteenMonthWindow returns the [2024-01-01, 2025-03-01] window used by the
// scenario tests: 425 days total.
func fifteenMonthWindow(t *testing.T) Window {
	t.Helper()
	w, err := ComputeRange(ptr(date(2024, time.January, 1)), ptr(date(2025, time.March, 1)), date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("ComputeRange: %v", err)
	}
	return w
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPositionOf(t *testing.T) {
	w := fifteenMonthWindow(t)
	total := w.TotalDays()

	tests := []struct {
		name string
		d    time.Time
		want float64
	}{
		{"before window clamps to zero", date(2023, time.December, 25), 0},
		{"window start", w.Start, 0},
		{"window end is 100", w.End, 100},
		{"past window end unclamped", date(2025, time.March, 11), float64(435) / 425 * 100},
		{"mid window", date(2024, time.June, 1), float64(152) / 425 * 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PositionOf(tc.d, w.Start, total)
			if !approxEqual(got, tc.want) {
				t.Errorf("PositionOf(%v) = %v, want %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestPositionOf_DegenerateWindow(t *testing.T) {
	if got := PositionOf(date(2024, time.June, 1), date(2024, time.June, 1), 0); got != 0 {
		t.Errorf("PositionOf with zero totalDays = %v, want 0", got)
	}
}

func TestWidthOf(t *testing.T) {
	w := fifteenMonthWindow(t)
	total := w.TotalDays()

	tests := []struct {
		name  string
		start time.Time
		end   *time.Time
		want  float64
	}{
		{"single day has non-zero width", date(2024, time.June, 1), ptr(date(2024, time.June, 1)), float64(1) / 425 * 100},
		{"entirely before window", date(2023, time.January, 1), ptr(date(2023, time.June, 1)), 0},
		{"starts after window", date(2025, time.April, 1), nil, 0},
		{"open end clips to window end", date(2024, time.June, 1), nil, float64(273+1) / 425 * 100},
		{"end past window clips", date(2024, time.June, 1), ptr(date(2026, time.January, 1)), float64(273+1) / 425 * 100},
		{"start before window clips", date(2023, time.June, 1), ptr(date(2024, time.January, 31)), float64(30+1) / 425 * 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WidthOf(tc.start, tc.end, w, total)
			if !approxEqual(got, tc.want) {
				t.Errorf("WidthOf = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProjectNextRenewal(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		cycle model.Cycle
		ref   time.Time
		want  time.Time
	}{
		{
			"monthly mid-cycle",
			date(2024, time.June, 1), model.CycleMonthly, date(2024, time.August, 15),
			date(2024, time.September, 1),
		},
		{
			"monthly on renewal day steps past it",
			date(2024, time.June, 1), model.CycleMonthly, date(2024, time.September, 1),
			date(2024, time.October, 1),
		},
		{
			"yearly",
			date(2022, time.March, 10), model.CycleYearly, date(2024, time.August, 15),
			date(2025, time.March, 10),
		},
		{
			"future start renews one period after start",
			date(2024, time.December, 1), model.CycleMonthly, date(2024, time.August, 15),
			date(2025, time.January, 1),
		},
		{
			// Scenario E: Jan 31 + 1 month normalizes per time.AddDate.
			// 2024 is a leap year, so the nominal Feb 31 lands on Mar 2.
			"month-end normalization leap year",
			date(2024, time.January, 31), model.CycleMonthly, date(2024, time.February, 15),
			date(2024, time.March, 2),
		},
		{
			"month-end normalization non-leap year",
			date(2023, time.January, 31), model.CycleMonthly, date(2023, time.February, 15),
			date(2023, time.March, 3),
		},
		{
			// Candidates stay anchored at the original start date, so the
			// estimate must walk back to the earliest renewal after ref.
			"anchored stepping does not skip normalized renewals",
			date(2024, time.January, 31), model.CycleMonthly, date(2024, time.March, 1),
			date(2024, time.March, 2),
		},
		{
			"far past start date terminates",
			date(1990, time.January, 1), model.CycleMonthly, date(2024, time.August, 15),
			date(2024, time.September, 1),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectNextRenewal(tc.start, tc.cycle, tc.ref)
			if !got.Equal(tc.want) {
				t.Errorf("ProjectNextRenewal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProjectNextRenewal_Monotonic(t *testing.T) {
	// Increasing the reference date never decreases the projected renewal.
	start := date(2024, time.January, 31)
	prev := time.Time{}
	for ref := date(2024, time.February, 1); ref.Before(date(2025, time.June, 1)); ref = ref.AddDate(0, 0, 7) {
		got := ProjectNextRenewal(start, model.CycleMonthly, ref)
		if !got.After(ref) {
			t.Fatalf("renewal %v not strictly after ref %v", got, ref)
		}
		if got.Before(prev) {
			t.Fatalf("renewal went backwards: ref %v gave %v, previous %v", ref, got, prev)
		}
		prev = got
	}
}

func TestSplitBar_ScenarioA(t *testing.T) {
	// Auto-renewing monthly subscription, open-ended: settled until the next
	// renewal after today, projected to the window edge.
	w := fifteenMonthWindow(t)
	total := w.TotalDays()
	today := date(2024, time.August, 15)

	sub := model.Subscription{
		ID:        "a",
		Name:      "Streaming",
		Type:      model.TypeService,
		Cycle:     model.CycleMonthly,
		StartDate: date(2024, time.June, 1),
		AutoRenew: true,
	}

	segs := SplitBar(sub, w, today)
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}

	settled, projected := segs[0], segs[1]
	if settled.Kind != model.SegmentSettled || projected.Kind != model.SegmentProjected {
		t.Fatalf("segment kinds = %v, %v; want settled, projected", settled.Kind, projected.Kind)
	}

	barStart := PositionOf(sub.StartDate, w.Start, total)
	split := PositionOf(date(2024, time.September, 1), w.Start, total)
	barEnd := barStart + WidthOf(sub.StartDate, &w.End, w, total)

	if !approxEqual(settled.OffsetPercent, barStart) {
		t.Errorf("settled offset = %v, want %v", settled.OffsetPercent, barStart)
	}
	if !approxEqual(settled.OffsetPercent+settled.WidthPercent, split) {
		t.Errorf("settled end = %v, want split at %v", settled.OffsetPercent+settled.WidthPercent, split)
	}
	// Flush shared edge at the split point.
	if !approxEqual(projected.OffsetPercent, split) {
		t.Errorf("projected offset = %v, want %v", projected.OffsetPercent, split)
	}
	if !approxEqual(projected.OffsetPercent+projected.WidthPercent, barEnd) {
		t.Errorf("projected end = %v, want %v", projected.OffsetPercent+projected.WidthPercent, barEnd)
	}
}

func TestSplitBar_ScenarioB(t *testing.T) {
	// Explicit end date without auto-renew: one settled segment ending at the
	// end date, no projected segment, regardless of today.
	w := fifteenMonthWindow(t)
	total := w.TotalDays()

	sub := model.Subscription{
		ID:        "b",
		Name:      "Insurance",
		Type:      model.TypeService,
		Cycle:     model.CycleYearly,
		StartDate: date(2024, time.June, 1),
		EndDate:   ptr(date(2024, time.December, 1)),
		AutoRenew: false,
	}

	for _, today := range []time.Time{
		date(2024, time.February, 1),
		date(2024, time.August, 15),
		date(2025, time.July, 1),
	} {
		segs := SplitBar(sub, w, today)
		if len(segs) != 1 {
			t.Fatalf("today=%v: len(segs) = %d, want 1", today, len(segs))
		}
		if segs[0].Kind != model.SegmentSettled {
			t.Errorf("today=%v: kind = %v, want settled", today, segs[0].Kind)
		}
		wantEnd := PositionOf(*sub.EndDate, w.Start, total)
		if got := segs[0].OffsetPercent + segs[0].WidthPercent; !approxEqual(got, wantEnd) {
			t.Errorf("today=%v: settled end = %v, want %v", today, got, wantEnd)
		}
	}
}

func TestSplitBar_ScenarioC(t *testing.T) {
	// Start after the window end: nothing to draw.
	w := fifteenMonthWindow(t)

	sub := model.Subscription{
		ID:        "c",
		Type:      model.TypeService,
		Cycle:     model.CycleMonthly,
		StartDate: date(2025, time.June, 1),
		AutoRenew: true,
	}

	if segs := SplitBar(sub, w, date(2024, time.August, 15)); len(segs) != 0 {
		t.Fatalf("len(segs) = %d, want 0", len(segs))
	}
}

func TestSplitBar_Idempotent(t *testing.T) {
	w := fifteenMonthWindow(t)
	today := date(2024, time.August, 15)
	sub := model.Subscription{
		ID:        "a",
		Type:      model.TypeService,
		Cycle:     model.CycleMonthly,
		StartDate: date(2024, time.June, 1),
		AutoRenew: true,
	}

	first := SplitBar(sub, w, today)
	second := SplitBar(sub, w, today)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSplitBar_SkipsCategoriesAndInvalidDates(t *testing.T) {
	w := fifteenMonthWindow(t)
	today := date(2024, time.August, 15)

	category := model.Subscription{ID: "sep", Type: model.TypeCategory}
	if segs := SplitBar(category, w, today); segs != nil {
		t.Errorf("category segments = %v, want nil", segs)
	}

	// A record that slipped past the data-entry boundary degrades to nothing
	// instead of aborting the batch.
	noStart := model.Subscription{ID: "bad", Type: model.TypeService, Cycle: model.CycleMonthly, AutoRenew: true}
	if segs := SplitBar(noStart, w, today); segs != nil {
		t.Errorf("zero start date segments = %v, want nil", segs)
	}
}

func TestSplitBar_PaidThroughWithAutoRenew(t *testing.T) {
	// autoRenew with an explicit end date: the end date is a paid-through
	// marker, so the split lands there and the bar continues projected.
	w := fifteenMonthWindow(t)
	total := w.TotalDays()

	sub := model.Subscription{
		ID:        "d",
		Type:      model.TypeService,
		Cycle:     model.CycleMonthly,
		StartDate: date(2024, time.March, 1),
		EndDate:   ptr(date(2024, time.October, 1)),
		AutoRenew: true,
	}

	segs := SplitBar(sub, w, date(2024, time.August, 15))
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	wantSplit := PositionOf(*sub.EndDate, w.Start, total)
	if !approxEqual(segs[0].OffsetPercent+segs[0].WidthPercent, wantSplit) {
		t.Errorf("split = %v, want position of end date %v", segs[0].OffsetPercent+segs[0].WidthPercent, wantSplit)
	}
}
