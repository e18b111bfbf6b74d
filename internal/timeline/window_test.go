package timeline

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeRange_Defaults(t *testing.T) {
	// now = 2024-05-15 -> window [2024-04-01, 2025-06-01], 15 months.
	now := time.Date(2024, time.May, 15, 9, 30, 0, 0, time.UTC)

	w, err := ComputeRange(nil, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !w.Start.Equal(date(2024, time.April, 1)) {
		t.Errorf("Start = %v, want 2024-04-01", w.Start)
	}
	if !w.End.Equal(date(2025, time.June, 1)) {
		t.Errorf("End = %v, want 2025-06-01", w.End)
	}
	if len(w.Months) != 15 {
		t.Fatalf("len(Months) = %d, want 15", len(w.Months))
	}
	for i := 1; i < len(w.Months); i++ {
		want := w.Months[i-1].AddDate(0, 1, 0)
		if !w.Months[i].Equal(want) {
			t.Errorf("Months[%d] = %v, want %v", i, w.Months[i], want)
		}
		if w.Months[i].Day() != 1 {
			t.Errorf("Months[%d] = %v, not first of month", i, w.Months[i])
		}
	}
}

func TestComputeRange_NormalizesCustomBounds(t *testing.T) {
	start := time.Date(2024, time.January, 17, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 9, 4, 0, 0, 0, time.UTC)

	w, err := ComputeRange(&start, &end, date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !w.Start.Equal(date(2024, time.January, 1)) {
		t.Errorf("Start = %v, want 2024-01-01", w.Start)
	}
	if !w.End.Equal(date(2024, time.March, 1)) {
		t.Errorf("End = %v, want 2024-03-01", w.End)
	}
	if len(w.Months) != 3 {
		t.Errorf("len(Months) = %d, want 3", len(w.Months))
	}
}

func TestComputeRange_EndBeforeStart(t *testing.T) {
	start := date(2024, time.June, 1)
	end := date(2024, time.January, 1)

	_, err := ComputeRange(&start, &end, date(2024, time.June, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestComputeRange_SingleMonth(t *testing.T) {
	only := date(2024, time.February, 1)

	w, err := ComputeRange(&only, &only, date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Months) != 1 {
		t.Fatalf("len(Months) = %d, want 1 when start == end", len(w.Months))
	}
	if w.TotalDays() != 0 {
		t.Errorf("TotalDays = %d, want 0 for degenerate window", w.TotalDays())
	}
}

func TestComputeRange_LeapYearStepping(t *testing.T) {
	// Stepping over February 2024 (leap) must land exactly on first-of-month.
	start := date(2024, time.January, 31) // normalizes to Jan 1
	end := date(2024, time.April, 1)

	w, err := ComputeRange(&start, &end, date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
		date(2024, time.April, 1),
	}
	if len(w.Months) != len(want) {
		t.Fatalf("len(Months) = %d, want %d", len(w.Months), len(want))
	}
	for i := range want {
		if !w.Months[i].Equal(want[i]) {
			t.Errorf("Months[%d] = %v, want %v", i, w.Months[i], want[i])
		}
	}
}

func TestWindow_TotalDays(t *testing.T) {
	w, err := ComputeRange(ptr(date(2024, time.January, 1)), ptr(date(2025, time.March, 1)), date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2024 is a leap year: 366 + 31 + 28 = 425 days.
	if got := w.TotalDays(); got != 425 {
		t.Errorf("TotalDays = %d, want 425", got)
	}
}

func ptr(t time.Time) *time.Time { return &t }
