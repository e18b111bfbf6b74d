package daemon

import (
	"math"
	"testing"
	"time"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Entries:      6,
		Active:       4,
		Ended:        1,
		MonthlySpend: 42.5,
		YearlySpend:  510,
	}
	curr := Snapshot{
		Entries:      7,
		Active:       5,
		Ended:        1,
		MonthlySpend: 54.5,
		YearlySpend:  654,
	}

	delta := diffSnapshots(prev, curr)
	if delta.Entries != 1 {
		t.Fatalf("Entries delta = %d, want 1", delta.Entries)
	}
	if delta.Active != 1 {
		t.Fatalf("Active delta = %d, want 1", delta.Active)
	}
	if delta.Ended != 0 {
		t.Fatalf("Ended delta = %d, want 0", delta.Ended)
	}
	if math.Abs(delta.MonthlySpend-12) > 1e-9 {
		t.Fatalf("MonthlySpend delta = %.2f, want 12.00", delta.MonthlySpend)
	}
	if math.Abs(delta.YearlySpend-144) > 1e-9 {
		t.Fatalf("YearlySpend delta = %.2f, want 144.00", delta.YearlySpend)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DBPath:       "subman.db",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestTimelinePayloadEmptyStore(t *testing.T) {
	s := New(Config{DBPath: "subman.db"})

	now := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	payload, err := s.timelinePayload(now)
	if err != nil {
		t.Fatalf("timelinePayload: %v", err)
	}

	if payload.WindowStart != "2024-04-01" {
		t.Errorf("WindowStart = %s, want 2024-04-01", payload.WindowStart)
	}
	if payload.WindowEnd != "2025-06-01" {
		t.Errorf("WindowEnd = %s, want 2025-06-01", payload.WindowEnd)
	}
	if payload.Months != 15 {
		t.Errorf("Months = %d, want 15", payload.Months)
	}
	if len(payload.Entries) != 0 {
		t.Errorf("Entries = %d, want 0", len(payload.Entries))
	}
}
