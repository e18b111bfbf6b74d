package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "subscriptions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func insertNamed(t *testing.T, s *Store, names ...string) []model.Subscription {
	t.Helper()
	var subs []model.Subscription
	for _, name := range names {
		sub, err := s.Insert(model.Subscription{
			Name:      name,
			Type:      model.TypeService,
			Cycle:     model.CycleMonthly,
			Amount:    10,
			StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			AutoRenew: true,
		})
		if err != nil {
			t.Fatalf("Insert %q: %v", name, err)
		}
		subs = append(subs, sub)
	}
	return subs
}

func assertOrder(t *testing.T, s *Store, wantNames ...string) {
	t.Helper()
	subs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != len(wantNames) {
		t.Fatalf("len = %d, want %d", len(subs), len(wantNames))
	}
	for i, sub := range subs {
		if sub.Name != wantNames[i] {
			t.Errorf("position %d = %q, want %q", i, sub.Name, wantNames[i])
		}
		if sub.SortOrder != i {
			t.Errorf("%q SortOrder = %d, want %d (must stay contiguous)", sub.Name, sub.SortOrder, i)
		}
	}
}

func TestInsertAssignsIDAndOrder(t *testing.T) {
	s := openTestStore(t)
	subs := insertNamed(t, s, "Music", "Cloud", "News")

	for i, sub := range subs {
		if sub.ID == "" {
			t.Errorf("subscription %d has empty id", i)
		}
		if sub.SortOrder != i {
			t.Errorf("subscription %d SortOrder = %d, want %d", i, sub.SortOrder, i)
		}
	}
	assertOrder(t, s, "Music", "Cloud", "News")
}

func TestRoundTripFields(t *testing.T) {
	s := openTestStore(t)

	end := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	in := model.Subscription{
		Name:      "Insurance",
		Color:     "#D14D41",
		Amount:    249.99,
		Cycle:     model.CycleYearly,
		StartDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		AutoRenew: false,
		Type:      model.TypeService,
	}

	inserted, err := s.Insert(in)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Get(inserted.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.Name != in.Name || got.Color != in.Color || got.Amount != in.Amount {
		t.Errorf("fields = %q/%q/%v, want %q/%q/%v", got.Name, got.Color, got.Amount, in.Name, in.Color, in.Amount)
	}
	if got.Cycle != model.CycleYearly || got.AutoRenew {
		t.Errorf("cycle/autoRenew = %v/%v, want yearly/false", got.Cycle, got.AutoRenew)
	}
	if !got.StartDate.Equal(in.StartDate) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, in.StartDate)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, end)
	}
}

func TestOpenEndedDateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	subs := insertNamed(t, s, "Music")

	got, err := s.Get(subs[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.EndDate != nil {
		t.Errorf("EndDate = %v, want nil for open-ended", got.EndDate)
	}
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)
	subs := insertNamed(t, s, "Music")

	sub := subs[0]
	sub.Name = "Music Family"
	sub.Amount = 18
	if err := s.Update(sub); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Get(sub.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Music Family" || got.Amount != 18 {
		t.Errorf("after update: %q/%v, want Music Family/18", got.Name, got.Amount)
	}

	if err := s.Update(model.Subscription{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestDeleteRenumbers(t *testing.T) {
	s := openTestStore(t)
	subs := insertNamed(t, s, "A", "B", "C", "D")

	if err := s.Delete(subs[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	assertOrder(t, s, "A", "C", "D")

	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing = %v, want ErrNotFound", err)
	}
}

func TestMove(t *testing.T) {
	s := openTestStore(t)
	subs := insertNamed(t, s, "A", "B", "C", "D")

	if err := s.Move(subs[3].ID, 0); err != nil {
		t.Fatalf("Move to front: %v", err)
	}
	assertOrder(t, s, "D", "A", "B", "C")

	if err := s.Move(subs[3].ID, 2); err != nil {
		t.Fatalf("Move to middle: %v", err)
	}
	assertOrder(t, s, "A", "B", "D", "C")

	// Out-of-range indexes clamp instead of failing.
	if err := s.Move(subs[0].ID, 99); err != nil {
		t.Fatalf("Move past end: %v", err)
	}
	assertOrder(t, s, "B", "D", "C", "A")

	if err := s.Move("missing", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Move missing = %v, want ErrNotFound", err)
	}
}
