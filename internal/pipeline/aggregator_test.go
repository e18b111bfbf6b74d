package pipeline

import (
	"testing"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func fixtureSubs() []model.Subscription {
	return []model.Subscription{
		{
			ID: "cat", Name: "Entertainment", Type: model.TypeCategory,
		},
		{
			ID: "music", Name: "Music", Type: model.TypeService,
			Amount: 12, Cycle: model.CycleMonthly,
			StartDate: date(2024, time.January, 10), AutoRenew: true,
		},
		{
			ID: "backup", Name: "Backup", Type: model.TypeService,
			Amount: 60, Cycle: model.CycleYearly,
			StartDate: date(2023, time.March, 5), AutoRenew: true,
		},
		{
			ID: "gym", Name: "Gym", Type: model.TypeService,
			Amount: 30, Cycle: model.CycleMonthly,
			StartDate: date(2023, time.June, 1),
			EndDate:   ptr(date(2024, time.February, 29)),
			AutoRenew: false,
		},
	}
}

func TestSummarize(t *testing.T) {
	today := date(2024, time.August, 15)
	stats := Summarize(fixtureSubs(), today)

	if stats.ActiveCount != 2 {
		t.Errorf("ActiveCount = %d, want 2", stats.ActiveCount)
	}
	if stats.EndedCount != 1 {
		t.Errorf("EndedCount = %d, want 1", stats.EndedCount)
	}
	// 12 monthly + 60/12 yearly = 17/month. Category and ended excluded.
	if want := 17.0; stats.MonthlySpend != want {
		t.Errorf("MonthlySpend = %v, want %v", stats.MonthlySpend, want)
	}
	if want := 12.0*12 + 60; stats.YearlySpend != want {
		t.Errorf("YearlySpend = %v, want %v", stats.YearlySpend, want)
	}
	// Music renews Sep 10, Backup renews Mar 5 2025: Music is next.
	if stats.NextRenewalName != "Music" {
		t.Errorf("NextRenewalName = %q, want Music", stats.NextRenewalName)
	}
	if !stats.NextRenewal.Equal(date(2024, time.September, 10)) {
		t.Errorf("NextRenewal = %v, want 2024-09-10", stats.NextRenewal)
	}
}

func TestMonthlySpend_ZeroFillsAndClips(t *testing.T) {
	w, err := timeline.ComputeRange(ptr(date(2024, time.January, 1)), ptr(date(2024, time.April, 1)), date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("ComputeRange: %v", err)
	}

	series := MonthlySpend(fixtureSubs(), w)
	if len(series) != 4 {
		t.Fatalf("len(series) = %d, want 4", len(series))
	}

	// Jan: music (12, starts Jan 10) + backup (5) + gym (30) = 47.
	// Feb: same, gym ends Feb 29 -> still 47.
	// Mar, Apr: gym gone -> 17.
	want := []float64{47, 47, 17, 17}
	for i, ms := range series {
		if ms.Total != want[i] {
			t.Errorf("series[%d] (%s) = %v, want %v", i, ms.Month.Format("2006-01"), ms.Total, want[i])
		}
	}
}

func TestUpcomingRenewals(t *testing.T) {
	today := date(2024, time.August, 15)
	renewals := UpcomingRenewals(fixtureSubs(), today, 60*24*time.Hour)

	// Within 60 days: Music (Sep 10). Backup renews Mar 2025, out of horizon;
	// Gym has a hard end date and never renews.
	if len(renewals) != 1 {
		t.Fatalf("len(renewals) = %d, want 1", len(renewals))
	}
	if renewals[0].Name != "Music" || !renewals[0].Date.Equal(date(2024, time.September, 10)) {
		t.Errorf("renewals[0] = %+v, want Music on 2024-09-10", renewals[0])
	}
}

func TestServices_ExcludesCategories(t *testing.T) {
	services := Services(fixtureSubs())
	if len(services) != 3 {
		t.Fatalf("len(services) = %d, want 3", len(services))
	}
	for _, s := range services {
		if s.IsCategory() {
			t.Errorf("category %q leaked through", s.Name)
		}
	}
}
