// Package pipeline computes dashboard aggregates over subscription records.
// All functions are pure: they read the records and an explicit "today" and
// return derived values, never touching a clock or the store.
package pipeline

import (
	"sort"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
)

// Summarize computes the top-level dashboard aggregate. Category separators
// carry no amount and are excluded everywhere.
func Summarize(subs []model.Subscription, today time.Time) model.SummaryStats {
	var stats model.SummaryStats

	for _, s := range subs {
		if s.IsCategory() || s.StartDate.IsZero() {
			continue
		}

		if !s.ActiveOn(today) {
			if s.EndDate != nil && s.EndDate.Before(today) {
				stats.EndedCount++
			}
			continue
		}

		stats.ActiveCount++
		stats.MonthlySpend += s.MonthlyAmount()
		stats.YearlySpend += s.YearlyAmount()

		if !s.AutoRenew && s.EndDate != nil {
			continue // terminating, nothing left to renew
		}
		next := timeline.ProjectNextRenewal(s.StartDate, s.Cycle, today)
		if stats.NextRenewal.IsZero() || next.Before(stats.NextRenewal) {
			stats.NextRenewal = next
			stats.NextRenewalName = s.Name
		}
	}

	return stats
}

// MonthlySpend computes the amortized spend for every month of the window,
// zero-filled so charts show gaps. A subscription contributes to a month when
// its occupied interval overlaps any day of it.
func MonthlySpend(subs []model.Subscription, w timeline.Window) []model.MonthSpend {
	out := make([]model.MonthSpend, len(w.Months))
	for i, m := range w.Months {
		out[i].Month = m
		monthEnd := m.AddDate(0, 1, -1)
		for _, s := range subs {
			if s.IsCategory() || s.StartDate.IsZero() {
				continue
			}
			if s.StartDate.After(monthEnd) {
				continue
			}
			if !s.AutoRenew && s.EndDate != nil && s.EndDate.Before(m) {
				continue
			}
			out[i].Total += s.MonthlyAmount()
		}
	}
	return out
}

// UpcomingRenewals projects the next renewal for every renewing subscription
// within horizon of today, sorted soonest first.
func UpcomingRenewals(subs []model.Subscription, today time.Time, horizon time.Duration) []model.Renewal {
	cutoff := today.Add(horizon)

	var renewals []model.Renewal
	for _, s := range subs {
		if s.IsCategory() || s.StartDate.IsZero() || !s.ActiveOn(today) {
			continue
		}
		if !s.AutoRenew && s.EndDate != nil {
			continue
		}
		next := timeline.ProjectNextRenewal(s.StartDate, s.Cycle, today)
		if next.After(cutoff) {
			continue
		}
		renewals = append(renewals, model.Renewal{
			SubscriptionID: s.ID,
			Name:           s.Name,
			Date:           next,
			Amount:         s.Amount,
		})
	}

	sort.Slice(renewals, func(i, j int) bool {
		if renewals[i].Date.Equal(renewals[j].Date) {
			return renewals[i].Name < renewals[j].Name
		}
		return renewals[i].Date.Before(renewals[j].Date)
	})
	return renewals
}

// Services filters out category separators, preserving order.
func Services(subs []model.Subscription) []model.Subscription {
	var out []model.Subscription
	for _, s := range subs {
		if !s.IsCategory() {
			out = append(out, s)
		}
	}
	return out
}
