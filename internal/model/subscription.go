// Package model defines domain types for subscriptions and timeline geometry.
package model

import "time"

// Cycle is the billing cycle of a subscription. It determines the
// amortization divisor/multiplier (12) and the renewal step size.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

// Months returns the length of one cycle period in calendar months.
func (c Cycle) Months() int {
	if c == CycleYearly {
		return 12
	}
	return 1
}

// Valid reports whether c is a known cycle value.
func (c Cycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// EntryType distinguishes real subscriptions from category separators.
type EntryType string

const (
	TypeService  EntryType = "service"
	TypeCategory EntryType = "category"
)

// Subscription is one tracked recurring entry. Category entries carry no
// temporal or amount semantics and render as pure separators.
type Subscription struct {
	ID    string
	Name  string
	Color string

	Amount float64
	Cycle  Cycle

	StartDate time.Time  // inclusive; first day of the subscription
	EndDate   *time.Time // inclusive; nil means open-ended
	AutoRenew bool

	Type      EntryType
	SortOrder int // contiguous 0..N-1 display order
}

// IsCategory reports whether s is a separator row.
func (s Subscription) IsCategory() bool {
	return s.Type == TypeCategory
}

// MonthlyAmount returns the amortized per-month cost.
func (s Subscription) MonthlyAmount() float64 {
	if s.Cycle == CycleYearly {
		return s.Amount / 12
	}
	return s.Amount
}

// YearlyAmount returns the amortized per-year cost.
func (s Subscription) YearlyAmount() float64 {
	if s.Cycle == CycleYearly {
		return s.Amount
	}
	return s.Amount * 12
}

// ActiveOn reports whether the subscription occupies the given date.
// Auto-renewing subscriptions never end; an explicit end date is inclusive.
func (s Subscription) ActiveOn(date time.Time) bool {
	if s.IsCategory() || s.StartDate.IsZero() {
		return false
	}
	if date.Before(s.StartDate) {
		return false
	}
	if s.AutoRenew || s.EndDate == nil {
		return true
	}
	return !date.After(*s.EndDate)
}

// SegmentKind classifies a bar segment as committed or speculative.
type SegmentKind string

const (
	SegmentSettled   SegmentKind = "settled"
	SegmentProjected SegmentKind = "projected"
)

// BarSegment is one horizontal run of a subscription's timeline bar,
// expressed as percentages of the visible window. Derived on every query,
// never persisted. A full bar is zero, one, or two segments, ordered
// settled-then-projected with a flush shared edge at the split point.
type BarSegment struct {
	OffsetPercent float64     `json:"offset_percent"`
	WidthPercent  float64     `json:"width_percent"`
	Kind          SegmentKind `json:"kind"`
}
