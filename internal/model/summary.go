package model

import "time"

// SummaryStats holds the top-level dashboard aggregate across subscriptions.
type SummaryStats struct {
	ActiveCount  int
	EndedCount   int
	MonthlySpend float64 // amortized (yearly/12)
	YearlySpend  float64

	NextRenewal     time.Time // zero when nothing renews
	NextRenewalName string
}

// MonthSpend holds the amortized spend for a single calendar month.
type MonthSpend struct {
	Month time.Time // first of month
	Total float64
}

// Renewal is one projected renewal event.
type Renewal struct {
	SubscriptionID string
	Name           string
	Date           time.Time
	Amount         float64
}
