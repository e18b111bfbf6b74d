package timeline

import (
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
)

// segmentEpsilon is the minimum segment width worth emitting. Anything
// narrower is sub-pixel at any realistic terminal width and is dropped
// instead of rendered.
const segmentEpsilon = 0.01

// maxProjectionSteps bounds the renewal correction loop. The closed-form
// estimate lands within a step or two of the answer, so reaching this cap
// indicates a data anomaly rather than a domain condition; the last computed
// value is returned and OnProjectionCapHit fires so the caller can log it.
const maxProjectionSteps = 1200

// OnProjectionCapHit, when non-nil, is invoked if ProjectNextRenewal exhausts
// its iteration budget. Diagnostic hook only; never affects the result.
var OnProjectionCapHit func(start time.Time, cycle model.Cycle)

// PositionOf converts a date to its horizontal position as a percentage of
// the window. Dates before windowStart clamp to 0; the upper end is left
// unclamped, callers clip via width calculations. A non-positive totalDays
// (degenerate single-day window) yields 0.
func PositionOf(date, windowStart time.Time, totalDays int) float64 {
	if totalDays <= 0 || !date.After(windowStart) {
		return 0
	}
	return float64(daysBetween(date, windowStart)) / float64(totalDays) * 100
}

// WidthOf returns the bar width for the interval [start, end] clipped to the
// window, as a percentage. A nil end means open-ended and clips to the window
// end. Day counting is inclusive-inclusive: the +1 guarantees a single-day
// interval renders with non-zero width. Intervals entirely outside the window
// yield 0.
func WidthOf(start time.Time, end *time.Time, w Window, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}

	effectiveStart := maxDate(dateOnly(start), w.Start)
	effectiveEnd := w.End
	if end != nil {
		effectiveEnd = minDate(dateOnly(*end), w.End)
	}

	if effectiveEnd.Before(effectiveStart) {
		return 0
	}
	return float64(daysBetween(effectiveEnd, effectiveStart)+1) / float64(totalDays) * 100
}

// ProjectNextRenewal returns the first renewal instant strictly after ref.
//
// When start is after ref the subscription has not had its first renewal yet,
// so the next event is exactly one cycle period after start. Otherwise the
// elapsed whole cycles are estimated in closed form from the calendar month
// difference and corrected by at most a few single steps.
//
// Every candidate is start.AddDate(0, k*period, 0), anchored at the original
// start date so month-end normalization never accumulates. The normalization
// contract is Go's time.AddDate: a nominal Jan 31 + 1 month lands on Mar 2 in
// leap years and Mar 3 otherwise.
func ProjectNextRenewal(start time.Time, cycle model.Cycle, ref time.Time) time.Time {
	period := cycle.Months()
	start = dateOnly(start)
	ref = dateOnly(ref)

	if start.After(ref) {
		return start.AddDate(0, period, 0)
	}

	// Closed-form estimate of elapsed cycles.
	months := (ref.Year()-start.Year())*12 + int(ref.Month()) - int(start.Month())
	k := months / period
	if k < 1 {
		k = 1
	}

	// Month-end normalization can push an earlier candidate past ref; walk
	// back to the smallest k whose candidate still exceeds ref.
	for k > 1 && start.AddDate(0, (k-1)*period, 0).After(ref) {
		k--
	}

	candidate := start.AddDate(0, k*period, 0)
	for steps := 0; !candidate.After(ref); steps++ {
		if steps >= maxProjectionSteps {
			if OnProjectionCapHit != nil {
				OnProjectionCapHit(start, cycle)
			}
			return candidate
		}
		k++
		candidate = start.AddDate(0, k*period, 0)
	}
	return candidate
}

// SplitBar computes the bar segments for one subscription against the
// window. The settled segment covers the committed/paid-through interval;
// the projected segment is the auto-renewal assumption continuing to the
// window edge. Category separators and records without a valid start date
// produce no segments, so one malformed record cannot blank the timeline.
// Segment kind is data: styling (dimming the projected run) belongs to the
// caller, never here.
func SplitBar(sub model.Subscription, w Window, today time.Time) []model.BarSegment {
	if sub.IsCategory() || sub.StartDate.IsZero() {
		return nil
	}

	totalDays := w.TotalDays()
	if totalDays <= 0 {
		return nil
	}

	start := dateOnly(sub.StartDate)

	// visualEnd: where the drawn bar stops. Auto-renewing bars extend to the
	// window edge, representing indefinite continuation; an explicit end date
	// is then only a paid-through boundary, not a termination.
	var visualEnd time.Time
	switch {
	case sub.AutoRenew:
		visualEnd = w.End
	case sub.EndDate == nil:
		visualEnd = maxDate(ProjectNextRenewal(start, sub.Cycle, today), w.End)
	default:
		visualEnd = dateOnly(*sub.EndDate)
	}

	// solidEnd: the settled/projected split point.
	solidEnd := ProjectNextRenewal(start, sub.Cycle, today)
	if sub.EndDate != nil {
		solidEnd = dateOnly(*sub.EndDate)
	}

	barStart := PositionOf(start, w.Start, totalDays)
	width := WidthOf(start, &visualEnd, w, totalDays)
	if width <= 0 {
		return nil
	}
	barEnd := barStart + width

	splitPoint := PositionOf(solidEnd, w.Start, totalDays)
	if splitPoint > barEnd {
		splitPoint = barEnd
	}

	var segments []model.BarSegment
	if splitPoint-barStart > segmentEpsilon {
		segments = append(segments, model.BarSegment{
			OffsetPercent: barStart,
			WidthPercent:  splitPoint - barStart,
			Kind:          model.SegmentSettled,
		})
	}
	if sub.AutoRenew && barEnd-splitPoint > segmentEpsilon {
		segments = append(segments, model.BarSegment{
			OffsetPercent: splitPoint,
			WidthPercent:  barEnd - splitPoint,
			Kind:          model.SegmentProjected,
		})
	}
	return segments
}
