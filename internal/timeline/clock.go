package timeline

import "time"

// Clock abstracts time.Now() so renewal projection and activity
// classification stay deterministic under test. The geometry functions never
// read a global clock; "today" is threaded in from the outermost boundary.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
