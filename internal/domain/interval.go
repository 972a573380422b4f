package domain

import "time"

// Event duration bounds, inclusive.
const (
	MinEventDuration = 10 * time.Minute
	MaxEventDuration = 5 * time.Hour
)

// Interval is the half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval returns the interval [start, end).
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Valid reports whether Start is strictly before End.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether t lies in [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether a and b share at least one instant.
// Intervals that only touch (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ValidEventDuration returns ErrInvalidEventDates unless start < end and the
// length lies within [MinEventDuration, MaxEventDuration].
func ValidEventDuration(i Interval) error {
	if !i.Valid() {
		return ErrInvalidEventDates
	}
	d := i.Duration()
	if d < MinEventDuration || d > MaxEventDuration {
		return ErrInvalidEventDates
	}
	return nil
}
