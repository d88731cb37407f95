package bucket

import (
	"fmt"
	"time"
)

// Bucket is the half-open interval [Start, End) covering one calendar day.
type Bucket struct {
	Start time.Time
	End   time.Time
}

// For returns the bucket of the calendar day t falls on, in t's location.
// End is computed by calendar arithmetic so days touching a DST change are 23 or 25 hours long.
func For(t time.Time) Bucket {
	y, m, d := t.Date()
	loc := t.Location()

	return Bucket{
		Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d+1, 0, 0, 0, 0, loc),
	}
}

// DaysBefore returns the bucket n calendar days before now's day.
func DaysBefore(now time.Time, n int) Bucket {
	y, m, d := now.Date()
	return For(time.Date(y, m, d-n, 12, 0, 0, 0, now.Location()))
}

// ParseDay parses a YYYY-MM-DD string into the bucket for that day in loc.
func ParseDay(s string, loc *time.Location) (Bucket, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return Bucket{}, fmt.Errorf("parsing day %q: %w", s, err)
	}

	return For(t), nil
}

// Contains reports whether t lies in [Start, End).
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Duration is the wall-clock length of the day.
func (b Bucket) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Day formats the bucket as YYYY-MM-DD.
func (b Bucket) Day() string {
	return b.Start.Format(time.DateOnly)
}

// Label renders the bucket relative to now: "Today", "Yesterday" or the full date.
func (b Bucket) Label(now time.Time) string {
	now = now.In(b.Start.Location())

	if b.Start.Equal(For(now).Start) {
		return "Today"
	}

	if b.Start.Equal(DaysBefore(now, 1).Start) {
		return "Yesterday"
	}

	return b.Start.Format("Mon, Jan 2, 2006")
}
