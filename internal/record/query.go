package record

import (
	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
)

// Query selects records of one kind, optionally restricted to a single day.
type Query struct {
	Kind Kind
	// Day restricts results to records dated inside the bucket. Undated records never match.
	Day  *bucket.Bucket
	Sort SortOrder
	// Limit caps the result size; zero means no cap.
	Limit int
}

// Matches reports whether r satisfies the kind and day predicate of q.
func (q Query) Matches(r *Record) bool {
	if r.Kind != q.Kind {
		return false
	}

	if q.Day == nil {
		return true
	}

	return r.Date != nil && q.Day.Contains(*r.Date)
}
