package section

import (
	"context"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

// Query fetches one kind's records for a day, over-fetching by the expansion step so a
// section can expand without going back to the store.
type Query struct {
	records *record.Service
	kind    record.Kind
	step    int
}

func NewQuery(records *record.Service, kind record.Kind, expansionStep int) Query {
	return Query{records: records, kind: kind, step: expansionStep}
}

// Fetch returns at most limit+step records dated inside b, ordered by order.
func (q Query) Fetch(ctx context.Context, b bucket.Bucket, order record.SortOrder, limit int) ([]*record.Record, error) {
	return q.records.Fetch(ctx, record.Query{
		Kind:  q.kind,
		Day:   &b,
		Sort:  order,
		Limit: limit + q.step,
	})
}
