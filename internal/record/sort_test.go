package record_test

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

func titles(recs []*record.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}

	return out
}

func TestSortOrder_Compare(t *testing.T) {
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	recs := []*record.Record{
		{Title: "Lunch", CreatedAt: base},
		{Title: "Bus", CreatedAt: base.Add(time.Hour)},
		{Title: "Coffee", CreatedAt: base},
		{Title: "Apples", CreatedAt: base.Add(-time.Hour)},
	}

	type testCase struct {
		name  string
		order record.SortOrder
		want  []string
	}

	tests := []testCase{
		{
			name:  "RecencyTieBreaksOnTitle",
			order: record.ByRecency,
			want:  []string{"Bus", "Coffee", "Lunch", "Apples"},
		},
		{
			name:  "Name",
			order: record.ByName,
			want:  []string{"Apples", "Bus", "Coffee", "Lunch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := slices.Clone(recs)
			slices.SortFunc(sorted, tt.order.Compare)

			assert.Equal(t, tt.want, titles(sorted))
		})
	}
}

// Titles compare bytewise, matching the store's C collation.
func TestSortOrder_TitleIsBytewise(t *testing.T) {
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	recs := []*record.Record{
		{Title: "éclair", CreatedAt: base},
		{Title: "apples", CreatedAt: base},
		{Title: "Zucchini", CreatedAt: base},
	}

	slices.SortFunc(recs, record.ByRecency.Compare)
	assert.Equal(t, []string{"Zucchini", "apples", "éclair"}, titles(recs))
}

func TestSortOrder_NameTieBreaksOnRecency(t *testing.T) {
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	older := &record.Record{Title: "Rent", CreatedAt: base}
	newer := &record.Record{Title: "Rent", CreatedAt: base.Add(time.Minute)}

	assert.Negative(t, record.ByName.Compare(newer, older))
	assert.Positive(t, record.ByName.Compare(older, newer))
}

func TestSortOrder_DateAndAmount(t *testing.T) {
	d1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	a := &record.Record{Title: "a", Date: &d2, Amount: decimal.NewFromInt(5)}
	b := &record.Record{Title: "b", Date: &d1, Amount: decimal.NewFromInt(7)}
	c := &record.Record{Title: "c", Amount: decimal.NewFromInt(1)}

	recs := []*record.Record{a, b, c}

	slices.SortFunc(recs, record.SortOrder{{Field: record.FieldDate}}.Compare)
	assert.Equal(t, []string{"b", "a", "c"}, titles(recs))

	slices.SortFunc(recs, record.SortOrder{{Field: record.FieldAmount, Direction: record.Descending}}.Compare)
	assert.Equal(t, []string{"b", "a", "c"}, titles(recs))
}

func TestParseSortOrder(t *testing.T) {
	o, err := record.ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, "recency", o.Name())

	o, err = record.ParseSortOrder("Name")
	require.NoError(t, err)
	assert.Equal(t, "name", o.Name())

	_, err = record.ParseSortOrder("amount")
	assert.ErrorIs(t, err, record.ErrInvalidSort)
}
