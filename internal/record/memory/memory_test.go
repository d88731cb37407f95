package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/record/memory"
)

func TestStore_FetchDayWindow(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	at := func(d time.Time) *time.Time { return &d }

	s := memory.New(
		&record.Record{Kind: record.KindExpense, Title: "Start", Date: at(day), CreatedAt: created},
		&record.Record{Kind: record.KindExpense, Title: "Late", Date: at(day.Add(24*time.Hour - time.Nanosecond)), CreatedAt: created.Add(time.Hour)},
		&record.Record{Kind: record.KindExpense, Title: "NextDay", Date: at(day.Add(24 * time.Hour)), CreatedAt: created},
		&record.Record{Kind: record.KindExpense, Title: "Undated", CreatedAt: created},
		&record.Record{Kind: record.KindIncome, Title: "Salary", Date: at(day), CreatedAt: created},
	)

	b := bucket.For(day)

	got, err := s.Fetch(ctx, record.Query{Kind: record.KindExpense, Day: &b, Sort: record.ByRecency})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Late", got[0].Title)
	assert.Equal(t, "Start", got[1].Title)

	got, err = s.Fetch(ctx, record.Query{Kind: record.KindExpense, Day: &b, Sort: record.ByRecency, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Late", got[0].Title)

	n, err := s.Count(ctx, record.KindExpense)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestStore_InsertGetDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	r := &record.Record{Kind: record.KindIncome, Title: "Salary", Amount: decimal.NewFromInt(1000)}
	require.NoError(t, s.Insert(ctx, r))
	require.NotEqual(t, uuid.Nil, r.ID)

	got, err := s.Get(ctx, record.KindIncome, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salary", got.Title)

	got.Title = "changed"
	again, err := s.Get(ctx, record.KindIncome, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salary", again.Title)

	_, err = s.Get(ctx, record.KindExpense, r.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)

	require.NoError(t, s.Delete(ctx, record.KindIncome, r.ID))
	assert.ErrorIs(t, s.Delete(ctx, record.KindIncome, r.ID), record.ErrNotFound)

	all, err := s.FetchAll(ctx, record.KindIncome)
	require.NoError(t, err)
	assert.Empty(t, all)
}
