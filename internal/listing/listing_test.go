package listing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/listing"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/record/memory"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
)

var now = time.Date(2024, 5, 10, 15, 30, 0, 0, time.Local)

func expenseOn(daysAgo, amount int) *record.Record {
	date := bucket.DaysBefore(now, daysAgo).Start.Add(9 * time.Hour)

	return &record.Record{
		ID:        uuid.New(),
		Kind:      record.KindExpense,
		Title:     "item",
		Amount:    decimal.NewFromInt(int64(amount)),
		Date:      &date,
		CreatedAt: date,
	}
}

func newAggregator(t *testing.T, repo record.Repository, flags settings.Repository, opts listing.Options) *listing.Aggregator {
	t.Helper()

	records := record.NewService(repo)
	fs := settings.NewService(flags)

	return listing.NewAggregator(records, ledger.NewService(records, fs), fs, opts)
}

func TestAggregator_Compose(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	flags := settings.NewMockRepository(ctrl)
	flags.EXPECT().Get(gomock.Any(), settings.KeyExpensesEmpty).Return(false, true, nil)

	repo := memory.New(
		expenseOn(0, 1), expenseOn(0, 2), expenseOn(0, 3), expenseOn(0, 4), expenseOn(0, 5), expenseOn(0, 6),
		expenseOn(1, 7),
		expenseOn(3, 8), expenseOn(3, 9), expenseOn(3, 10), expenseOn(3, 11),
		expenseOn(7, 100),
	)

	agg := newAggregator(t, repo, flags, listing.Options{})

	l, err := agg.Compose(ctx, record.KindExpense, record.ByRecency, now)
	require.NoError(t, err)

	assert.False(t, l.Empty)
	require.Len(t, l.Sections, 5)

	visible := l.Visible()
	require.Len(t, visible, 3)

	assert.Equal(t, "Today", visible[0].Label(now))
	assert.Equal(t, 5, visible[0].InitialLimit())
	assert.Len(t, visible[0].Displayed(), 5)
	assert.True(t, visible[0].ShowsToggle())

	assert.Equal(t, "Yesterday", visible[1].Label(now))
	assert.Len(t, visible[1].Displayed(), 1)
	assert.False(t, visible[1].ShowsToggle())

	assert.Equal(t, bucket.DaysBefore(now, 3), visible[2].Bucket())
	assert.Equal(t, 3, visible[2].InitialLimit())
	assert.Len(t, visible[2].Displayed(), 3)
	assert.True(t, visible[2].ShowsToggle())

	assert.Nil(t, l.Find(bucket.DaysBefore(now, 7)))
	assert.Same(t, visible[1], l.Find(bucket.DaysBefore(now, 1)))
}

func TestAggregator_ComposeEmptyFlagSkipsFetch(t *testing.T) {
	ctrl := gomock.NewController(t)

	flags := settings.NewMockRepository(ctrl)
	flags.EXPECT().Get(gomock.Any(), settings.KeyIncomesEmpty).Return(false, false, nil)

	// No Fetch expectation: any call fails the test.
	repo := record.NewMockRepository(ctrl)

	agg := newAggregator(t, repo, flags, listing.Options{})

	l, err := agg.Compose(context.Background(), record.KindIncome, record.ByName, now)
	require.NoError(t, err)
	assert.True(t, l.Empty)
	assert.Empty(t, l.Visible())
}

func TestAggregator_ComposeErrors(t *testing.T) {
	type testCase struct {
		name    string
		kind    record.Kind
		setup   func(flags *settings.MockRepository, repo *record.MockRepository)
		wantErr error
	}

	tests := []testCase{
		{
			name:    "InvalidKind",
			kind:    record.Kind("transfer"),
			setup:   func(*settings.MockRepository, *record.MockRepository) {},
			wantErr: record.ErrInvalidKind,
		},
		{
			name: "FetchFailure",
			kind: record.KindExpense,
			setup: func(flags *settings.MockRepository, repo *record.MockRepository) {
				flags.EXPECT().Get(gomock.Any(), settings.KeyExpensesEmpty).Return(false, true, nil)
				repo.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			wantErr: record.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			flags := settings.NewMockRepository(ctrl)
			repo := record.NewMockRepository(ctrl)
			tt.setup(flags, repo)

			agg := newAggregator(t, repo, flags, listing.Options{})

			_, err := agg.Compose(context.Background(), tt.kind, record.ByRecency, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAggregator_CustomPlan(t *testing.T) {
	ctrl := gomock.NewController(t)

	flags := settings.NewMockRepository(ctrl)
	flags.EXPECT().Get(gomock.Any(), settings.KeyExpensesEmpty).Return(false, true, nil)

	repo := memory.New(expenseOn(6, 1))

	agg := newAggregator(t, repo, flags, listing.Options{Plan: []listing.Slot{{DaysAgo: 6, InitialLimit: 2}}})

	l, err := agg.Compose(context.Background(), record.KindExpense, record.ByRecency, now)
	require.NoError(t, err)
	require.Len(t, l.Visible(), 1)
	assert.Equal(t, 2, l.Visible()[0].InitialLimit())
}
