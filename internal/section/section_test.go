package section_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/record/memory"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings/file"
)

var day = time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

type fixture struct {
	records *record.Service
	ledger  *ledger.Service
	flags   *settings.Service
}

func newFixture(t *testing.T, repo record.Repository) fixture {
	t.Helper()

	records := record.NewService(repo)
	flags := settings.NewService(file.New(filepath.Join(t.TempDir(), "settings.yaml")))

	return fixture{records: records, ledger: ledger.NewService(records, flags), flags: flags}
}

// seed returns n expenses on day; record i has amount i+1 and is created i minutes after
// the first, so recency order shows the highest amounts first.
func seed(n int) []*record.Record {
	recs := make([]*record.Record, n)
	for i := range n {
		date := day.Add(time.Duration(i) * time.Minute)
		recs[i] = &record.Record{
			ID:        uuid.New(),
			Kind:      record.KindExpense,
			Title:     "item",
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Date:      &date,
			CreatedAt: date,
		}
	}

	return recs
}

func load(t *testing.T, f fixture, opts section.Options) *section.Section {
	t.Helper()

	s := section.New(f.records, f.ledger, record.KindExpense, day.Add(13*time.Hour), record.ByRecency, opts)
	require.NoError(t, s.Load(context.Background()))

	return s
}

func amounts(recs []*record.Record) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.Amount.IntPart()
	}

	return out
}

func TestSection_Displayed(t *testing.T) {
	type testCase struct {
		name        string
		count       int
		initial     int
		wantShown   int
		wantToggle  bool
		wantFetched int
	}

	tests := []testCase{
		{name: "Empty", count: 0, initial: 3, wantShown: 0, wantFetched: 0},
		{name: "FewerThanLimit", count: 2, initial: 3, wantShown: 2, wantFetched: 2},
		{name: "ExactlyLimit", count: 3, initial: 3, wantShown: 3, wantFetched: 3},
		{name: "OneOverLimit", count: 4, initial: 3, wantShown: 3, wantToggle: true, wantFetched: 4},
		{name: "WindowIsCapped", count: 20, initial: 5, wantShown: 5, wantToggle: true, wantFetched: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, memory.New(seed(tt.count)...))

			s := load(t, f, section.Options{InitialLimit: tt.initial})

			assert.Len(t, s.Displayed(), tt.wantShown)
			assert.Equal(t, tt.wantFetched, s.Count())
			assert.Equal(t, tt.wantToggle, s.ShowsToggle())
			assert.Equal(t, tt.count == 0, s.Empty())
			assert.Equal(t, tt.initial, s.DisplayLimit())
		})
	}
}

func TestSection_TotalIsVisiblePrefix(t *testing.T) {
	f := newFixture(t, memory.New(seed(5)...))

	s := load(t, f, section.Options{InitialLimit: 3})

	assert.Equal(t, []int64{5, 4, 3}, amounts(s.Displayed()))
	assert.True(t, s.Total().Equal(decimal.NewFromInt(12)))
	assert.True(t, s.WindowTotal().Equal(decimal.NewFromInt(15)))
}

func TestSection_ToggleRoundTrip(t *testing.T) {
	f := newFixture(t, memory.New(seed(7)...))

	s := load(t, f, section.Options{InitialLimit: 3})

	assert.Nil(t, s.Toggle())
	assert.True(t, s.Expanded())
	assert.Len(t, s.Displayed(), 7)
	assert.Equal(t, "See Less", s.ToggleLabel())

	assert.Nil(t, s.Toggle())
	assert.False(t, s.Expanded())
	assert.Equal(t, 3, s.DisplayLimit())
	assert.Len(t, s.Displayed(), 3)
	assert.Equal(t, "See More", s.ToggleLabel())
}

func TestSection_ToggleHiddenIsNoop(t *testing.T) {
	f := newFixture(t, memory.New(seed(2)...))

	s := load(t, f, section.Options{InitialLimit: 3})

	assert.Nil(t, s.Toggle())
	assert.False(t, s.Expanded())
}

func TestSection_ToggleOverflow(t *testing.T) {
	t.Run("NavigatesToSeeMore", func(t *testing.T) {
		f := newFixture(t, memory.New(seed(12)...))

		s := load(t, f, section.Options{InitialLimit: 3, ExpansionStep: 10})

		req := s.Toggle()
		require.NotNil(t, req)
		assert.Equal(t, section.RouteSeeMore, req.Route)
		assert.Equal(t, s.Bucket(), req.Bucket)
		assert.Len(t, req.Records, 12)

		assert.False(t, s.Expanded())
		assert.Len(t, s.Displayed(), 3)
	})

	t.Run("ExpandInPlace", func(t *testing.T) {
		f := newFixture(t, memory.New(seed(12)...))

		s := load(t, f, section.Options{InitialLimit: 3, ExpansionStep: 10, Overflow: section.OverflowExpandInPlace})

		assert.Len(t, s.Displayed(), 3)
		assert.True(t, s.Total().Equal(decimal.NewFromInt(12+11+10)))

		assert.Nil(t, s.Toggle())
		assert.Len(t, s.Displayed(), 10)
		assert.True(t, s.Total().Equal(decimal.NewFromInt(75)))
		assert.True(t, s.ShowsToggle())

		assert.Nil(t, s.Toggle())
		assert.Len(t, s.Displayed(), 3)
	})
}

func TestSection_Detail(t *testing.T) {
	f := newFixture(t, memory.New(seed(4)...))

	s := load(t, f, section.Options{InitialLimit: 3})

	req, err := s.Detail(1)
	require.NoError(t, err)
	assert.Equal(t, section.RouteDetail, req.Route)
	assert.Equal(t, s.Displayed()[1].ID, req.Record.ID)

	_, err = s.Detail(3)
	assert.ErrorIs(t, err, section.ErrNoSuchRow)
}

func TestSection_MarkForDeletion(t *testing.T) {
	f := newFixture(t, memory.New(seed(4)...))

	s := load(t, f, section.Options{InitialLimit: 3})

	req, err := s.MarkDisplayed(0)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to delete this expense?", req.Title)
	assert.Equal(t, "You cannot undo this action once done.", req.Message)
	assert.Equal(t, "Delete", req.ConfirmLabel)
	assert.Equal(t, "Cancel", req.CancelLabel)

	req, err = s.MarkDisplayed(0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to delete these expenses?", req.Title)
	assert.Equal(t, 2, req.Count)
	assert.Len(t, s.Pending(), 2)

	_, err = s.MarkDisplayed(5)
	assert.ErrorIs(t, err, section.ErrNoSuchRow)

	s.CancelDelete()
	assert.Empty(t, s.Pending())

	res, err := s.ConfirmDelete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, section.DeleteResult{Dismiss: true}, res)
	assert.Equal(t, 4, s.Count())
}

func TestSection_ConfirmDelete(t *testing.T) {
	t.Run("TotalExcludesDeleted", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(t, memory.New(seed(5)...))
		require.NoError(t, f.flags.SetEmpty(ctx, record.KindExpense, false))

		s := load(t, f, section.Options{InitialLimit: 3})

		_, err := s.MarkDisplayed(0, 2)
		require.NoError(t, err)

		deleted := append([]*record.Record(nil), s.Pending()...)

		res, err := s.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Deleted)
		assert.True(t, res.Dismiss)
		assert.False(t, res.CollectionEmpty)

		assert.Equal(t, 3, s.Count())
		assert.Equal(t, []int64{4, 2, 1}, amounts(s.Displayed()))
		assert.True(t, s.Total().Equal(decimal.NewFromInt(7)))

		for _, r := range deleted {
			for _, shown := range s.Records() {
				assert.NotEqual(t, r.ID, shown.ID)
			}
		}

		empty, err := f.flags.IsEmpty(ctx, record.KindExpense)
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("LastRecordFlipsFlag", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(t, memory.New(seed(1)...))
		require.NoError(t, f.flags.SetEmpty(ctx, record.KindExpense, false))

		s := load(t, f, section.Options{InitialLimit: 5})

		_, err := s.MarkDisplayed(0)
		require.NoError(t, err)

		res, err := s.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.True(t, res.CollectionEmpty)
		assert.True(t, s.Empty())

		empty, err := f.flags.IsEmpty(ctx, record.KindExpense)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("FailureKeepsPending", func(t *testing.T) {
		ctx := context.Background()
		ctrl := gomock.NewController(t)
		repo := record.NewMockRepository(ctrl)

		recs := seed(2)
		repo.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(recs, nil)
		repo.EXPECT().Delete(gomock.Any(), record.KindExpense, recs[0].ID).Return(nil)
		repo.EXPECT().Delete(gomock.Any(), record.KindExpense, recs[1].ID).Return(errors.New("connection reset"))

		f := newFixture(t, repo)
		s := load(t, f, section.Options{InitialLimit: 3})

		s.MarkForDeletion(recs...)

		res, err := s.ConfirmDelete(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, record.ErrUnavailable)
		assert.Equal(t, 1, res.Deleted)
		assert.False(t, res.Dismiss)

		require.Len(t, s.Pending(), 1)
		assert.Equal(t, recs[1].ID, s.Pending()[0].ID)
		assert.Equal(t, 1, s.Count())
	})

	t.Run("HeldSlicesUntouched", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(t, memory.New(seed(3)...))
		s := load(t, f, section.Options{InitialLimit: 3})

		shown := s.Displayed()
		all := s.Records()
		require.Equal(t, []int64{3, 2, 1}, amounts(shown))

		_, err := s.MarkDisplayed(0)
		require.NoError(t, err)
		pending := s.Pending()

		_, err = s.ConfirmDelete(ctx)
		require.NoError(t, err)

		for _, held := range [][]*record.Record{shown, all} {
			assert.NotContains(t, held, (*record.Record)(nil))
			assert.Equal(t, []int64{3, 2, 1}, amounts(held))
		}

		require.Len(t, pending, 1)
		assert.EqualValues(t, 3, pending[0].Amount.IntPart())
		assert.Equal(t, []int64{2, 1}, amounts(s.Displayed()))
	})
}

func TestSection_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	repo.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	f := newFixture(t, repo)
	s := section.New(f.records, f.ledger, record.KindExpense, day, record.ByRecency, section.Options{InitialLimit: 3})

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrUnavailable)
	assert.False(t, s.Loaded())
}

func TestQuery_FetchWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	records := record.NewService(repo)
	q := section.NewQuery(records, record.KindIncome, 10)

	repo.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got record.Query) ([]*record.Record, error) {
			assert.Equal(t, record.KindIncome, got.Kind)
			assert.Equal(t, 13, got.Limit)
			require.NotNil(t, got.Day)
			assert.True(t, got.Day.Start.Equal(day))

			return nil, nil
		})

	_, err := q.Fetch(context.Background(), bucket.For(day), record.ByName, 3)
	require.NoError(t, err)
}
