package bucket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	return loc
}

func TestFor(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	type testCase struct {
		name      string
		at        time.Time
		wantStart time.Time
		wantLen   time.Duration
	}

	tests := []testCase{
		{
			name:      "Afternoon",
			at:        time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			wantLen:   24 * time.Hour,
		},
		{
			name:      "Midnight",
			at:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			wantLen:   24 * time.Hour,
		},
		{
			name:      "LastNanosecond",
			at:        time.Date(2024, 5, 10, 23, 59, 59, 999999999, time.UTC),
			wantStart: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			wantLen:   24 * time.Hour,
		},
		{
			name:      "SpringForward",
			at:        time.Date(2024, 3, 10, 12, 0, 0, 0, ny),
			wantStart: time.Date(2024, 3, 10, 0, 0, 0, 0, ny),
			wantLen:   23 * time.Hour,
		},
		{
			name:      "FallBack",
			at:        time.Date(2024, 11, 3, 12, 0, 0, 0, ny),
			wantStart: time.Date(2024, 11, 3, 0, 0, 0, 0, ny),
			wantLen:   25 * time.Hour,
		},
		{
			name:      "YearEnd",
			at:        time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			wantLen:   24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bucket.For(tt.at)

			assert.True(t, tt.wantStart.Equal(b.Start), "start %s", b.Start)
			assert.Equal(t, tt.wantLen, b.Duration())
			assert.True(t, b.Contains(tt.at))
			assert.False(t, b.Contains(b.End))

			y, m, d := b.Start.Date()
			ey, em, ed := b.End.Date()
			assert.Equal(t, time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC), time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC))
			assert.Zero(t, b.End.Hour())
		})
	}
}

func TestDaysBefore(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-01", bucket.DaysBefore(now, 0).Day())
	assert.Equal(t, "2024-02-29", bucket.DaysBefore(now, 1).Day())
	assert.Equal(t, "2024-02-26", bucket.DaysBefore(now, 4).Day())
}

func TestParseDay(t *testing.T) {
	b, err := bucket.ParseDay("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), b.Start)

	_, err = bucket.ParseDay("29/02/2024", time.UTC)
	assert.Error(t, err)
}

func TestBucket_Label(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", bucket.For(now).Label(now))
	assert.Equal(t, "Yesterday", bucket.DaysBefore(now, 1).Label(now))
	assert.Equal(t, "Wed, May 8, 2024", bucket.DaysBefore(now, 2).Label(now))
}
