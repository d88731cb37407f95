package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/budgettracker/cmd/tui/internal/view"
)

func TestTimeframeToDateRange(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, time.March, 18, 15, 30, 0, 0, time.Local)

	type testCase struct {
		name      string
		tf        view.Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}

	tests := []testCase{
		{
			name:      "this week starts monday",
			tf:        view.TimeframeThisWeek,
			wantStart: time.Date(2026, time.March, 16, 0, 0, 0, 0, time.Local),
			wantEnd:   now,
		},
		{
			name:      "last week",
			tf:        view.TimeframeLastWeek,
			wantStart: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "this month",
			tf:        view.TimeframeThisMonth,
			wantStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   now,
		},
		{
			name:      "last month",
			tf:        view.TimeframeLastMonth,
			wantStart: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := view.TimeframeToDateRange(tt.tf, now)
			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end %s", end)
		})
	}
}

func TestNormalizeDateRange(t *testing.T) {
	start, end := view.NormalizeDateRange(
		time.Date(2026, time.February, 1, 10, 0, 0, 0, time.Local),
		time.Date(2026, time.February, 28, 9, 0, 0, 0, time.Local),
	)

	assert.True(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local).Equal(start))
	assert.True(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local).Equal(end))
}
