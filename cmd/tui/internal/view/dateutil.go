package view

import (
	"time"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
)

type Timeframe int

const (
	TimeframeThisWeek  Timeframe = 0
	TimeframeLastWeek  Timeframe = 1
	TimeframeThisMonth Timeframe = 2
	TimeframeLastMonth Timeframe = 3
	TimeframeAll       Timeframe = 4
	TimeframeCustom    Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// TimeframeToDateRange returns the first and last day of tf relative to now.
// Weeks start on Monday.
func TimeframeToDateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	var start, end time.Time

	switch tf {
	case TimeframeThisWeek:
		offset := int(now.Weekday())
		if offset == 0 {
			offset = 7
		}

		start = bucket.DaysBefore(now, offset-1).Start
		end = now
	case TimeframeLastWeek:
		offset := int(now.Weekday())
		if offset == 0 {
			offset = 7
		}

		end = bucket.DaysBefore(now, offset).Start
		start = bucket.DaysBefore(end, 6).Start
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now
	case TimeframeLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
	}

	return start, end
}

// NormalizeDateRange widens [start, end] to whole local days: midnight of start up to,
// but excluding, midnight after end.
func NormalizeDateRange(start, end time.Time) (time.Time, time.Time) {
	return bucket.For(start).Start, bucket.For(end).End
}
