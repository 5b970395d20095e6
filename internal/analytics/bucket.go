package analytics

import "time"

// Timeframe selects both the look-back window and the bucket
// granularity of time-series views.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

func (tf Timeframe) Valid() bool {
	switch tf {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear:
		return true
	}

	return false
}

// WindowDays is the look-back window of a line-chart view.
func (tf Timeframe) WindowDays() int {
	switch tf {
	case TimeframeDay:
		return 1
	case TimeframeWeek:
		return 7
	case TimeframeMonth:
		return 30
	case TimeframeYear:
		return 365
	default:
		return 0
	}
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7

	return d.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// YearStart returns January 1st of t's year.
func YearStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}

// BucketStart maps a transaction date onto its bucket key for the
// given timeframe.
func BucketStart(t time.Time, tf Timeframe) time.Time {
	switch tf {
	case TimeframeWeek:
		return WeekStart(t)
	case TimeframeMonth:
		return MonthStart(t)
	case TimeframeYear:
		return YearStart(t)
	default:
		return DateOf(t)
	}
}
