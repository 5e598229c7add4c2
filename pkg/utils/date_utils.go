package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (no time component).
const DateLayout = "2006-01-02"

// DateOnly truncates t to its calendar date in UTC. All day rows store
// dates this way so that day arithmetic never crosses a DST boundary.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n whole days.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// DatesInRange returns every calendar date from start to end inclusive.
// An end before start yields just the start date.
func DatesInRange(start, end time.Time) []time.Time {
	first := DateOnly(start)
	last := DateOnly(end)

	dates := []time.Time{first}
	for d := AddDays(first, 1); !d.After(last); d = AddDays(d, 1) {
		dates = append(dates, d)
	}
	return dates
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// AddMinutesClock adds minutes to an "HH:MM" clock string, capping the
// result at 23:59 instead of rolling over into the next day.
func AddMinutesClock(clock string, minutes int) string {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return clock
	}
	total := h*60 + m + minutes
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
