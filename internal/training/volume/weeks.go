package volume

import "time"

const DateLayout = "2006-01-02"

// WeekStart returns the Monday (00:00 UTC) of the ISO week containing the calendar date of t.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekBounds returns Monday and Sunday of the ISO week containing t.
func WeekBounds(t time.Time) (monday, sunday time.Time) {
	monday = WeekStart(t)
	return monday, monday.AddDate(0, 0, 6)
}

// WeekStarts lists the Mondays of every ISO week touched by [from, to], ascending.
func WeekStarts(from, to time.Time) []time.Time {
	first, last := WeekStart(from), WeekStart(to)
	if last.Before(first) {
		return nil
	}
	var starts []time.Time
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		starts = append(starts, w)
	}
	return starts
}

// LastWeeks returns the range covering the given number of ISO weeks, the current one included.
func LastWeeks(now time.Time, weeks int) (from, to time.Time) {
	monday, sunday := WeekBounds(now)
	return monday.AddDate(0, 0, -7*(weeks-1)), sunday
}
