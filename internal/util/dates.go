package util

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the signed number of whole days from a to b. Valid for
// the full 0001..9999 range; time.Duration saturates past ~292 years.
func DaysBetween(a, b time.Time) int {
	a = truncateDay(a)
	b = truncateDay(b)
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
