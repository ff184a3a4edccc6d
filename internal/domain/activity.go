package domain

import "time"

// MonthKeyFormat renders a time as a monthly bucket key, e.g. "2026-08".
const MonthKeyFormat = "2006-01"

// ActivityPoint is one month of completion activity.
type ActivityPoint struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// MonthWindow returns the keys of n consecutive calendar months ending
// at the month containing end, in chronological order.
func MonthWindow(end time.Time, n int) []string {
	end = end.UTC()
	first := time.Date(end.Year(), end.Month()-time.Month(n-1), 1, 0, 0, 0, 0, time.UTC)

	keys := make([]string, n)
	for i := range keys {
		keys[i] = first.AddDate(0, i, 0).Format(MonthKeyFormat)
	}
	return keys
}
