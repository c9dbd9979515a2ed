package ingestion

import "time"

// MaxDays caps how far back one ingestion run reaches.
const MaxDays = 30

// LastNDays returns the n calendar days ending at from's date (inclusive),
// most recent first, at midnight UTC.
func LastNDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from.UTC())
	for len(out) < n {
		out = append(out, d)
		d = d.AddDate(0, 0, -1)
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func clampDays(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxDays {
		return MaxDays
	}
	return n
}
