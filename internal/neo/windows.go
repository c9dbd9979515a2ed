package neo

import "time"

// Window is an inclusive sub-range that the upstream feed accepts in one call.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the window start as YYYY-MM-DD.
func (w Window) StartDate() string { return w.Start.Format(DateLayout) }

// EndDate returns the window end as YYYY-MM-DD.
func (w Window) EndDate() string { return w.End.Format(DateLayout) }

// Windows splits r into consecutive windows spanning at most maxSpanDays
// (end - start). Windows do not overlap and cover every date of r.
func Windows(r DateRange, maxSpanDays int) []Window {
	if maxSpanDays < 0 {
		maxSpanDays = 0
	}
	var out []Window
	for start := r.Start; !start.After(r.End); {
		end := start.AddDate(0, 0, maxSpanDays)
		if end.After(r.End) {
			end = r.End
		}
		out = append(out, Window{Start: start, End: end})
		start = end.AddDate(0, 0, 1)
	}
	return out
}
