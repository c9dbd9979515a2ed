package neo

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO calendar date format used by the feed.
	DateLayout = "2006-01-02"

	// RecommendedSpanDays is the widest range the upstream feed serves in one call.
	RecommendedSpanDays = 7

	historicalHorizonDays = 365 * 2
	futureHorizonDays     = 365
)

// DateRange is a validated, inclusive pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns end - start in whole days.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// ValidateDateRange parses start and end (YYYY-MM-DD) and returns advisory
// warnings. Warnings never block the request; a malformed date or a reversed
// range fails with *ValidationError and no warnings.
func ValidateDateRange(start, end string) ([]string, error) {
	_, warnings, err := ParseDateRange(start, end, time.Now())
	return warnings, err
}

// ParseDateRange is ValidateDateRange with an explicit reference time. It also
// returns the parsed range.
func ParseDateRange(start, end string, now time.Time) (DateRange, []string, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, nil, &ValidationError{Field: "start_date", Reason: "invalid date format, expected YYYY-MM-DD", Err: err}
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, nil, &ValidationError{Field: "end_date", Reason: "invalid date format, expected YYYY-MM-DD", Err: err}
	}
	if s.After(e) {
		return DateRange{}, nil, &ValidationError{Field: "end_date", Reason: "end_date must not be before start_date"}
	}

	r := DateRange{Start: s, End: e}
	today := truncateToDate(now)

	var warnings []string
	if span := r.Days(); span > RecommendedSpanDays {
		warnings = append(warnings, fmt.Sprintf("Selected range is %d days. The NASA API works best with %d-day ranges.", span, RecommendedSpanDays))
	}
	if s.Before(today.AddDate(0, 0, -historicalHorizonDays)) {
		warnings = append(warnings, "Historical data beyond 2 years may have limited availability.")
	}
	if e.After(today.AddDate(0, 0, futureHorizonDays)) {
		warnings = append(warnings, "Future predictions beyond 1 year may be less accurate.")
	}

	return r, warnings, nil
}

// DefaultRange returns the range used when a caller supplies no dates:
// today through today + 7 days.
func DefaultRange(now time.Time) (string, string) {
	today := truncateToDate(now)
	return today.Format(DateLayout), today.AddDate(0, 0, RecommendedSpanDays).Format(DateLayout)
}

// truncateToDate keeps the calendar date of t and moves it to UTC midnight so
// it compares cleanly against parsed dates.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
