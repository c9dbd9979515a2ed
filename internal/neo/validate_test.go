package neo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var refNow = time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC)

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestParseDateRange_Warnings(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       []string
		notWant    []string
	}{
		{
			name:  "nine day span",
			start: "2024-01-01", end: "2024-01-10",
			want: []string{"Selected range is 9 days", "7-day ranges"},
		},
		{
			name:  "four day span",
			start: "2024-01-01", end: "2024-01-05",
			notWant: []string{"Selected range"},
		},
		{
			name:  "exactly seven days",
			start: "2024-01-01", end: "2024-01-08",
			notWant: []string{"Selected range"},
		},
		{
			name:  "historical",
			start: "2021-06-01", end: "2021-06-03",
			want: []string{"Historical data beyond 2 years may have limited availability."},
		},
		{
			name:  "far future",
			start: "2025-06-01", end: "2025-06-03",
			want: []string{"Future predictions beyond 1 year may be less accurate."},
		},
		{
			name:  "all at once",
			start: "2021-01-01", end: "2025-12-31",
			want: []string{"Selected range", "Historical", "Future"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, warnings, err := ParseDateRange(tc.start, tc.end, refNow)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			for _, w := range tc.want {
				if !hasWarning(warnings, w) {
					t.Fatalf("missing warning %q in %v", w, warnings)
				}
			}
			for _, w := range tc.notWant {
				if hasWarning(warnings, w) {
					t.Fatalf("unexpected warning %q in %v", w, warnings)
				}
			}
		})
	}
}

func TestParseDateRange_HorizonBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	const (
		historical = "Historical data"
		future     = "Future predictions"
	)
	cases := []struct {
		name       string
		start, end string
		warning    string
		want       bool
	}{
		{"start exactly 730 days back", "2022-06-16", "2022-06-16", historical, false},
		{"start 731 days back", "2022-06-15", "2022-06-15", historical, true},
		{"end exactly 365 days ahead", "2025-06-15", "2025-06-15", future, false},
		{"end 366 days ahead", "2025-06-16", "2025-06-16", future, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, warnings, err := ParseDateRange(tc.start, tc.end, now)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got := hasWarning(warnings, tc.warning); got != tc.want {
				t.Fatalf("warning %q present=%v, want %v (warnings %v)", tc.warning, got, tc.want, warnings)
			}
		})
	}
}

func TestParseDateRange_NoWarnings(t *testing.T) {
	r, warnings, err := ParseDateRange("2024-01-05", "2024-01-07", refNow)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if r.Days() != 2 {
		t.Fatalf("days=%d", r.Days())
	}
}

func TestParseDateRange_Invalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		field      string
	}{
		{"bad month and day", "2024-13-40", "2024-01-05", "start_date"},
		{"slashes", "2024-01-01", "2024/01/05", "end_date"},
		{"empty", "", "2024-01-05", "start_date"},
		{"reversed", "2024-01-10", "2024-01-01", "end_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, warnings, err := ParseDateRange(tc.start, tc.end, refNow)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("field=%q want %q", vErr.Field, tc.field)
			}
			if warnings != nil {
				t.Fatalf("expected no warnings on failure, got %v", warnings)
			}
		})
	}
}

func TestValidateDateRange_UsesWallClock(t *testing.T) {
	start, end := DefaultRange(time.Now())
	warnings, err := ValidateDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("default range should not warn, got %v", warnings)
	}
}

func TestDefaultRange(t *testing.T) {
	start, end := DefaultRange(refNow)
	if start != "2024-01-05" || end != "2024-01-12" {
		t.Fatalf("got %s..%s", start, end)
	}
}
