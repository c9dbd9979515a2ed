package neo

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	d, _ := time.Parse(DateLayout, s)
	return d
}

func TestWindows(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  [][2]string
	}{
		{"single day", "2024-01-01", "2024-01-01", [][2]string{{"2024-01-01", "2024-01-01"}}},
		{"exactly seven", "2024-01-01", "2024-01-08", [][2]string{{"2024-01-01", "2024-01-08"}}},
		{"nine days", "2024-01-01", "2024-01-10", [][2]string{{"2024-01-01", "2024-01-08"}, {"2024-01-09", "2024-01-10"}}},
		{"month boundary", "2024-01-28", "2024-02-14", [][2]string{
			{"2024-01-28", "2024-02-04"}, {"2024-02-05", "2024-02-12"}, {"2024-02-13", "2024-02-14"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Windows(DateRange{Start: day(tc.start), End: day(tc.end)}, RecommendedSpanDays)
			if len(got) != len(tc.want) {
				t.Fatalf("windows=%d want %d", len(got), len(tc.want))
			}
			for i, w := range got {
				if w.StartDate() != tc.want[i][0] || w.EndDate() != tc.want[i][1] {
					t.Fatalf("window %d = %s..%s want %s..%s", i, w.StartDate(), w.EndDate(), tc.want[i][0], tc.want[i][1])
				}
			}
		})
	}
}
