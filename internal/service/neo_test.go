package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/nasa"
	"github.com/guttosm/astropulse/internal/neo"
)

var refNow = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return refNow }

func TestNEOService_Summary(t *testing.T) {
	cases := []struct {
		name         string
		start, end   string
		fetcher      *stubFeed
		wantErr      func(error) bool
		wantCalls    int
		wantTotal    int
		wantWarnings int
	}{
		{
			name:      "defaults to today plus seven days in one window",
			fetcher:   &stubFeed{feeds: map[string]models.Feed{"2024-01-05": {"2024-01-05": {neoObj("a", true, 10)}}}},
			wantCalls: 1,
			wantTotal: 1,
		},
		{
			name:         "long range is split into windows and merged",
			start:        "2024-01-01",
			end:          "2024-01-20",
			wantCalls:    3,
			wantTotal:    3,
			wantWarnings: 1,
			fetcher: &stubFeed{feeds: map[string]models.Feed{
				"2024-01-01": {"2024-01-01": {neoObj("a", true, 10)}},
				"2024-01-09": {"2024-01-10": {neoObj("b", false, 5)}},
				"2024-01-17": {"2024-01-20": {neoObj("c", false, 7)}},
			}},
		},
		{
			name:    "reversed range fails before any fetch",
			start:   "2024-01-10",
			end:     "2024-01-01",
			fetcher: &stubFeed{},
			wantErr: func(err error) bool {
				var ve *neo.ValidationError
				return errors.As(err, &ve)
			},
		},
		{
			name:    "range above the cap is rejected",
			start:   "2020-01-01",
			end:     "2024-01-01",
			fetcher: &stubFeed{},
			wantErr: func(err error) bool {
				var ve *neo.ValidationError
				return errors.As(err, &ve) && ve.Field == "end_date"
			},
		},
		{
			name:      "fetch error short-circuits",
			start:     "2024-01-01",
			end:       "2024-01-02",
			fetcher:   &stubFeed{err: &nasa.FetchError{Kind: nasa.KindRateLimited, Endpoint: "neo_feed"}},
			wantCalls: 1,
			wantErr:   func(err error) bool { return nasa.IsKind(err, nasa.KindRateLimited) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewNEOService(tc.fetcher, &stubNEORepo{}, NEOOptions{Now: fixedNow})
			res, err := svc.Summary(context.Background(), tc.start, tc.end)

			if tc.wantErr != nil {
				if !tc.wantErr(err) {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tc.fetcher.calls) != tc.wantCalls {
				t.Fatalf("expected %d upstream calls, got %v", tc.wantCalls, tc.fetcher.calls)
			}
			if tc.wantErr != nil {
				return
			}
			if res.Summary.Total() != tc.wantTotal {
				t.Fatalf("expected %d objects, got %d", tc.wantTotal, res.Summary.Total())
			}
			if len(res.Warnings) != tc.wantWarnings {
				t.Fatalf("expected %d warnings, got %v", tc.wantWarnings, res.Warnings)
			}
			if res.Warnings == nil {
				t.Fatalf("warnings must be non-nil")
			}
		})
	}
}

func TestNEOService_Summary_WindowsCoverRange(t *testing.T) {
	f := &stubFeed{}
	svc := NewNEOService(f, &stubNEORepo{}, NEOOptions{Now: fixedNow, Parallel: 1})
	if _, err := svc.Summary(context.Background(), "2024-01-01", "2024-01-16"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][2]string{{"2024-01-01", "2024-01-08"}, {"2024-01-09", "2024-01-16"}}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("call %d = %v, want %v", i, f.calls[i], want[i])
		}
	}
}

func TestNEOService_Summary_SkipsMalformed(t *testing.T) {
	bad := models.NearEarthObject{ID: "bad", Name: "bad", DiameterMinKm: 0.1, DiameterMaxKm: 0.2}
	f := &stubFeed{feeds: map[string]models.Feed{"2024-01-01": {"2024-01-01": {neoObj("ok", false, 1), bad}}}}
	svc := NewNEOService(f, &stubNEORepo{}, NEOOptions{Now: fixedNow})

	res, err := svc.Summary(context.Background(), "2024-01-01", "2024-01-01")
	if err != nil {
		t.Fatalf("shape errors must not fail the request: %v", err)
	}
	if res.Summary.Total() != 1 || len(res.Summary.Skipped) != 1 || res.Summary.Skipped[0].ID != "bad" {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
}

func TestNEOService_ListStored_ClampsPaging(t *testing.T) {
	cases := []struct {
		name      string
		in        models.NEOFilter
		wantLimit int
		wantOff   int
	}{
		{"defaults", models.NEOFilter{}, defaultListLimit, 0},
		{"caps limit", models.NEOFilter{Limit: 1000, Offset: 5}, maxListLimit, 5},
		{"negative offset", models.NEOFilter{Limit: 3, Offset: -1}, 3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubNEORepo{}
			svc := NewNEOService(&stubFeed{}, repo, NEOOptions{})
			if _, err := svc.ListStored(context.Background(), tc.in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.filter.Limit != tc.wantLimit || repo.filter.Offset != tc.wantOff {
				t.Fatalf("filter = %+v", repo.filter)
			}
		})
	}
}
