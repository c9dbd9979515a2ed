package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/validation"
)

type stubEarthFetcher struct {
	mu       sync.Mutex
	events   []models.EarthEvent
	days     int
	dates    []string
	imgErr   error
	assetsQ  models.AssetsQuery
	eventErr error
}

func (f *stubEarthFetcher) EarthEvents(_ context.Context, days int) ([]models.EarthEvent, error) {
	f.days = days
	return f.events, f.eventErr
}

func (f *stubEarthFetcher) EarthCategories(_ context.Context) ([]models.EventCategory, error) {
	return []models.EventCategory{{ID: "wildfires"}}, nil
}

func (f *stubEarthFetcher) EarthImagery(_ context.Context, q models.ImageryQuery) (models.EarthImagery, error) {
	f.mu.Lock()
	f.dates = append(f.dates, q.Date)
	f.mu.Unlock()
	if f.imgErr != nil {
		return models.EarthImagery{}, f.imgErr
	}
	return models.EarthImagery{Date: q.Date, URL: "https://img/" + q.Date, Latitude: q.Lat, Longitude: q.Lon}, nil
}

func (f *stubEarthFetcher) EarthAssets(_ context.Context, q models.AssetsQuery) ([]models.EarthAsset, error) {
	f.assetsQ = q
	return []models.EarthAsset{{ID: "a", Date: "2024-01-01"}}, nil
}

type stubEventRepo struct{ saved int }

func (r *stubEventRepo) UpsertEvents(_ context.Context, events []models.EarthEvent) error {
	r.saved += len(events)
	return nil
}

func event(id, category string, seen time.Time) models.EarthEvent {
	return models.EarthEvent{
		ID:         id,
		Categories: []models.EventCategory{{ID: category}},
		Geometry:   []models.EventGeometry{{Date: seen, Type: "Point"}},
	}
}

func TestEarthService_Events(t *testing.T) {
	recent := refNow.AddDate(0, 0, -2)
	old := refNow.AddDate(0, 0, -40)
	events := []models.EarthEvent{
		event("fire-new", "wildfires", recent),
		event("fire-old", "wildfires", old),
		event("storm", "severeStorms", recent),
		{ID: "no-geometry", Categories: []models.EventCategory{{ID: "volcanoes"}}},
	}

	cases := []struct {
		name     string
		q        models.EventsQuery
		wantIDs  []string
		wantDays int
	}{
		{"default window", models.EventsQuery{}, []string{"fire-new", "storm", "no-geometry"}, 30},
		{"by category", models.EventsQuery{Category: "wildfires"}, []string{"fire-new"}, 30},
		{"wider window", models.EventsQuery{Category: "wildfires", Days: 60}, []string{"fire-new", "fire-old"}, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &stubEarthFetcher{events: events}
			repo := &stubEventRepo{}
			svc := &earthService{fetcher: f, repo: repo, now: fixedNow}

			got, err := svc.Events(context.Background(), tc.q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.days != tc.wantDays {
				t.Fatalf("days = %d, want %d", f.days, tc.wantDays)
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d events, want %v", len(got), tc.wantIDs)
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Fatalf("event %d = %s, want %s", i, got[i].ID, id)
				}
			}
			if repo.saved != len(events) {
				t.Fatalf("all fetched events should be archived, got %d", repo.saved)
			}
		})
	}
}

func TestEarthService_Compare(t *testing.T) {
	f := &stubEarthFetcher{}
	svc := &earthService{fetcher: f, repo: &stubEventRepo{}, now: fixedNow}

	before, after, err := svc.Compare(context.Background(), models.CompareQuery{Lat: 1.5, Lon: 100.75, Date1: "2020-01-01", Date2: "2023-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before.Date != "2020-01-01" || after.Date != "2023-01-01" {
		t.Fatalf("before/after swapped: %+v %+v", before, after)
	}
	if len(f.dates) != 2 {
		t.Fatalf("expected two imagery fetches, got %v", f.dates)
	}

	f.imgErr = errors.New("boom")
	if _, _, err := svc.Compare(context.Background(), models.CompareQuery{Lat: 1, Lon: 1, Date1: "2020-01-01", Date2: "2023-01-01"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEarthService_Validation(t *testing.T) {
	svc := &earthService{fetcher: &stubEarthFetcher{}, repo: &stubEventRepo{}, now: fixedNow}
	ctx := context.Background()

	var re *validation.RequestError
	if _, err := svc.Imagery(ctx, models.ImageryQuery{Lat: 120}); !errors.As(err, &re) {
		t.Fatalf("latitude out of range should fail validation, got %v", err)
	}
	if _, _, err := svc.Compare(ctx, models.CompareQuery{Lat: 1, Lon: 1}); !errors.As(err, &re) {
		t.Fatalf("missing dates should fail validation, got %v", err)
	}
	if _, err := svc.Events(ctx, models.EventsQuery{Days: -1}); !errors.As(err, &re) {
		t.Fatalf("negative days should fail validation, got %v", err)
	}

	var ve *neo.ValidationError
	if _, err := svc.Assets(ctx, models.AssetsQuery{Lat: 1, Lon: 1, BeginDate: "2024-02-01", EndDate: "2024-01-01"}); !errors.As(err, &ve) {
		t.Fatalf("reversed asset window should fail, got %v", err)
	}
	if got, err := svc.Assets(ctx, models.AssetsQuery{Lat: 1, Lon: 1, BeginDate: "2024-01-01"}); err != nil || len(got) != 1 {
		t.Fatalf("assets: %v %v", got, err)
	}
}
