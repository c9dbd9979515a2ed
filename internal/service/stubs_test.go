package service

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
)

type stubFeed struct {
	mu    sync.Mutex
	calls [][2]string
	feeds map[string]models.Feed // keyed by window start
	err   error
}

func (s *stubFeed) NEOFeed(_ context.Context, start, end string) (models.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, [2]string{start, end})
	if s.err != nil {
		return nil, s.err
	}
	if f, ok := s.feeds[start]; ok {
		return f, nil
	}
	return models.Feed{}, nil
}

type stubNEORepo struct {
	filter models.NEOFilter
	out    []models.StoredNEO
	err    error

	ingested map[string]bool
	upserts  map[string]int
	logs     map[string][2]int
	replaced []string
}

func (r *stubNEORepo) UpsertObjects(_ context.Context, d time.Time, objs []models.NearEarthObject) error {
	if r.upserts == nil {
		r.upserts = map[string]int{}
	}
	r.upserts[d.Format("2006-01-02")] = len(objs)
	return r.err
}

func (r *stubNEORepo) ListStored(_ context.Context, f models.NEOFilter) ([]models.StoredNEO, error) {
	r.filter = f
	return r.out, r.err
}

func (r *stubNEORepo) HasIngestionForDate(_ context.Context, d time.Time) (bool, error) {
	return r.ingested[d.Format("2006-01-02")], nil
}

func (r *stubNEORepo) UpsertIngestionLog(_ context.Context, d time.Time, objects, skipped int) error {
	if r.logs == nil {
		r.logs = map[string][2]int{}
	}
	r.logs[d.Format("2006-01-02")] = [2]int{objects, skipped}
	return nil
}

func (r *stubNEORepo) ReplaceObjects(ctx context.Context, d time.Time, objs []models.NearEarthObject) error {
	r.replaced = append(r.replaced, d.Format("2006-01-02"))
	return r.UpsertObjects(ctx, d, objs)
}

type stubAPODRepo struct {
	stored  map[string]models.APOD
	readErr error
	writes  int
}

func (r *stubAPODRepo) GetByDate(_ context.Context, d time.Time) (*models.APOD, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	if a, ok := r.stored[d.Format("2006-01-02")]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *stubAPODRepo) Upsert(_ context.Context, a models.APOD) error {
	if r.stored == nil {
		r.stored = map[string]models.APOD{}
	}
	r.stored[a.NasaID()] = a
	r.writes++
	return nil
}

type stubAPODFetcher struct {
	calls int
	err   error
}

func (f *stubAPODFetcher) APOD(_ context.Context, date string) (models.APOD, error) {
	f.calls++
	if f.err != nil {
		return models.APOD{}, f.err
	}
	d, _ := time.Parse("2006-01-02", date)
	return models.APOD{Date: d, Title: "Fetched " + date, ImageURL: "https://apod/" + date}, nil
}

func neoObj(id string, hazardous bool, dist float64) models.NearEarthObject {
	return models.NearEarthObject{
		ID: id, Name: id, DiameterMinKm: 0.1, DiameterMaxKm: 0.3, Hazardous: hazardous,
		Approaches: []models.CloseApproach{{MissDistanceKm: dist, RelativeVelocity: 1000, ApproachDate: "2024-01-01"}},
	}
}
