package api

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/service"
)

var testSecret = []byte("test-secret")

type mockNEO struct {
	res    service.NEOSummaryResult
	items  []models.StoredNEO
	filter models.NEOFilter
	err    error
}

func (m *mockNEO) Summary(_ context.Context, _, _ string) (service.NEOSummaryResult, error) {
	return m.res, m.err
}

func (m *mockNEO) ListStored(_ context.Context, f models.NEOFilter) ([]models.StoredNEO, error) {
	m.filter = f
	return m.items, m.err
}

type mockAPOD struct {
	apod models.APOD
	err  error
}

func (m *mockAPOD) Get(context.Context, string) (models.APOD, error) { return m.apod, m.err }

type mockMars struct {
	q      models.MarsPhotoQuery
	photos []models.MarsPhoto
	err    error
}

func (m *mockMars) Photos(_ context.Context, q models.MarsPhotoQuery) ([]models.MarsPhoto, error) {
	m.q = q
	return m.photos, m.err
}

type mockEarth struct {
	eventsQ  models.EventsQuery
	imageryQ models.ImageryQuery
	err      error
}

func (m *mockEarth) Events(_ context.Context, q models.EventsQuery) ([]models.EarthEvent, error) {
	m.eventsQ = q
	return []models.EarthEvent{{ID: "EONET_1"}}, m.err
}

func (m *mockEarth) Categories(context.Context) ([]models.EventCategory, error) {
	return []models.EventCategory{{ID: "wildfires"}}, m.err
}

func (m *mockEarth) Imagery(_ context.Context, q models.ImageryQuery) (models.EarthImagery, error) {
	m.imageryQ = q
	return models.EarthImagery{Date: q.Date, Latitude: q.Lat, Longitude: q.Lon}, m.err
}

func (m *mockEarth) Compare(_ context.Context, q models.CompareQuery) (models.EarthImagery, models.EarthImagery, error) {
	return models.EarthImagery{Date: q.Date1}, models.EarthImagery{Date: q.Date2}, m.err
}

func (m *mockEarth) Assets(context.Context, models.AssetsQuery) ([]models.EarthAsset, error) {
	return []models.EarthAsset{{ID: "a"}}, m.err
}

type mockISS struct{ err error }

func (m *mockISS) Position(context.Context) (models.ISSPosition, error) {
	return models.ISSPosition{Latitude: 10, Longitude: 20}, m.err
}

func (m *mockISS) Crew(context.Context) (models.Crew, error) {
	return models.Crew{Number: 2}, m.err
}

type mockFavorites struct {
	user    string
	page    int
	removed int64
	on      bool
	err     error
}

func (m *mockFavorites) List(_ context.Context, userID string, page int) (models.FavoritePage, error) {
	m.user, m.page = userID, page
	return models.FavoritePage{Items: []models.Favorite{}, Page: page, PerPage: service.FavoritesPerPage}, m.err
}

func (m *mockFavorites) ToggleAPOD(_ context.Context, userID, date string) (models.Favorite, bool, error) {
	m.user = userID
	return models.Favorite{UserID: userID, NasaID: date}, m.on, m.err
}

func (m *mockFavorites) Remove(_ context.Context, userID string, id int64) error {
	m.user, m.removed = userID, id
	return m.err
}

// fullServices fills every service slot so routes never hit a nil interface.
func fullServices(s Services) Services {
	if s.NEO == nil {
		s.NEO = &mockNEO{}
	}
	if s.APOD == nil {
		s.APOD = &mockAPOD{}
	}
	if s.Mars == nil {
		s.Mars = &mockMars{}
	}
	if s.Earth == nil {
		s.Earth = &mockEarth{}
	}
	if s.ISS == nil {
		s.ISS = &mockISS{}
	}
	if s.Favorites == nil {
		s.Favorites = &mockFavorites{}
	}
	return s
}

func newTestRouter(s Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(fullServices(s)), RouterOptions{JWTSecret: testSecret})
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}
