package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/storage"
)

// FavoritesPerPage is the page size of favorite listings.
const FavoritesPerPage = 8

// FavoritesService manages a user's bookmarks.
type FavoritesService interface {
	List(ctx context.Context, userID string, page int) (models.FavoritePage, error)
	// ToggleAPOD flips the favorite state of a cached APOD and reports the
	// new state. The APOD must have been served at least once.
	ToggleAPOD(ctx context.Context, userID, date string) (models.Favorite, bool, error)
	// Remove deletes a favorite owned by userID.
	Remove(ctx context.Context, userID string, id int64) error
}

type favoritesService struct {
	favorites storage.FavoritesRepository
	apods     storage.APODRepository
}

func NewFavoritesService(favorites storage.FavoritesRepository, apods storage.APODRepository) FavoritesService {
	return &favoritesService{favorites: favorites, apods: apods}
}

func (s *favoritesService) List(ctx context.Context, userID string, page int) (models.FavoritePage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.favorites.ListByUser(ctx, userID, FavoritesPerPage, (page-1)*FavoritesPerPage)
	if err != nil {
		return models.FavoritePage{}, err
	}
	return models.FavoritePage{Items: items, Page: page, PerPage: FavoritesPerPage, Total: total}, nil
}

func (s *favoritesService) ToggleAPOD(ctx context.Context, userID, date string) (models.Favorite, bool, error) {
	day, err := time.Parse(neo.DateLayout, date)
	if err != nil {
		return models.Favorite{}, false, &neo.ValidationError{Field: "date", Reason: "invalid date format, expected YYYY-MM-DD", Err: err}
	}

	apod, err := s.apods.GetByDate(ctx, day)
	if err != nil {
		return models.Favorite{}, false, err
	}
	if apod == nil {
		return models.Favorite{}, false, fmt.Errorf("APOD %s: %w", date, ErrNotFound)
	}

	fav := models.Favorite{UserID: userID, NasaID: apod.NasaID(), Title: apod.Title, ImageURL: apod.ImageURL}
	added, err := s.favorites.Toggle(ctx, fav)
	if err != nil {
		return models.Favorite{}, false, err
	}
	return fav, added, nil
}

// Remove deletes with the ownership condition in the same statement. The
// lookup after a miss only picks between not found and forbidden.
func (s *favoritesService) Remove(ctx context.Context, userID string, id int64) error {
	deleted, err := s.favorites.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}
	fav, err := s.favorites.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if fav == nil {
		return fmt.Errorf("favorite %d: %w", id, ErrNotFound)
	}
	return fmt.Errorf("favorite %d: %w", id, ErrForbidden)
}
