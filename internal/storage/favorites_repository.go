package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/guttosm/astropulse/internal/domain/models"
)

// FavoritesRepository stores per-user bookmarks of NASA items.
type FavoritesRepository interface {
	// ListByUser returns one page of the user's favorites, newest first, and
	// the user's total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Favorite, int, error)
	// GetByID returns nil, nil when no favorite has that id.
	GetByID(ctx context.Context, id int64) (*models.Favorite, error)
	// Toggle removes the (user, nasa_id) favorite if present, otherwise
	// inserts fav. It reports whether the item is a favorite afterwards.
	Toggle(ctx context.Context, fav models.Favorite) (bool, error)
	// DeleteOwned removes the favorite only when userID owns it and reports
	// whether a row was deleted.
	DeleteOwned(ctx context.Context, id int64, userID string) (bool, error)
}

type favoritesRepository struct {
	db *sql.DB
}

func NewFavoritesRepository(db *sql.DB) FavoritesRepository {
	return &favoritesRepository{db: db}
}

func (r *favoritesRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Favorite, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, nasa_id, image_url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.Title, &f.NasaID, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (r *favoritesRepository) GetByID(ctx context.Context, id int64) (*models.Favorite, error) {
	var f models.Favorite
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, nasa_id, image_url, created_at
		FROM favorites
		WHERE id = $1
	`, id).Scan(&f.ID, &f.UserID, &f.Title, &f.NasaID, &f.ImageURL, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *favoritesRepository) Toggle(ctx context.Context, fav models.Favorite) (added bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND nasa_id = $2`, fav.UserID, fav.NasaID)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if removed == 0 {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO favorites (user_id, nasa_id, title, image_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, nasa_id) DO NOTHING
		`, fav.UserID, fav.NasaID, fav.Title, fav.ImageURL); err != nil {
			return false, err
		}
		added = true
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}
	return added, nil
}

func (r *favoritesRepository) DeleteOwned(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
