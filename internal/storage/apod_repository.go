package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/guttosm/astropulse/internal/domain/models"
)

// APODRepository caches Astronomy Pictures of the Day by date.
type APODRepository interface {
	// GetByDate returns nil, nil when the date is not cached.
	GetByDate(ctx context.Context, date time.Time) (*models.APOD, error)
	Upsert(ctx context.Context, apod models.APOD) error
}

type apodRepository struct {
	db *sql.DB
}

func NewAPODRepository(db *sql.DB) APODRepository {
	return &apodRepository{db: db}
}

func (r *apodRepository) GetByDate(ctx context.Context, date time.Time) (*models.APOD, error) {
	var a models.APOD
	err := r.db.QueryRowContext(ctx, `
		SELECT date, title, explanation, url, hdurl, media_type, copyright, created_at
		FROM apods
		WHERE date = $1
	`, date).Scan(&a.Date, &a.Title, &a.Explanation, &a.ImageURL, &a.HDURL, &a.MediaType, &a.Copyright, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *apodRepository) Upsert(ctx context.Context, a models.APOD) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO apods (date, title, explanation, url, hdurl, media_type, copyright)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (date)
		DO UPDATE SET title = EXCLUDED.title,
		              explanation = EXCLUDED.explanation,
		              url = EXCLUDED.url,
		              hdurl = EXCLUDED.hdurl,
		              media_type = EXCLUDED.media_type,
		              copyright = EXCLUDED.copyright
	`, a.Date, a.Title, a.Explanation, a.ImageURL, a.HDURL, a.MediaType, a.Copyright)
	return err
}
