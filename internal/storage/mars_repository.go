package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/astropulse/internal/domain/models"
)

// MarsRepository archives rover photos seen by the API.
type MarsRepository interface {
	UpsertPhotos(ctx context.Context, photos []models.MarsPhoto) error
}

type marsRepository struct {
	db *sql.DB
}

func NewMarsRepository(db *sql.DB) MarsRepository {
	return &marsRepository{db: db}
}

var marsColumns = []string{"nasa_id", "sol", "rover", "camera", "camera_full", "img_src", "earth_date"}

// UpsertPhotos bulk loads photos through a staging table; already archived
// photos are left untouched.
func (r *marsRepository) UpsertPhotos(ctx context.Context, photos []models.MarsPhoto) (err error) {
	if len(photos) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `CREATE TEMP TABLE mars_photos_staging (LIKE mars_photos INCLUDING DEFAULTS) ON COMMIT DROP`); err != nil {
		return fmt.Errorf("create mars staging: %w", err)
	}

	rows := make([][]any, 0, len(photos))
	for _, p := range photos {
		var earthDate any
		if p.EarthDate != "" {
			earthDate = p.EarthDate
		}
		rows = append(rows, []any{p.NasaID, p.Sol, p.RoverName, p.CameraName, p.CameraFull, p.ImageURL, earthDate})
	}
	if err = copyRows(ctx, tx, "mars_photos_staging", marsColumns, rows); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO mars_photos (nasa_id, sol, rover, camera, camera_full, img_src, earth_date)
		SELECT DISTINCT ON (nasa_id) nasa_id, sol, rover, camera, camera_full, img_src, earth_date
		FROM mars_photos_staging
		ON CONFLICT (nasa_id) DO NOTHING
	`); err != nil {
		return fmt.Errorf("merge mars photos: %w", err)
	}

	return tx.Commit()
}
