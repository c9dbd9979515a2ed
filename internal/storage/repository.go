package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/astropulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// NEORepository defines the persistence contract for ingested near-Earth
// objects and the per-day ingestion log.
type NEORepository interface {
	UpsertObjects(ctx context.Context, feedDate time.Time, objs []models.NearEarthObject) error
	ReplaceObjects(ctx context.Context, feedDate time.Time, objs []models.NearEarthObject) error
	ListStored(ctx context.Context, filter models.NEOFilter) ([]models.StoredNEO, error)
	HasIngestionForDate(ctx context.Context, date time.Time) (bool, error)
	UpsertIngestionLog(ctx context.Context, date time.Time, objectCount, skippedCount int) error
}

type neoRepository struct {
	db *sql.DB
}

func NewNEORepository(db *sql.DB) NEORepository {
	return &neoRepository{db: db}
}

var (
	neoColumns      = []string{"id", "name", "jpl_url", "absolute_magnitude_h", "diameter_min_km", "diameter_max_km", "hazardous"}
	approachColumns = []string{"neo_id", "feed_date", "approach_date", "miss_distance_km", "velocity_kph"}
)

// UpsertObjects writes one feed day in a single transaction.
//
// Behavior:
//   - Objects and their approaches are bulk loaded with COPY into temp
//     staging tables dropped on commit.
//   - Staged rows are merged with INSERT ... ON CONFLICT, so re-ingesting a
//     day updates rows in place instead of duplicating them.
func (r *neoRepository) UpsertObjects(ctx context.Context, feedDate time.Time, objs []models.NearEarthObject) error {
	return r.writeDay(ctx, feedDate, objs, false)
}

// ReplaceObjects is UpsertObjects preceded by deleting the day's recorded
// close approaches, in the same transaction. A failed write leaves the
// previous rows in place.
func (r *neoRepository) ReplaceObjects(ctx context.Context, feedDate time.Time, objs []models.NearEarthObject) error {
	return r.writeDay(ctx, feedDate, objs, true)
}

func (r *neoRepository) writeDay(ctx context.Context, feedDate time.Time, objs []models.NearEarthObject, replace bool) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Small optimization for bulk load
	if _, err = tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		return err
	}

	if replace {
		if _, err = tx.ExecContext(ctx, `DELETE FROM close_approaches WHERE feed_date = $1`, feedDate); err != nil {
			return fmt.Errorf("delete day approaches: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `CREATE TEMP TABLE neos_staging (LIKE neos INCLUDING DEFAULTS) ON COMMIT DROP`); err != nil {
		return fmt.Errorf("create neos staging: %w", err)
	}
	neoRows := make([][]any, 0, len(objs))
	for _, o := range objs {
		neoRows = append(neoRows, []any{o.ID, o.Name, o.JPLURL, o.AbsoluteMagnitudeH, o.DiameterMinKm, o.DiameterMaxKm, o.Hazardous})
	}
	if err = copyRows(ctx, tx, "neos_staging", neoColumns, neoRows); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO neos (id, name, jpl_url, absolute_magnitude_h, diameter_min_km, diameter_max_km, hazardous)
		SELECT DISTINCT ON (id) id, name, jpl_url, absolute_magnitude_h, diameter_min_km, diameter_max_km, hazardous
		FROM neos_staging
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			jpl_url = EXCLUDED.jpl_url,
			absolute_magnitude_h = EXCLUDED.absolute_magnitude_h,
			diameter_min_km = EXCLUDED.diameter_min_km,
			diameter_max_km = EXCLUDED.diameter_max_km,
			hazardous = EXCLUDED.hazardous,
			updated_at = NOW()
	`); err != nil {
		return fmt.Errorf("merge neos: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		CREATE TEMP TABLE close_approaches_staging (
			neo_id TEXT, feed_date DATE, approach_date DATE,
			miss_distance_km DOUBLE PRECISION, velocity_kph DOUBLE PRECISION
		) ON COMMIT DROP
	`); err != nil {
		return fmt.Errorf("create approaches staging: %w", err)
	}
	var approachRows [][]any
	for _, o := range objs {
		for _, a := range o.Approaches {
			approachRows = append(approachRows, []any{o.ID, feedDate, a.ApproachDate, a.MissDistanceKm, a.RelativeVelocity})
		}
	}
	if err = copyRows(ctx, tx, "close_approaches_staging", approachColumns, approachRows); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO close_approaches (neo_id, feed_date, approach_date, miss_distance_km, velocity_kph)
		SELECT DISTINCT ON (neo_id, feed_date, approach_date) neo_id, feed_date, approach_date, miss_distance_km, velocity_kph
		FROM close_approaches_staging
		ON CONFLICT (neo_id, feed_date, approach_date) DO UPDATE SET
			miss_distance_km = EXCLUDED.miss_distance_km,
			velocity_kph = EXCLUDED.velocity_kph
	`); err != nil {
		return fmt.Errorf("merge close approaches: %w", err)
	}

	return tx.Commit()
}

// copyRows streams rows into table with COPY FROM STDIN.
func copyRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy %s: %w", table, err)
	}
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy %s row: %w", table, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("flush copy %s: %w", table, err)
	}
	return stmt.Close()
}

// ListStored returns persisted objects with their closest recorded approach,
// nearest first.
func (r *neoRepository) ListStored(ctx context.Context, filter models.NEOFilter) ([]models.StoredNEO, error) {
	var hazardous any
	if filter.Hazardous != nil {
		hazardous = *filter.Hazardous
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT n.id, n.name, n.jpl_url, n.absolute_magnitude_h, n.diameter_min_km, n.diameter_max_km, n.hazardous,
		       c.miss_distance_km, c.approach_date
		FROM neos n
		LEFT JOIN LATERAL (
			SELECT miss_distance_km, approach_date
			FROM close_approaches
			WHERE neo_id = n.id
			ORDER BY miss_distance_km ASC
			LIMIT 1
		) c ON TRUE
		WHERE ($1::boolean IS NULL OR n.hazardous = $1)
		ORDER BY c.miss_distance_km ASC NULLS LAST, n.id
		LIMIT $2 OFFSET $3
	`, hazardous, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.StoredNEO{}
	for rows.Next() {
		var (
			n       models.StoredNEO
			closest sql.NullFloat64
			date    sql.NullTime
		)
		if err := rows.Scan(&n.ID, &n.Name, &n.JPLURL, &n.AbsoluteMagnitudeH, &n.DiameterMinKm, &n.DiameterMaxKm, &n.Hazardous, &closest, &date); err != nil {
			return nil, err
		}
		if closest.Valid {
			n.ClosestDistanceKm = closest.Float64
		}
		if date.Valid {
			n.ClosestDate = date.Time.Format(dateLayout)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// HasIngestionForDate checks if a feed day was already ingested.
func (r *neoRepository) HasIngestionForDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE feed_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) the ingestion entry of a feed day.
func (r *neoRepository) UpsertIngestionLog(ctx context.Context, date time.Time, objectCount, skippedCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (feed_date, object_count, skipped_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (feed_date)
		DO UPDATE SET object_count = EXCLUDED.object_count,
		              skipped_count = EXCLUDED.skipped_count,
		              ingested_at = NOW()
	`, date, objectCount, skippedCount)
	return err
}
