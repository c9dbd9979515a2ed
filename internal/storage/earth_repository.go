package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	pq "github.com/lib/pq"

	"github.com/guttosm/astropulse/internal/domain/models"
)

// EarthEventRepository archives EONET natural events.
type EarthEventRepository interface {
	UpsertEvents(ctx context.Context, events []models.EarthEvent) error
}

type earthEventRepository struct {
	db *sql.DB
}

func NewEarthEventRepository(db *sql.DB) EarthEventRepository {
	return &earthEventRepository{db: db}
}

// UpsertEvents stores each event with its full JSON payload. Events are
// updated in place as EONET appends geometry to them.
func (r *earthEventRepository) UpsertEvents(ctx context.Context, events []models.EarthEvent) (err error) {
	if len(events) == 0 {
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

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO earth_events (id, title, category_ids, first_seen, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET title = EXCLUDED.title,
		              category_ids = EXCLUDED.category_ids,
		              first_seen = EXCLUDED.first_seen,
		              payload = EXCLUDED.payload,
		              updated_at = NOW()
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		payload, mErr := json.Marshal(ev)
		if mErr != nil {
			return fmt.Errorf("encode event %s: %w", ev.ID, mErr)
		}
		categories := make([]string, 0, len(ev.Categories))
		for _, c := range ev.Categories {
			categories = append(categories, c.ID)
		}
		var firstSeen any
		if fs := ev.FirstSeen(); !fs.IsZero() {
			firstSeen = fs
		}
		if _, err = stmt.ExecContext(ctx, ev.ID, ev.Title, pq.Array(categories), firstSeen, payload); err != nil {
			return fmt.Errorf("upsert event %s: %w", ev.ID, err)
		}
	}

	return tx.Commit()
}
