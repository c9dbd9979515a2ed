//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/astropulse/db"
	"github.com/guttosm/astropulse/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "astropulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=astropulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "astropulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return conn
}

func runMigrations(t *testing.T, conn *sql.DB) {
	t.Helper()
	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := goose.Up(conn, db.MigrationsDir); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestRepositories_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	conn := openDB(t, dsn)
	defer conn.Close()
	runMigrations(t, conn)

	ctx := context.Background()
	neos := NewNEORepository(conn)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	objs := []models.NearEarthObject{
		{ID: "1", Name: "near", DiameterMinKm: 0.1, DiameterMaxKm: 0.2, Hazardous: true,
			Approaches: []models.CloseApproach{{MissDistanceKm: 500, RelativeVelocity: 1, ApproachDate: "2024-01-01"}}},
		{ID: "2", Name: "far", DiameterMinKm: 1, DiameterMaxKm: 3,
			Approaches: []models.CloseApproach{{MissDistanceKm: 9000, RelativeVelocity: 2, ApproachDate: "2024-01-01"}}},
	}

	t.Run("upsert is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := neos.UpsertObjects(ctx, day, objs); err != nil {
				t.Fatalf("upsert %d: %v", i, err)
			}
		}
		var cnt int
		if err := conn.QueryRow("SELECT COUNT(*) FROM close_approaches WHERE feed_date=$1", day).Scan(&cnt); err != nil {
			t.Fatalf("count: %v", err)
		}
		if cnt != 2 {
			t.Fatalf("expected 2 approaches after re-ingest, got %d", cnt)
		}
	})

	cases := []struct {
		name      string
		filter    models.NEOFilter
		wantFirst string
		wantLen   int
	}{
		{name: "all nearest first", filter: models.NEOFilter{Limit: 10}, wantFirst: "1", wantLen: 2},
		{name: "paged", filter: models.NEOFilter{Limit: 1, Offset: 1}, wantFirst: "2", wantLen: 1},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := neos.ListStored(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListStored: %v", err)
			}
			if len(out) != tt.wantLen || out[0].ID != tt.wantFirst {
				t.Fatalf("unexpected rows: %+v", out)
			}
		})
	}

	t.Run("ingestion log upsert+exists", func(t *testing.T) {
		if err := neos.UpsertIngestionLog(ctx, day, 2, 0); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		ok, err := neos.HasIngestionForDate(ctx, day)
		if err != nil || !ok {
			t.Fatalf("exists want true, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("replace drops approaches missing from the new feed", func(t *testing.T) {
		if err := neos.ReplaceObjects(ctx, day, objs[1:]); err != nil {
			t.Fatalf("replace: %v", err)
		}
		var ids []string
		rows, err := conn.Query("SELECT neo_id FROM close_approaches WHERE feed_date=$1", day)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				t.Fatalf("scan: %v", err)
			}
			ids = append(ids, id)
		}
		if len(ids) != 1 || ids[0] != "2" {
			t.Fatalf("expected only approaches of object 2, got %v", ids)
		}
	})

	t.Run("favorites toggle", func(t *testing.T) {
		favs := NewFavoritesRepository(conn)
		fav := models.Favorite{UserID: "u1", NasaID: "2024-01-05", Title: "Nebula"}
		for i, want := range []bool{true, false, true} {
			added, err := favs.Toggle(ctx, fav)
			if err != nil || added != want {
				t.Fatalf("toggle %d: added=%v err=%v, want %v", i, added, err, want)
			}
		}
		items, total, err := favs.ListByUser(ctx, "u1", 8, 0)
		if err != nil || total != 1 || len(items) != 1 {
			t.Fatalf("list: items=%+v total=%d err=%v", items, total, err)
		}

		if ok, err := favs.DeleteOwned(ctx, items[0].ID, "u2"); err != nil || ok {
			t.Fatalf("non-owner delete: ok=%v err=%v", ok, err)
		}
		if ok, err := favs.DeleteOwned(ctx, items[0].ID, "u1"); err != nil || !ok {
			t.Fatalf("owner delete: ok=%v err=%v", ok, err)
		}
	})
}
