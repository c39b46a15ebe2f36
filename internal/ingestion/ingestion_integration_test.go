//go:build integration
// +build integration

package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "tradechart",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=tradechart sslmode=disable", host, port.Port())
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

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "tradechart")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/ingestion → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func writeInputFile(t *testing.T, dir, name string, rows int) int {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("id,timestamp,tradeSize,price,symbol\n"); err != nil {
		t.Fatalf("write header: %v", err)
	}

	start := time.Date(2024, 4, 1, 13, 30, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		line := fmt.Sprintf("%d,%s,%d,%.2f,AAPL\n", i+1, start.Add(time.Duration(i)*time.Hour).Format(time.RFC3339), 100+i, 170.0+float64(i))
		if _, err := f.WriteString(line); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	return rows
}

func TestIngestion_EndToEnd_ProcessDirectory(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	tdir := t.TempDir()
	wrote := writeInputFile(t, tdir, "trades_2024-04.csv", 3)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := ProcessDirectory(ctx, tdir, db, 2, false); err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}

	var cnt int
	if err := db.QueryRow("SELECT COUNT(*) FROM trades WHERE source_file=$1", "trades_2024-04.csv").Scan(&cnt); err != nil {
		t.Fatalf("count trades: %v", err)
	}
	if cnt != wrote {
		t.Fatalf("expected %d trades, got %d", wrote, cnt)
	}

	var exists bool
	if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename=$1)", "trades_2024-04.csv").Scan(&exists); err != nil {
		t.Fatalf("check ingestion_log: %v", err)
	}
	if !exists {
		t.Fatalf("expected ingestion_log entry")
	}

	// A forced re-run replaces the rows instead of duplicating them.
	if err := ProcessDirectory(ctx, tdir, db, 1, true); err != nil {
		t.Fatalf("ProcessDirectory force: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM trades").Scan(&cnt); err != nil {
		t.Fatalf("count trades: %v", err)
	}
	if cnt != wrote {
		t.Fatalf("expected %d trades after force, got %d", wrote, cnt)
	}
}
