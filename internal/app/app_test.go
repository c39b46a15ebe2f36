package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/tradechart/config"
)

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	// Backup and override global config
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329,
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	// Override opener to return a sqlmock DB that pings successfully
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	// Expect a ping during InitializeApp's health handler (db.Ping used elsewhere as well)
	mock.ExpectPing()

	old := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() {
		postgresOpener = old
		_ = db.Close()
	})

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}

	w0 := httptest.NewRecorder()
	router.ServeHTTP(w0, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))
	if w0.Code != http.StatusOK {
		t.Fatalf("presets status=%d", w0.Code)
	}

	// Hit health endpoints
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	// Call cleanup and ensure it doesn't panic
	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitializeApp_InvalidChartConfig(t *testing.T) {
	old := config.AppConfig
	oldOpener := postgresOpener
	t.Cleanup(func() {
		config.AppConfig = old
		postgresOpener = oldOpener
	})
	opened := false
	postgresOpener = func(cfg config.Config) (*sql.DB, error) {
		opened = true
		return nil, sql.ErrConnDone
	}

	cases := []struct {
		name  string
		chart config.ChartConfig
	}{
		{name: "unknown timezone", chart: config.ChartConfig{Timezone: "Mars/Olympus"}},
		{name: "missing presets file", chart: config.ChartConfig{PresetsFile: filepath.Join(t.TempDir(), "nope.yaml")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config.AppConfig = config.Config{Chart: tc.chart}
			if _, _, err := InitializeApp(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if opened {
		t.Fatalf("database must not be opened when chart config is invalid")
	}
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(good, []byte("presets:\n  - label: Tail\n    start: 0.9\n    end: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("presets: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name    string
		path    string
		wantLen int
		wantErr bool
	}{
		{name: "defaults", path: "", wantLen: 5},
		{name: "file", path: good, wantLen: 1},
		{name: "empty table", path: bad, wantErr: true},
		{name: "missing", path: filepath.Join(dir, "missing.yaml"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := loadPresets(tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v err=%v", tc.wantErr, err)
			}
			if !tc.wantErr && len(got) != tc.wantLen {
				t.Fatalf("want %d presets, got %d", tc.wantLen, len(got))
			}
		})
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := loadLocation("")
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("empty zone: loc=%v err=%v", loc, err)
	}
	loc, err = loadLocation("America/New_York")
	if err != nil || loc.String() != "America/New_York" {
		t.Fatalf("named zone: loc=%v err=%v", loc, err)
	}
	if _, err := loadLocation("Nowhere/City"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}
