package shared

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID length 36, got %d", len(a))
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(out), "\n") {
			t.Error("pretty output should be indented")
		}
	})

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != `{"key":"value"}` {
			t.Errorf("unexpected output %s", out)
		}
	})
}

func TestConfig(t *testing.T) {
	t.Run("default config parses the embedded example", func(t *testing.T) {
		config := DefaultConfig()

		if config.Curation.DefaultLength <= 0 {
			t.Error("expected a positive default curation length")
		}
		if config.Credentials.Gemini.Model == "" {
			t.Error("expected a default model name")
		}
		if config.Server.Port == 0 {
			t.Error("expected a default server port")
		}
	})

	t.Run("create and load round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Database.Path != DefaultConfig().Database.Path {
			t.Error("loaded config differs from embedded defaults")
		}
	})

	t.Run("create refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected an error for an existing file")
		}
	})

	t.Run("load fails on missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}

func TestMigrations(t *testing.T) {
	newDB := func(t *testing.T) *sql.DB {
		t.Helper()
		db, err := sql.Open("sqlite3", ":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return db
	}

	t.Run("run creates the schema", func(t *testing.T) {
		db := newDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("migrations failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM library").Scan(&count); err != nil {
			t.Errorf("library table should exist: %v", err)
		}
	})

	t.Run("run is idempotent", func(t *testing.T) {
		db := newDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
	})

	t.Run("rollback drops the schema", func(t *testing.T) {
		db := newDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("migrations failed: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		if err := db.QueryRow("SELECT COUNT(*) FROM library").Scan(new(int)); err == nil {
			t.Error("library table should be gone after rollback")
		}
	})

	t.Run("rollback without migrations is an error", func(t *testing.T) {
		db := newDB(t)
		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected an error with nothing to roll back")
		}
	})
}
