package migrations_test

import (
	"context"
	"testing"

	"github.com/playperu/citymarble/internal/database"
	"github.com/playperu/citymarble/internal/migrations"
)

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	tests := []struct {
		table string
		rows  int
	}{
		{"tiles", 20},
		{"events", 7},
		{"quiz_questions", 22},
	}
	for _, tt := range tests {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + tt.table).Scan(&n); err != nil {
			t.Errorf("table %q: %v", tt.table, err)
			continue
		}
		if n != tt.rows {
			t.Errorf("table %q: got %d rows, want %d", tt.table, n, tt.rows)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
}
