package kode

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/fadhilmr/gudang/internal/db"
)

func insertBarang(t *testing.T, database *sql.DB, id, kode string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO barang (id, nama, kode) VALUES (?, ?, ?)`, id, "test", kode,
	)
	if err != nil {
		t.Fatalf("inserting barang: %v", err)
	}
}

func TestNextStartsAtOne(t *testing.T) {
	database := db.NewTestDB(t)
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	got, err := Next(context.Background(), database, now)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "BRG/25/10/00001" {
		t.Errorf("expected BRG/25/10/00001, got %q", got)
	}
}

func TestNextIncrementsWithinPartition(t *testing.T) {
	database := db.NewTestDB(t)
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	insertBarang(t, database, "a", "BRG/25/10/00001")
	insertBarang(t, database, "b", "BRG/25/10/00007")

	got, err := Next(context.Background(), database, now)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "BRG/25/10/00008" {
		t.Errorf("expected BRG/25/10/00008, got %q", got)
	}
}

func TestNextResetsAcrossPartitions(t *testing.T) {
	database := db.NewTestDB(t)

	insertBarang(t, database, "a", "BRG/25/10/00042")

	// A new month starts a fresh counter.
	now := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	got, err := Next(context.Background(), database, now)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "BRG/25/11/00001" {
		t.Errorf("expected BRG/25/11/00001, got %q", got)
	}
}

func TestNextIgnoresOtherPartitions(t *testing.T) {
	database := db.NewTestDB(t)

	insertBarang(t, database, "a", "BRG/25/09/00099")
	insertBarang(t, database, "b", "BRG/25/10/00003")

	now := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
	got, err := Next(context.Background(), database, now)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "BRG/25/10/00004" {
		t.Errorf("expected BRG/25/10/00004, got %q", got)
	}
}

func TestNextCounterExhausted(t *testing.T) {
	database := db.NewTestDB(t)

	insertBarang(t, database, "a", "BRG/25/10/99999")

	now := time.Date(2025, 10, 31, 23, 0, 0, 0, time.UTC)
	if _, err := Next(context.Background(), database, now); err == nil {
		t.Error("expected error when partition counter is exhausted")
	}
}

func TestPartitionPrefixZeroPadsMonth(t *testing.T) {
	got := PartitionPrefix(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if got != "BRG/26/03/" {
		t.Errorf("expected BRG/26/03/, got %q", got)
	}
}
