package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadhilmr/gudang/internal/db"
)

var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

func TestCreateBarangWithOpeningLedgerEntry(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	b, err := CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 50, "15000", testNow)
	if err != nil {
		t.Fatalf("CreateBarang: %v", err)
	}
	if b.Nama != "Mouse" || b.Kode != "BRG/25/10/00001" || b.Stok != 50 {
		t.Errorf("unexpected barang: %+v", b)
	}
	if b.HargaText != "15000" {
		t.Errorf("expected harga_text 15000, got %q", b.HargaText)
	}

	logs, err := ListStockLogs(ctx, database, "id-1")
	if err != nil {
		t.Fatalf("ListStockLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 opening log entry, got %d", len(logs))
	}
	if logs[0].Delta != 50 || logs[0].StokAfter != 50 {
		t.Errorf("expected opening entry {50, 50}, got {%d, %d}", logs[0].Delta, logs[0].StokAfter)
	}
}

func TestCreateBarangEmptyHargaIsNull(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	b, err := CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 0, "", testNow)
	if err != nil {
		t.Fatalf("CreateBarang: %v", err)
	}
	if b.HargaText != "" {
		t.Errorf("expected empty harga_text, got %q", b.HargaText)
	}
}

func TestCreateBarangDuplicateKode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 0, "", testNow); err != nil {
		t.Fatalf("CreateBarang: %v", err)
	}

	_, err := CreateBarang(ctx, database, "id-2", "Keyboard", "BRG/25/10/00001", 0, "", testNow)
	if !errors.Is(err, ErrKodeTaken) {
		t.Errorf("expected ErrKodeTaken, got %v", err)
	}

	// The losing insert must leave no orphaned ledger entry behind.
	logs, _ := ListStockLogs(ctx, database, "id-2")
	if len(logs) != 0 {
		t.Errorf("expected no stock logs for failed create, got %d", len(logs))
	}
}

func TestUpdateBarangPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 10, "1000", testNow)

	nama := "Wireless Mouse"
	if err := UpdateBarang(ctx, database, "id-1", BarangPatch{Nama: &nama}); err != nil {
		t.Fatalf("UpdateBarang: %v", err)
	}

	b, _ := GetBarang(ctx, database, "id-1")
	if b.Nama != "Wireless Mouse" {
		t.Errorf("expected updated nama, got %q", b.Nama)
	}
	if b.Stok != 10 || b.HargaText != "1000" {
		t.Errorf("untouched fields changed: %+v", b)
	}
}

func TestUpdateBarangStokBypassesLedger(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 10, "", testNow)

	stok := 99
	if err := UpdateBarang(ctx, database, "id-1", BarangPatch{Stok: &stok}); err != nil {
		t.Fatalf("UpdateBarang: %v", err)
	}

	b, _ := GetBarang(ctx, database, "id-1")
	if b.Stok != 99 {
		t.Errorf("expected stok 99, got %d", b.Stok)
	}

	// Direct overwrite must not append a ledger entry.
	logs, _ := ListStockLogs(ctx, database, "id-1")
	if len(logs) != 1 {
		t.Errorf("expected only the opening log entry, got %d", len(logs))
	}
}

func TestDeleteBarangCascades(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 10, "", testNow)
	RecordDelta(ctx, database, "id-1", 5, testNow)
	AddPrice(ctx, database, "id-1", "1000", "2025-10-01")

	if err := DeleteBarang(ctx, database, "id-1"); err != nil {
		t.Fatalf("DeleteBarang: %v", err)
	}

	b, _ := GetBarang(ctx, database, "id-1")
	if b != nil {
		t.Error("expected barang to be gone")
	}

	var logCount, priceCount int
	database.QueryRow(`SELECT COUNT(*) FROM stock_logs`).Scan(&logCount)
	database.QueryRow(`SELECT COUNT(*) FROM prices`).Scan(&priceCount)
	if logCount != 0 || priceCount != 0 {
		t.Errorf("expected cascade delete, got %d logs and %d prices", logCount, priceCount)
	}
}

func TestSetAndGetBarangFoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateBarang(ctx, database, "id-1", "Mouse", "BRG/25/10/00001", 0, "", testNow)

	data := []byte{0xff, 0xd8, 0x01, 0x02}
	if err := SetBarangFoto(ctx, database, "id-1", data, "image/jpeg"); err != nil {
		t.Fatalf("SetBarangFoto: %v", err)
	}

	got, mime, err := GetBarangFoto(ctx, database, "id-1")
	if err != nil {
		t.Fatalf("GetBarangFoto: %v", err)
	}
	if mime != "image/jpeg" || len(got) != len(data) {
		t.Errorf("unexpected foto: mime %q, %d bytes", mime, len(got))
	}

	b, _ := GetBarang(ctx, database, "id-1")
	if b.FotoMime != "image/jpeg" {
		t.Errorf("expected foto_mime on barang, got %q", b.FotoMime)
	}
}
