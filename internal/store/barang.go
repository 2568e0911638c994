package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fadhilmr/gudang/internal/model"
)

// CreateBarang inserts a new barang row together with its opening stock log
// entry in a single transaction, so a barang is never visible without the
// first ledger entry. Returns ErrKodeTaken if the kode lost a uniqueness
// race against a concurrent insert.
func CreateBarang(ctx context.Context, db *sql.DB, id, nama, kode string, stok int, hargaText string, now time.Time) (*model.Barang, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO barang (id, nama, kode, stok, harga_text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, ?)`,
		id, nama, kode, stok, hargaText, formatTime(now), formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrKodeTaken
		}
		return nil, fmt.Errorf("creating barang: %w", err)
	}

	// Opening ledger entry: delta equals the initial stock.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO stock_logs (barang_id, delta, stok_after, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, stok, stok, formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("creating opening stock log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing barang: %w", err)
	}

	return GetBarang(ctx, db, id)
}

// GetBarang returns a barang by ID, or nil if it does not exist.
func GetBarang(ctx context.Context, db *sql.DB, id string) (*model.Barang, error) {
	b := &model.Barang{}
	var hargaText, fotoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, nama, kode, stok, harga_text, foto_mime, created_at, updated_at
		 FROM barang WHERE id = ?`, id,
	).Scan(&b.ID, &b.Nama, &b.Kode, &b.Stok, &hargaText, &fotoMime, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting barang: %w", err)
	}
	b.HargaText = hargaText.String
	b.FotoMime = fotoMime.String
	return b, nil
}

// ListBarang returns all barang ordered by name.
func ListBarang(ctx context.Context, db *sql.DB) ([]model.Barang, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, nama, kode, stok, harga_text, foto_mime, created_at, updated_at
		 FROM barang ORDER BY nama, kode`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing barang: %w", err)
	}
	defer rows.Close()

	var items []model.Barang
	for rows.Next() {
		var b model.Barang
		var hargaText, fotoMime sql.NullString
		if err := rows.Scan(&b.ID, &b.Nama, &b.Kode, &b.Stok, &hargaText, &fotoMime, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning barang: %w", err)
		}
		b.HargaText = hargaText.String
		b.FotoMime = fotoMime.String
		items = append(items, b)
	}
	return items, rows.Err()
}

// BarangPatch holds the fields of a partial update. Nil fields are left
// untouched. A non-nil Stok overwrites the stock counter directly without
// touching the stock ledger; RecordDelta is the audited path.
type BarangPatch struct {
	Nama      *string
	Stok      *int
	HargaText *string
}

// UpdateBarang applies a partial update to a barang row.
func UpdateBarang(ctx context.Context, db *sql.DB, id string, patch BarangPatch) error {
	set := "updated_at = CURRENT_TIMESTAMP"
	var args []any

	if patch.Nama != nil {
		set += ", nama = ?"
		args = append(args, *patch.Nama)
	}
	if patch.Stok != nil {
		set += ", stok = ?"
		args = append(args, *patch.Stok)
	}
	if patch.HargaText != nil {
		set += ", harga_text = NULLIF(?, '')"
		args = append(args, *patch.HargaText)
	}
	args = append(args, id)

	_, err := db.ExecContext(ctx, `UPDATE barang SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating barang: %w", err)
	}
	return nil
}

// DeleteBarang removes a barang row. Its stock logs and prices cascade.
func DeleteBarang(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM barang WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting barang: %w", err)
	}
	return nil
}

// SetBarangFoto sets a barang's photo data.
func SetBarangFoto(ctx context.Context, db *sql.DB, id string, foto []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE barang SET foto = ?, foto_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		foto, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting barang foto: %w", err)
	}
	return nil
}

// GetBarangFoto returns a barang's photo data and MIME type.
func GetBarangFoto(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var foto []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT foto, foto_mime FROM barang WHERE id = ?`, id,
	).Scan(&foto, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting barang foto: %w", err)
	}
	return foto, mime.String, nil
}
