package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadhilmr/gudang/internal/model"
)

// AddPrice appends a price entry for a barang. Entries are never validated
// against or ordered relative to existing ones: an effective date earlier
// than prior entries is accepted, and prior entries stay as they are.
// Returns sql.ErrNoRows (wrapped) if the barang does not exist.
func AddPrice(ctx context.Context, db *sql.DB, barangID, harga, tanggalBerlaku string) (*model.Price, error) {
	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM barang WHERE id = ?`, barangID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking barang: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO prices (barang_id, harga, tanggal_berlaku) VALUES (?, ?, ?)`,
		barangID, harga, tanggalBerlaku,
	)
	if err != nil {
		return nil, fmt.Errorf("adding price: %w", err)
	}

	id, _ := result.LastInsertId()
	return &model.Price{
		ID:             id,
		BarangID:       barangID,
		Harga:          harga,
		TanggalBerlaku: tanggalBerlaku,
	}, nil
}

// ListPrices returns a barang's price history ordered by effective date,
// then insertion order.
func ListPrices(ctx context.Context, db *sql.DB, barangID string) ([]model.Price, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, barang_id, harga, tanggal_berlaku
		 FROM prices WHERE barang_id = ?
		 ORDER BY tanggal_berlaku, id`, barangID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	defer rows.Close()

	var prices []model.Price
	for rows.Next() {
		var p model.Price
		if err := rows.Scan(&p.ID, &p.BarangID, &p.Harga, &p.TanggalBerlaku); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// PriceByDate returns every price entry whose effective date equals the
// given calendar date exactly. This is not "most recent price at or before
// the date": an entry dated one day earlier is excluded even if it was the
// active price, and a barang with no entry on that date is absent from the
// result. Entries sharing a barang and date are all returned, in insertion
// order.
func PriceByDate(ctx context.Context, db *sql.DB, date string) ([]model.PriceSnapshot, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT b.nama, p.harga
		 FROM barang b
		 JOIN prices p ON p.barang_id = b.id
		 WHERE p.tanggal_berlaku = ?
		 ORDER BY p.id`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("querying price by date: %w", err)
	}
	defer rows.Close()

	var snapshots []model.PriceSnapshot
	for rows.Next() {
		var s model.PriceSnapshot
		if err := rows.Scan(&s.Nama, &s.Harga); err != nil {
			return nil, fmt.Errorf("scanning price snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
