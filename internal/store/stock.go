package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fadhilmr/gudang/internal/model"
)

// RecordDelta appends a stock log entry and updates the barang's stock
// counter in a single transaction. Delta may be negative and the resulting
// level is not floored; stock policy belongs to callers. Returns
// sql.ErrNoRows (wrapped) if the barang does not exist.
func RecordDelta(ctx context.Context, db *sql.DB, barangID string, delta int, now time.Time) (*model.StockLog, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var stok int
	err = tx.QueryRowContext(ctx,
		`SELECT stok FROM barang WHERE id = ?`, barangID,
	).Scan(&stok)
	if err != nil {
		return nil, fmt.Errorf("reading current stok: %w", err)
	}

	stokAfter := stok + delta

	_, err = tx.ExecContext(ctx,
		`UPDATE barang SET stok = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		stokAfter, barangID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating stok: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO stock_logs (barang_id, delta, stok_after, created_at)
		 VALUES (?, ?, ?, ?)`,
		barangID, delta, stokAfter, formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("appending stock log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing stock delta: %w", err)
	}

	id, _ := result.LastInsertId()
	return &model.StockLog{
		ID:        id,
		BarangID:  barangID,
		Delta:     delta,
		StokAfter: stokAfter,
		CreatedAt: now,
	}, nil
}

// ListStockLogs returns a barang's ledger entries in commit order. The id
// column breaks ties between entries sharing a created_at second.
func ListStockLogs(ctx context.Context, db *sql.DB, barangID string) ([]model.StockLog, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, barang_id, delta, stok_after, created_at
		 FROM stock_logs WHERE barang_id = ?
		 ORDER BY created_at, id`, barangID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stock logs: %w", err)
	}
	defer rows.Close()

	var logs []model.StockLog
	for rows.Next() {
		var l model.StockLog
		if err := rows.Scan(&l.ID, &l.BarangID, &l.Delta, &l.StokAfter, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning stock log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// StockByDate sums each barang's ledger deltas up to and including the given
// calendar date (YYYY-MM-DD). Entries created after the date are excluded;
// barang with no entries at or before it report 0. Rows are grouped by nama,
// so two barang sharing a name merge into one total.
func StockByDate(ctx context.Context, db *sql.DB, date string) ([]model.StockSnapshot, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT b.nama, COALESCE(SUM(s.delta), 0) AS total_stok
		 FROM barang b
		 LEFT JOIN stock_logs s ON s.barang_id = b.id AND DATE(s.created_at) <= ?
		 GROUP BY b.nama
		 ORDER BY b.nama`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("querying stock by date: %w", err)
	}
	defer rows.Close()

	var snapshots []model.StockSnapshot
	for rows.Next() {
		var s model.StockSnapshot
		if err := rows.Scan(&s.Nama, &s.TotalStok); err != nil {
			return nil, fmt.Errorf("scanning stock snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
