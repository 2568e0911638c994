package model

import "time"

// Barang represents a single inventory item. The kode is generated once at
// creation and never changes; stok mirrors the latest stock log entry's
// stok_after, except when overwritten directly through a partial update.
type Barang struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Kode      string    `json:"kode"`
	Stok      int       `json:"stok"`
	HargaText string    `json:"harga_text,omitempty"`
	FotoMime  string    `json:"foto_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockLog is one append-only entry in a barang's stock ledger. Delta is
// signed; StokAfter is the resulting stock level immediately after the delta
// was applied, so entries ordered by (created_at, id) form a prefix-sum
// sequence.
type StockLog struct {
	ID        int64     `json:"id"`
	BarangID  string    `json:"barang_id"`
	Delta     int       `json:"delta"`
	StokAfter int       `json:"stok_after"`
	CreatedAt time.Time `json:"created_at"`
}

// Price is one append-only entry in a barang's price history. Harga is kept
// as decimal text end to end, never a float. TanggalBerlaku is a bare
// calendar date (YYYY-MM-DD) with no time component.
type Price struct {
	ID             int64  `json:"id"`
	BarangID       string `json:"barang_id"`
	Harga          string `json:"harga"`
	TanggalBerlaku string `json:"tanggal_berlaku"`
}

// StockSnapshot is one row of the stock-as-of-date report. Grouping is by
// nama, so two barang sharing a name merge into one row.
type StockSnapshot struct {
	Nama      string `json:"nama"`
	TotalStok int    `json:"total_stok"`
}

// PriceSnapshot is one row of the price-on-date report: an entry whose
// tanggal_berlaku equals the queried date exactly.
type PriceSnapshot struct {
	Nama  string `json:"nama"`
	Harga string `json:"harga"`
}
