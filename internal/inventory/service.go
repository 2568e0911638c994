// Package inventory orchestrates barang lifecycle operations over the stock
// and price ledgers and the kode sequencer.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fadhilmr/gudang/internal/imaging"
	"github.com/fadhilmr/gudang/internal/kode"
	"github.com/fadhilmr/gudang/internal/model"
	"github.com/fadhilmr/gudang/internal/store"
)

// maxKodeAttempts bounds the regenerate-and-retry loop when concurrent
// creates collide on a generated kode.
const maxKodeAttempts = 3

// dateFormat is the calendar date form accepted by the snapshot queries and
// price effective dates.
const dateFormat = "2006-01-02"

// Service performs barang operations against the datastore. The clock is
// injectable so ledger timestamps and kode partitions are testable.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a Service using the wall clock.
func New(db *sql.DB) *Service {
	return NewWithClock(db, time.Now)
}

// NewWithClock creates a Service with an explicit clock.
func NewWithClock(db *sql.DB, now func() time.Time) *Service {
	return &Service{db: db, now: now}
}

// CreateParams are the inputs for CreateBarang. HargaText is a free-text
// display label, not the authoritative price; the price ledger holds those.
type CreateParams struct {
	Nama      string
	Stok      int
	HargaText string
}

// CreateBarang allocates a kode, then inserts the barang row and its opening
// stock ledger entry as one transaction. If the kode loses a uniqueness race
// against a concurrent create, the whole sequence is retried from a fresh
// read of the partition max; ErrKodeConflict is returned once retries run
// out.
func (s *Service) CreateBarang(ctx context.Context, p CreateParams) (*model.Barang, error) {
	if p.Nama == "" {
		return nil, validationf("nama required")
	}

	for attempt := 0; attempt < maxKodeAttempts; attempt++ {
		k, err := kode.Next(ctx, s.db, s.now())
		if err != nil {
			return nil, fmt.Errorf("generating kode: %w", err)
		}

		b, err := store.CreateBarang(ctx, s.db, uuid.NewString(), p.Nama, k, p.Stok, p.HargaText, s.now())
		if errors.Is(err, store.ErrKodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	return nil, ErrKodeConflict
}

// UpdatePatch holds the fields of a partial barang update. Nil fields are
// left untouched.
type UpdatePatch struct {
	Nama      *string
	Stok      *int
	HargaText *string
}

// UpdateBarang applies a partial update. A non-nil Stok overwrites the stock
// counter directly without a ledger entry; this is a distinct code path from
// AdjustStock, kept deliberately so direct edits stay visible and removable.
func (s *Service) UpdateBarang(ctx context.Context, id string, patch UpdatePatch) (*model.Barang, error) {
	if patch.Nama != nil && *patch.Nama == "" {
		return nil, validationf("nama must not be empty")
	}

	b, err := store.GetBarang(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	err = store.UpdateBarang(ctx, s.db, id, store.BarangPatch{
		Nama:      patch.Nama,
		Stok:      patch.Stok,
		HargaText: patch.HargaText,
	})
	if err != nil {
		return nil, err
	}

	return store.GetBarang(ctx, s.db, id)
}

// DeleteBarang removes a barang; its stock logs and prices cascade away.
func (s *Service) DeleteBarang(ctx context.Context, id string) error {
	b, err := store.GetBarang(ctx, s.db, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	return store.DeleteBarang(ctx, s.db, id)
}

// GetBarang returns a barang by ID.
func (s *Service) GetBarang(ctx context.Context, id string) (*model.Barang, error) {
	b, err := store.GetBarang(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListBarang returns all barang.
func (s *Service) ListBarang(ctx context.Context) ([]model.Barang, error) {
	return store.ListBarang(ctx, s.db)
}

// AdjustStock appends a delta to the barang's stock ledger and returns the
// new entry. Negative resulting stock is permitted.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*model.StockLog, error) {
	entry, err := store.RecordDelta(ctx, s.db, id, delta, s.now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

// StockLogs returns a barang's full ledger in commit order.
func (s *Service) StockLogs(ctx context.Context, id string) ([]model.StockLog, error) {
	if _, err := s.GetBarang(ctx, id); err != nil {
		return nil, err
	}
	return store.ListStockLogs(ctx, s.db, id)
}

// AddPrice appends an effective-dated price entry. Harga must be decimal
// text; it is stored verbatim, never converted to a float.
func (s *Service) AddPrice(ctx context.Context, id, harga, tanggalBerlaku string) (*model.Price, error) {
	if harga == "" {
		return nil, validationf("harga required")
	}
	if _, err := decimal.NewFromString(harga); err != nil {
		return nil, validationf("harga must be a decimal number, got %q", harga)
	}
	if err := checkDate(tanggalBerlaku); err != nil {
		return nil, err
	}

	p, err := store.AddPrice(ctx, s.db, id, harga, tanggalBerlaku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Prices returns a barang's full price history.
func (s *Service) Prices(ctx context.Context, id string) ([]model.Price, error) {
	if _, err := s.GetBarang(ctx, id); err != nil {
		return nil, err
	}
	return store.ListPrices(ctx, s.db, id)
}

// StockSnapshot reports every barang's total stock as of the given date.
func (s *Service) StockSnapshot(ctx context.Context, date string) ([]model.StockSnapshot, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	return store.StockByDate(ctx, s.db, date)
}

// PriceSnapshot reports the price entries effective exactly on the given
// date. See store.PriceByDate for the exact-match semantics.
func (s *Service) PriceSnapshot(ctx context.Context, date string) ([]model.PriceSnapshot, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	return store.PriceByDate(ctx, s.db, date)
}

// SetFoto processes and stores a barang's photo.
func (s *Service) SetFoto(ctx context.Context, id string, r io.Reader) error {
	if _, err := s.GetBarang(ctx, id); err != nil {
		return err
	}

	result, err := imaging.Process(r)
	if err != nil {
		return &ValidationError{Msg: err.Error()}
	}

	return store.SetBarangFoto(ctx, s.db, id, result.Data, result.MIME)
}

// GetFoto returns a barang's photo data and MIME type. ErrNotFound covers
// both an unknown barang and a barang without a photo.
func (s *Service) GetFoto(ctx context.Context, id string) ([]byte, string, error) {
	data, mime, err := store.GetBarangFoto(ctx, s.db, id)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", ErrNotFound
	}
	return data, mime, nil
}

func checkDate(date string) error {
	if _, err := time.Parse(dateFormat, date); err != nil {
		return validationf("invalid date %q, want YYYY-MM-DD", date)
	}
	return nil
}
