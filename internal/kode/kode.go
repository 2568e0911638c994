// Package kode generates barang codes of the form BRG/YY/MM/NNNNN, where
// YY/MM is the calendar month of creation and NNNNN is a five-digit counter
// scoped to that month.
package kode

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefix is the fixed leading segment of every generated code.
const Prefix = "BRG"

// maxCounter is the largest counter a five-digit suffix can hold.
const maxCounter = 99999

// Next returns the next free code for the month of now. The month partition
// uses now's location as-is, so with the default clock codes follow the
// server's local calendar.
//
// The counter is derived by reading the largest existing code in the
// partition rather than held in memory: counters are fixed-width and
// zero-padded, so the lexicographic max is also the numeric max. Next
// performs no locking; two concurrent calls can return the same code, and
// the UNIQUE constraint on barang.kode rejects the loser at insert time.
// Callers are expected to regenerate and retry on that conflict.
func Next(ctx context.Context, db *sql.DB, now time.Time) (string, error) {
	prefix := PartitionPrefix(now)

	var last sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT MAX(kode) FROM barang WHERE kode LIKE ? || '%'`, prefix,
	).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("reading last kode: %w", err)
	}

	counter := 1
	if last.Valid {
		suffix := last.String[strings.LastIndex(last.String, "/")+1:]
		n, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("parsing counter of kode %q: %w", last.String, err)
		}
		counter = n + 1
	}

	if counter > maxCounter {
		return "", fmt.Errorf("kode counter exhausted for partition %s", prefix)
	}

	return fmt.Sprintf("%s%05d", prefix, counter), nil
}

// PartitionPrefix returns the "BRG/YY/MM/" prefix for the month of t.
func PartitionPrefix(t time.Time) string {
	return fmt.Sprintf("%s/%02d/%02d/", Prefix, t.Year()%100, int(t.Month()))
}
