package store

import (
	"errors"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors for constraint violations callers are expected to handle.
var (
	// ErrKodeTaken means the generated barang kode lost a race against a
	// concurrent insert. Callers regenerate the kode and retry.
	ErrKodeTaken = errors.New("kode already exists")

	// ErrUsernameTaken means the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
)

// timeFormat is how ledger timestamps are written. It matches SQLite's
// CURRENT_TIMESTAMP format so DATE() and ordering work uniformly.
const timeFormat = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(timeFormat)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
