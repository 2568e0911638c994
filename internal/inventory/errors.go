package inventory

import (
	"errors"
	"fmt"
)

// Stable error kinds surfaced to callers. Anything else coming out of the
// service is a storage fault.
var (
	// ErrNotFound means the referenced barang does not exist.
	ErrNotFound = errors.New("barang not found")

	// ErrKodeConflict means kode generation kept losing the uniqueness race
	// and the bounded retries were exhausted.
	ErrKodeConflict = errors.New("could not allocate a unique kode")
)

// ValidationError marks malformed input, rejected before any mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
