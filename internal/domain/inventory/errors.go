package inventory

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidItem     = errors.New("inventory: item name must be a non-empty string")
	ErrInvalidQuantity = errors.New("inventory: quantity must be a non-negative integer")
	ErrNotFound        = errors.New("inventory: item not found")
	ErrFileNotFound    = errors.New("inventory: data file not found")
	ErrMalformedFile   = errors.New("inventory: invalid JSON format")
	ErrPersist         = errors.New("inventory: data file I/O failed")
)

// Error kinds, used as failure reasons in logs and metrics.
const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindFileNotFound = "file_not_found"
	KindParse        = "parse"
	KindIO           = "io"
	KindUnknown      = "unknown"
)

// Error records which operation failed and on what. Err carries one of the
// sentinel errors above, possibly joined with the underlying cause.
type Error struct {
	Op   string
	Item string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Item != "" {
		msg += " " + strconv.Quote(e.Item)
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Kind classifies err into the inventory error taxonomy.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidItem), errors.Is(err, ErrInvalidQuantity):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrFileNotFound):
		return KindFileNotFound
	case errors.Is(err, ErrMalformedFile):
		return KindParse
	case errors.Is(err, ErrPersist):
		return KindIO
	default:
		return KindUnknown
	}
}

// Recoverable reports whether the store was left usable and unchanged by err.
// Every kind in the taxonomy is; unknown errors are not.
func Recoverable(err error) bool {
	k := Kind(err)
	return k != "" && k != KindUnknown
}
