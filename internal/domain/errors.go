package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks a row whose date or numeric fields cannot be parsed.
	ErrFormat = errors.New("format error")

	// ErrInvalidArgument marks an hour range outside 00..23, an inverted range,
	// or a range that does not fit the readings it is applied to.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyRange is returned when a mean is requested over zero hours.
	ErrEmptyRange = errors.New("empty hour range")
)

// FormatError describes the first field of a row that failed to parse.
type FormatError struct {
	Field string // e.g. "date", "wind[3]", "precip[23]"
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("format error: %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("format error: %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets callers match any FormatError with errors.Is(err, ErrFormat).
func (e *FormatError) Is(target error) bool { return target == ErrFormat }
