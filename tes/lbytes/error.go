package lbytes

import (
	"fmt"
)

type (
	// ErrMalformedPrimitive is returned when a scalar could not be read: the
	// buffer ended early, or an enum selector had no meaning.
	ErrMalformedPrimitive struct {
		Kind   Kind
		Offset int64
		Reason string
	}
	ErrDecompressionSizeMismatch struct {
		Expected int
		Actual   int
	}
	// ErrTrailingDataMismatch means a length-declared structure was under- or
	// over-consumed.
	ErrTrailingDataMismatch struct {
		Caller   string
		Expected int64
		Actual   int64
	}
)

func (r ErrMalformedPrimitive) Error() string {
	return fmt.Sprintf(`malformed primitive "%s" at offset %d: %s`, r.Kind, r.Offset, r.Reason)
}

func (r ErrDecompressionSizeMismatch) Error() string {
	return fmt.Sprintf(
		"decompression size mismatch: expected %d bytes; got %d",
		r.Expected, r.Actual,
	)
}

func (r ErrTrailingDataMismatch) Error() string {
	return fmt.Sprintf(
		"%s: trailing data mismatch: expected position %d; got %d",
		r.Caller, r.Expected, r.Actual,
	)
}
