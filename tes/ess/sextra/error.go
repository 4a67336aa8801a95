package sextra

import (
	"fmt"
)

type (
	// ErrUnknownExtraDataType is fatal: entries are not length-prefixed, so
	// an unknown one cannot be skipped.
	ErrUnknownExtraDataType struct {
		Type   uint8
		Offset int64
	}
	// ErrUnsupportedExtraDataType is returned for known entry types whose
	// layout is not decoded.
	ErrUnsupportedExtraDataType struct {
		Type   DataType
		Offset int64
		Reason string
	}
)

func (r ErrUnknownExtraDataType) Error() string {
	return fmt.Sprintf("unknown extra data type %d at offset %d", r.Type, r.Offset)
}

func (r ErrUnsupportedExtraDataType) Error() string {
	return fmt.Sprintf(
		`unsupported extra data type %d "%s" at offset %d: %s`,
		uint8(r.Type), r.Type, r.Offset, r.Reason,
	)
}
