package erecord

import (
	"fmt"
)

type (
	ErrUnknownRecordType struct {
		Type   string
		Offset int64
	}
	// ErrDanglingEffectData means an EFIT field came before any EFID.
	ErrDanglingEffectData struct {
		FormID uint32
	}
)

func (r ErrUnknownRecordType) Error() string {
	return fmt.Sprintf(`unknown record type "%s" at offset %d`, r.Type, r.Offset)
}

func (r ErrDanglingEffectData) Error() string {
	return fmt.Sprintf("record %08X: effect data without a preceding effect id", r.FormID)
}
