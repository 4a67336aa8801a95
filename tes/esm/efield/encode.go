package efield

import (
	"math"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// EncodeField writes f, prefixing an XXXX field when the payload does not
// fit a uint16 length.
func EncodeField(f Field) []byte {
	if len(f.Data) > math.MaxUint16 {
		return lbytes.Concat(
			[]byte(TypeSizeOverride),
			lbytes.EncodeUint16(4),
			lbytes.EncodeUint32(uint32(len(f.Data))),
			[]byte(f.Type),
			lbytes.EncodeUint16(0),
			f.Data,
		)
	}
	return lbytes.Concat(
		[]byte(f.Type),
		lbytes.EncodeUint16(uint16(len(f.Data))),
		f.Data,
	)
}

func EncodeFields(fields ...Field) []byte {
	parts := make([][]byte, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, EncodeField(f))
	}
	return lbytes.Concat(parts...)
}
