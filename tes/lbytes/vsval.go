package lbytes

import (
	"fmt"
)

// ReadVsval reads a variable-size value. The low two bits of the first byte
// give the width:
//
//	00 -> 1 byte, 01 -> 2 bytes, 10 -> 3 bytes, 11 -> invalid
//
// and the little-endian word shifted right by two is the value.
func (b *Reader) ReadVsval() (uint32, error) {
	offset := b.Offset()
	b1, err := b.ReadByte()
	if err != nil {
		return 0, b.malformed(KindVsval, offset, err)
	}
	width := int(b1&0b11) + 1
	if width == 4 {
		return 0, ErrMalformedPrimitive{
			Kind:   KindVsval,
			Offset: offset,
			Reason: fmt.Sprintf("unsupported vsval width selector in 0x%02x", b1),
		}
	}
	value := uint32(b1)
	for i := 1; i < width; i++ {
		bn, err := b.ReadByte()
		if err != nil {
			return 0, b.malformed(KindVsval, offset, err)
		}
		value |= uint32(bn) << (8 * i)
	}
	return value >> 2, nil
}

// EncodeVsval picks the narrowest width that holds value.
func EncodeVsval(value uint32) ([]byte, error) {
	shifted := value << 2
	switch {
	case value < 1<<6:
		return []byte{byte(shifted)}, nil
	case value < 1<<14:
		shifted |= 0b01
		return []byte{byte(shifted), byte(shifted >> 8)}, nil
	case value <= MaxVsval:
		shifted |= 0b10
		return []byte{byte(shifted), byte(shifted >> 8), byte(shifted >> 16)}, nil
	}
	return nil, ErrMalformedPrimitive{
		Kind:   KindVsval,
		Reason: fmt.Sprintf("value 0x%x does not fit in a vsval (max 0x%x)", value, MaxVsval),
	}
}
