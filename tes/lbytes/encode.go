package lbytes

import (
	"encoding/binary"
	"math"
	"time"
)

func EncodeUint8(value uint8) []byte {
	return []byte{value}
}

func EncodeUint16(value uint16) []byte {
	bs := make([]byte, 2)
	binary.LittleEndian.PutUint16(bs, value)
	return bs
}

func EncodeUint32(value uint32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, value)
	return bs
}

func EncodeValueInt(value int32) []byte {
	return EncodeUint32(uint32(value))
}

func EncodeUint64(value uint64) []byte {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, value)
	return bs
}

func EncodeFloat32(value float32) []byte {
	return EncodeUint32(math.Float32bits(value))
}

func EncodeWString(value string) []byte {
	text := EncodeText(value)
	bs := EncodeUint16(uint16(len(text)))
	bs = append(bs, text...)
	return bs
}

func EncodeZString(value string) []byte {
	bs := EncodeText(value)
	bs = append(bs, '\u0000')
	return bs
}

func EncodeFiletime(t time.Time) []byte {
	return EncodeUint64(TimeToFiletime(t))
}

// MustEncodeVsval panics on values EncodeVsval rejects; fixtures only.
func MustEncodeVsval(value uint32) []byte {
	bs, err := EncodeVsval(value)
	if err != nil {
		panic(err)
	}
	return bs
}

// Concat joins encoded pieces.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, part := range parts {
		size += len(part)
	}
	bs := make([]byte, 0, size)
	for _, part := range parts {
		bs = append(bs, part...)
	}
	return bs
}
