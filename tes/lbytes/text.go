package lbytes

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// DecodeText turns raw game text into a Go string. The game writes UTF-8 for
// some languages and Windows-1252 for the rest; anything that is not valid
// UTF-8 is treated as the latter.
func DecodeText(bs []byte) string {
	if utf8.Valid(bs) {
		return string(bs)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(bs)
	if err != nil {
		// every byte has a Windows-1252 mapping
		return string(bs)
	}
	return string(decoded)
}

// EncodeText is the inverse of DecodeText for strings that fit in
// Windows-1252; others are written as UTF-8.
func EncodeText(s string) []byte {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	if utf8.Valid(encoded) {
		return []byte(s)
	}
	return encoded
}

// ReadWString reads a uint16-length-prefixed string.
func (b *Reader) ReadWString() (string, error) {
	offset := b.Offset()
	size, err := b.ReadUint16()
	if err != nil {
		return "", ErrMalformedPrimitive{Kind: KindWString, Offset: offset, Reason: err.Error()}
	}
	bs, err := b.ReadBytes(int(size))
	if err != nil {
		err := errors.Wrapf(err, "ReadWString error reading %d bytes", size)
		return "", err
	}
	return DecodeText(bs), nil
}

// ReadZString reads up to and including the next NUL byte.
func (b *Reader) ReadZString() (string, error) {
	offset := b.Offset()
	bs := make([]byte, 0, 32)
	for {
		c, err := b.ReadByte()
		if err != nil {
			return "", b.malformed(KindZString, offset, err)
		}
		if c == 0 {
			break
		}
		bs = append(bs, c)
	}
	return DecodeText(bs), nil
}

// ZString decodes a field payload holding a single NUL-terminated string.
// A missing terminator is tolerated.
func ZString(bs []byte) string {
	for i, c := range bs {
		if c == 0 {
			return DecodeText(bs[:i])
		}
	}
	return DecodeText(bs)
}

// ReadLString reads a uint32 string-table id and resolves it. Ids unknown to
// the lookup (or a nil lookup) resolve to UnknownString.
func (b *Reader) ReadLString(lookup StringLookup) (uint32, string, error) {
	id, err := ReadScalar[uint32](b, KindLString)
	if err != nil {
		return 0, "", err
	}
	return id, ResolveLString(lookup, id), nil
}

func ResolveLString(lookup StringLookup, id uint32) string {
	if lookup == nil {
		return UnknownString
	}
	s, ok := lookup.Get(id)
	if !ok {
		return UnknownString
	}
	return s
}
