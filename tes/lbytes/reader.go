package lbytes

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Scalar is any fixed-width value encoding/binary can decode.
type Scalar interface {
	constraints.Integer | constraints.Float
}

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
		size:   int64(len(bs)),
	}
}

// ReadScalar reads one little-endian T. T must be a sized type; int and uint
// are rejected by encoding/binary.
func ReadScalar[T Scalar](r *Reader, kind Kind) (T, error) {
	var value T
	offset := r.Offset()
	if err := binary.Read(&r.Reader, binary.LittleEndian, &value); err != nil {
		return 0, r.malformed(kind, offset, err)
	}
	return value, nil
}

func (b *Reader) malformed(kind Kind, offset int64, err error) error {
	reason := err.Error()
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		reason = fmt.Sprintf("unexpected end of buffer (size %d)", b.size)
	}
	return ErrMalformedPrimitive{
		Kind:   kind,
		Offset: offset,
		Reason: reason,
	}
}

// Offset is the absolute read position.
func (b *Reader) Offset() int64 {
	return b.size - int64(b.Len())
}

func (b *Reader) Size() int64 {
	return b.size
}

func (b *Reader) Remaining() int64 {
	return int64(b.Len())
}

// SeekTo moves to an absolute offset inside the buffer.
func (b *Reader) SeekTo(offset int64) error {
	if offset < 0 || offset > b.size {
		return ErrMalformedPrimitive{
			Kind:   KindBytes,
			Offset: offset,
			Reason: fmt.Sprintf("seek outside of buffer (size %d)", b.size),
		}
	}
	_, err := b.Seek(offset, io.SeekStart)
	return err
}

// Skip advances by n bytes, failing when fewer than n remain.
func (b *Reader) Skip(n int64) error {
	if n < 0 || n > b.Remaining() {
		return ErrMalformedPrimitive{
			Kind:   KindBytes,
			Offset: b.Offset(),
			Reason: fmt.Sprintf("cannot skip %d bytes with %d remaining", n, b.Remaining()),
		}
	}
	_, err := b.Seek(n, io.SeekCurrent)
	return err
}

// ExpectEnd checks that the reader was consumed exactly.
func (b *Reader) ExpectEnd(caller string) error {
	if b.Remaining() != 0 {
		return ErrTrailingDataMismatch{
			Caller:   caller,
			Expected: b.size,
			Actual:   b.Offset(),
		}
	}
	return nil
}

func (b *Reader) ReadBool() (bool, error) {
	value, err := ReadScalar[uint8](b, KindBool)
	if err != nil {
		return false, err
	}
	return value != 0, nil
}

func (b *Reader) ReadUint8() (uint8, error) {
	return ReadScalar[uint8](b, KindUint8)
}

func (b *Reader) ReadInt8() (int8, error) {
	return ReadScalar[int8](b, KindInt8)
}

func (b *Reader) ReadUint16() (uint16, error) {
	return ReadScalar[uint16](b, KindUint16)
}

func (b *Reader) ReadInt16() (int16, error) {
	return ReadScalar[int16](b, KindInt16)
}

func (b *Reader) ReadUint32() (uint32, error) {
	return ReadScalar[uint32](b, KindUint32)
}

func (b *Reader) ReadInt() (int32, error) {
	return ReadScalar[int32](b, KindInt32)
}

func (b *Reader) ReadUint64() (uint64, error) {
	return ReadScalar[uint64](b, KindUint64)
}

func (b *Reader) ReadFloat32() (float32, error) {
	return ReadScalar[float32](b, KindFloat32)
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	// return early to avoid EOF error when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return []byte{}, nil
	}
	offset := b.Offset()
	if n < 0 {
		return nil, ErrMalformedPrimitive{
			Kind:   KindBytes,
			Offset: offset,
			Reason: fmt.Sprintf("negative length %d", n),
		}
	}
	// lengths come from the data itself; check them before allocating
	if int64(n) > b.Remaining() {
		return nil, ErrMalformedPrimitive{
			Kind:   KindBytes,
			Offset: offset,
			Reason: fmt.Sprintf("length %d exceeds the %d remaining bytes", n, b.Remaining()),
		}
	}
	bs := make([]byte, n)
	if _, err := io.ReadFull(&b.Reader, bs); err != nil {
		return nil, b.malformed(KindBytes, offset, err)
	}
	return bs, nil
}

// Capacity bounds a preallocation for count entries of at least minSize
// bytes each by what is left to read.
func (b *Reader) Capacity(count uint32, minSize int) int {
	limit := b.Remaining() / int64(minSize)
	if int64(count) < limit {
		return int(count)
	}
	return int(limit)
}

func (b *Reader) ReadString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(bs), nil
}

// ReadTag reads a 4-character type tag such as "GRUP" or "EDID".
func (b *Reader) ReadTag() (string, error) {
	return b.ReadString(4)
}

// Sub consumes the next n bytes and returns a reader confined to them.
func (b *Reader) Sub(n int) (*Reader, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return NewBytesReader(bs), nil
}
