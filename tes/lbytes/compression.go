package lbytes

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const MaxInflateRatio = 64

// Inflate zlib-decompresses data and requires the output to be exactly size
// bytes long.
func Inflate(data []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		err := errors.Wrap(err, "Inflate error opening zlib stream")
		return nil, err
	}
	defer zr.Close()

	var buf bytes.Buffer
	// size is read from the data; zlib rarely expands past MaxInflateRatio
	buf.Grow(lo.Clamp(size, 0, MaxInflateRatio*len(data)))
	// one extra byte is enough to tell an oversized stream apart
	n, err := io.Copy(&buf, io.LimitReader(zr, int64(size)+1))
	if err != nil {
		err := errors.Wrap(err, "Inflate error")
		return nil, err
	}
	if int(n) != size {
		return nil, ErrDecompressionSizeMismatch{
			Expected: size,
			Actual:   int(n),
		}
	}
	return buf.Bytes(), nil
}

// Deflate is the inverse of Inflate; used to build fixtures.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	// writes to a bytes.Buffer do not fail
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}
