package lbytes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVsval_ReferenceVector(t *testing.T) {
	reader := NewBytesReader([]byte{0xE1, 0x13})
	value, err := reader.ReadVsval()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x4F8), value)
	assert.Equal(t, int64(2), reader.Offset())
}

func TestVsval_RoundTrip(t *testing.T) {
	expectedWidths := map[uint32]int{
		0:        1,
		1:        1,
		0x3F:     1,
		0x40:     2,
		0x3FFF:   2,
		0x4000:   3,
		MaxVsval: 3,
	}
	for value, width := range expectedWidths {
		bs, err := EncodeVsval(value)
		require.NoError(t, err)
		assert.Len(t, bs, width, "value 0x%x", value)

		reader := NewBytesReader(bs)
		decoded, err := reader.ReadVsval()
		require.NoError(t, err)
		assert.Equal(t, value, decoded)
		assert.Equal(t, int64(0), reader.Remaining())
	}
}

func TestVsval_OutOfRange(t *testing.T) {
	_, err := EncodeVsval(0x3FFFFFFF)
	var malformed ErrMalformedPrimitive
	assert.True(t, errors.As(err, &malformed))
}

func TestReadVsval_InvalidWidth(t *testing.T) {
	reader := NewBytesReader([]byte{0x03, 0, 0, 0})
	_, err := reader.ReadVsval()
	var malformed ErrMalformedPrimitive
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, KindVsval, malformed.Kind)
}

func TestReadVsval_Truncated(t *testing.T) {
	reader := NewBytesReader([]byte{0x02, 0x01})
	_, err := reader.ReadVsval()
	var malformed ErrMalformedPrimitive
	assert.True(t, errors.As(err, &malformed))
}
