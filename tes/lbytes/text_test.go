package lbytes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[uint32]string

func (m mapLookup) Get(id uint32) (string, bool) {
	s, ok := m[id]
	return s, ok
}

func TestReadFiletime(t *testing.T) {
	expected := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	reader := NewBytesReader(EncodeUint64(130960800000000000))

	actual, err := reader.ReadFiletime()
	require.NoError(t, err)
	assert.True(t, expected.Equal(actual), "got %v", actual)
	assert.Equal(t, time.UTC, actual.Location())
}

func TestFiletime_SubSecond(t *testing.T) {
	expected := time.Date(2016, 1, 1, 0, 0, 0, 1234500, time.UTC)
	ticks := TimeToFiletime(expected)
	assert.Equal(t, uint64(130960800000012345), ticks)
	assert.True(t, expected.Equal(FiletimeToTime(ticks)))
}

func TestReadWString(t *testing.T) {
	reader := NewBytesReader(Concat(EncodeUint16(4), []byte("Hail"), EncodeUint16(3), []byte{'C', 0xE9, 'u'}))

	s, err := reader.ReadWString()
	require.NoError(t, err)
	assert.Equal(t, "Hail", s)

	// Windows-1252 0xE9 is "é"
	s, err = reader.ReadWString()
	require.NoError(t, err)
	assert.Equal(t, "Céu", s)
}

func TestReadZString(t *testing.T) {
	reader := NewBytesReader([]byte{'a', 'b', 0, 'c'})
	s, err := reader.ReadZString()
	require.NoError(t, err)
	assert.Equal(t, "ab", s)
	assert.Equal(t, int64(3), reader.Offset())

	_, err = reader.ReadZString()
	assert.Error(t, err)

	assert.Equal(t, "Blue Mountain Flower", ZString([]byte("Blue Mountain Flower\x00")))
	assert.Equal(t, "no terminator", ZString([]byte("no terminator")))
}

func TestReadLString(t *testing.T) {
	lookup := mapLookup{7: "Wheat"}
	reader := NewBytesReader(Concat(EncodeUint32(7), EncodeUint32(8), EncodeUint32(7)))

	id, s, err := reader.ReadLString(lookup)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), id)
	assert.Equal(t, "Wheat", s)

	_, s, err = reader.ReadLString(lookup)
	require.NoError(t, err)
	assert.Equal(t, UnknownString, s)

	_, s, err = reader.ReadLString(nil)
	require.NoError(t, err)
	assert.Equal(t, UnknownString, s)
}

func TestEncodeText_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "Lydia", "Céu", "Ænima"} {
		assert.Equal(t, s, DecodeText(EncodeText(s)))
	}
}
