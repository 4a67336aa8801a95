package refid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

func TestDecode(t *testing.T) {
	ref := Decode([3]byte{0x41, 0xC0, 0xF2})
	assert.Equal(t, NamespaceDefault, ref.Namespace)
	assert.Equal(t, uint32(0x01C0F2), ref.Value)
	assert.Equal(t, "D", ref.Tag())
	assert.Equal(t, "D:0001C0F2", ref.String())
}

func TestDecode_Tags(t *testing.T) {
	expected := map[byte]string{
		0x00: "F",
		0x40: "D",
		0x80: "C",
		0xC0: "U",
	}
	for first, tag := range expected {
		assert.Equal(t, tag, Decode([3]byte{first, 0, 1}).Tag())
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	refs := []RefID{
		{Namespace: NamespaceFormIndex, Value: 0},
		{Namespace: NamespaceDefault, Value: 0x14},
		{Namespace: NamespaceCreated, Value: MaxValue},
		{Namespace: NamespaceUnknown, Value: 0x123456 & MaxValue},
	}
	for _, ref := range refs {
		bs := ref.Encode()
		require.Len(t, bs, 3)
		assert.Equal(t, ref, Decode([3]byte{bs[0], bs[1], bs[2]}))
	}
}

func TestRead(t *testing.T) {
	reader := lbytes.NewBytesReader([]byte{0x80, 0x00, 0x2A, 0x01})
	ref, err := Read(reader)
	require.NoError(t, err)
	assert.Equal(t, RefID{Namespace: NamespaceCreated, Value: 0x2A}, ref)
	assert.Equal(t, int64(1), reader.Remaining())

	_, err = Read(lbytes.NewBytesReader([]byte{1, 2}))
	assert.Error(t, err)
}

func TestMarshalText(t *testing.T) {
	text, err := RefID{Namespace: NamespaceFormIndex, Value: 3}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "F:00000003", string(text))
}
