package egroup

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

func collect(t *testing.T, walker *Walker) []Item {
	t.Helper()
	items := make([]Item, 0)
	for {
		item, err := walker.Next()
		if errors.Is(err, io.EOF) {
			return items
		}
		require.NoError(t, err)
		items = append(items, item)
	}
}

func TestWalker_SkipsUninterestingGroupExactly(t *testing.T) {
	npc := erecord.EncodeRecord(erecord.Header{Type: "NPC_", FormID: 7}, erecord.ZStringField("EDID", "Lydia"))
	skipped := EncodeGroup(Group{Label: "NPC_"}, npc, npc)
	trailer := []byte("XXXX")
	reader := lbytes.NewBytesReader(lbytes.Concat(skipped, trailer))

	walker := NewWalker(reader, DefaultOptions())
	item, err := walker.Next()
	require.NoError(t, err)
	require.NotNil(t, item.Group)
	assert.False(t, item.Descended)
	assert.Equal(t, "NPC_", item.Group.Label)
	assert.Equal(t, int64(0), item.Group.Offset)
	assert.Equal(t, int64(len(skipped)), item.Group.End())
	assert.Equal(t, item.Group.End(), reader.Offset())
}

func TestWalker_DescendsIntoInterestingGroups(t *testing.T) {
	ingredient := erecord.EncodeRecord(
		erecord.Header{Type: erecord.TypeIngredient, FormID: 0x4B0BA},
		erecord.ZStringField("EDID", "Wheat"),
		erecord.ValueWeightField(5, 0.1),
	)
	unknownInside := erecord.EncodeRecord(erecord.Header{Type: "LVLI", FormID: 1})
	misc := erecord.EncodeRecord(erecord.Header{Type: erecord.TypeMisc, FormID: 0xF})
	bs := lbytes.Concat(
		erecord.EncodeRecord(erecord.Header{Type: erecord.TypePluginHeader}),
		EncodeGroup(Group{Label: erecord.TypeIngredient}, ingredient, unknownInside),
		EncodeGroup(Group{Label: "NPC_"}, unknownInside),
		EncodeGroup(Group{Label: erecord.TypeMisc, Stamp: 3, Version: 44}, misc),
	)

	walker := NewWalker(lbytes.NewBytesReader(bs), DefaultOptions())
	items := collect(t, walker)

	require.Len(t, items, 6)
	assert.IsType(t, &erecord.PluginHeader{}, items[0].Record)
	assert.True(t, items[1].Descended)
	assert.Equal(t, erecord.TypeIngredient, items[1].Group.Label)
	assert.Equal(t, 0, items[1].Depth)
	assert.Equal(t, uint32(0x4B0BA), items[2].Record.FormID())
	assert.Equal(t, 1, items[2].Depth)
	assert.False(t, items[3].Descended)
	assert.Equal(t, uint16(44), items[4].Group.Version)
	assert.Equal(t, uint16(3), items[4].Group.Stamp)
	assert.Equal(t, uint32(0xF), items[5].Record.FormID())
	assert.Equal(t, 1, walker.Skipped())
}

func TestWalker_TopLevelPolicy(t *testing.T) {
	bs := lbytes.Concat(
		erecord.EncodeRecord(erecord.Header{Type: "NPC_", FormID: 7}),
		erecord.EncodeRecord(erecord.Header{Type: erecord.TypeKey, FormID: 8}),
	)

	t.Run("fail", func(t *testing.T) {
		walker := NewWalker(lbytes.NewBytesReader(bs), DefaultOptions())
		_, err := walker.Next()
		var unknown erecord.ErrUnknownRecordType
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "NPC_", unknown.Type)
	})
	t.Run("skip", func(t *testing.T) {
		options := DefaultOptions()
		options.TopLevel = PolicySkip
		items := collect(t, NewWalker(lbytes.NewBytesReader(bs), options))
		require.Len(t, items, 1)
		assert.Equal(t, uint32(8), items[0].Record.FormID())
	})
}

func TestWalker_NestedPolicyFail(t *testing.T) {
	bs := EncodeGroup(
		Group{Label: erecord.TypeKey},
		erecord.EncodeRecord(erecord.Header{Type: "LVLI"}),
	)
	options := DefaultOptions()
	options.Nested = PolicyFail

	walker := NewWalker(lbytes.NewBytesReader(bs), options)
	_, err := walker.Next()
	require.NoError(t, err)
	_, err = walker.Next()
	var unknown erecord.ErrUnknownRecordType
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, int64(HeaderSize), unknown.Offset)
}

func TestWalker_GroupOverrunsData(t *testing.T) {
	bs := EncodeGroup(Group{Label: "NPC_"}, make([]byte, 10))
	bs = bs[:len(bs)-4]

	walker := NewWalker(lbytes.NewBytesReader(bs), DefaultOptions())
	_, err := walker.Next()
	var mismatch lbytes.ErrTrailingDataMismatch
	assert.True(t, errors.As(err, &mismatch))
}

func TestWalker_RecordOverrunsGroup(t *testing.T) {
	key := erecord.EncodeRecord(erecord.Header{Type: erecord.TypeKey}, erecord.ValueWeightField(1, 1))
	group := EncodeGroup(Group{Label: erecord.TypeKey}, key)
	// shrink the declared group size so the record ends past it
	copy(group[4:8], lbytes.EncodeUint32(uint32(len(group)-4)))
	bs := lbytes.Concat(group)

	walker := NewWalker(lbytes.NewBytesReader(bs), DefaultOptions())
	_, err := walker.Next()
	require.NoError(t, err)
	_, err = walker.Next()
	require.NoError(t, err)
	_, err = walker.Next()
	var mismatch lbytes.ErrTrailingDataMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, int64(len(group)-4), mismatch.Expected)
}

func TestParsePolicy(t *testing.T) {
	policy, ok := ParsePolicy("skip")
	assert.True(t, ok)
	assert.Equal(t, PolicySkip, policy)
	assert.Equal(t, "fail", PolicyFail.String())
	_, ok = ParsePolicy("ignore")
	assert.False(t, ok)
}
