package schange

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sextra"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

var (
	player      = refid.RefID{Namespace: refid.NamespaceFormIndex, Value: PlayerValue}
	wheat       = refid.RefID{Namespace: refid.NamespaceDefault, Value: 0x4B0BA}
	blueFlower  = refid.RefID{Namespace: refid.NamespaceDefault, Value: 0x77E1C}
	ironSword   = refid.RefID{Namespace: refid.NamespaceDefault, Value: 0x12EB7}
	chestOwner  = refid.RefID{Namespace: refid.NamespaceDefault, Value: 0x13BB9}
	chestObject = refid.RefID{Namespace: refid.NamespaceFormIndex, Value: 0x51}
)

func playerData() []byte {
	return lbytes.Concat(
		bytes.Repeat([]byte{0xAB}, PlayerInventoryOffset),
		EncodeInventory(
			InventoryItem{Item: wheat, Count: 3},
			InventoryItem{Item: blueFlower, Count: -1},
		),
	)
}

func TestDecode_Player(t *testing.T) {
	for _, compress := range []bool{false, true} {
		cf := ChangeForm{RefID: player, Type: FormTypeActor, Version: 74, Data: playerData()}
		reader := lbytes.NewBytesReader(EncodeChangeForm(cf, compress))

		decoded, err := Decode(reader)
		require.NoError(t, err)
		require.NoError(t, reader.ExpectEnd("TestDecode_Player"))

		assert.True(t, decoded.IsPlayer())
		assert.Equal(t, uint8(74), decoded.Version)
		assert.Equal(t, cf.Data, decoded.Data)
		if compress {
			assert.Equal(t, uint32(len(cf.Data)), decoded.Length2)
		} else {
			assert.Zero(t, decoded.Length2)
		}
		require.Len(t, decoded.Inventory, 2)
		assert.Equal(t, wheat, decoded.Inventory[0].Item)
		assert.Equal(t, int32(3), decoded.Inventory[0].Count)
		assert.Equal(t, int32(-1), decoded.Inventory[1].Count)
		assert.Empty(t, decoded.Inventory[1].Extra)
		assert.Nil(t, decoded.Reference)
	}
}

func TestDecode_Reference(t *testing.T) {
	flags := FlagRefrInventory |
		FlagRefrMove | FlagRefrHavokMove | FlagFormFlags |
		FlagRefrBaseObject | FlagRefrScale | FlagRefrExtraOwnership
	item := lbytes.Concat(
		ironSword.Encode(),
		lbytes.EncodeValueInt(1),
		lbytes.MustEncodeVsval(1),
		lbytes.MustEncodeVsval(1),
		[]byte{byte(sextra.TypeCount)}, lbytes.EncodeUint16(2),
	)
	data := lbytes.Concat(
		make([]byte, 27),
		lbytes.MustEncodeVsval(2), []byte{0xDE, 0xAD},
		lbytes.EncodeUint32(0x400), lbytes.EncodeUint16(7),
		ironSword.Encode(),
		lbytes.EncodeFloat32(1.25),
		lbytes.MustEncodeVsval(1), []byte{byte(sextra.TypeOwnership)}, chestOwner.Encode(),
		lbytes.MustEncodeVsval(1), item,
		// animation data is left undecoded
		[]byte{0x01, 0x02},
	)
	cf := ChangeForm{RefID: chestObject, Flags: flags, Type: FormTypeReference, Data: data}

	decoded, err := Decode(lbytes.NewBytesReader(EncodeChangeForm(cf, false)))
	require.NoError(t, err)
	reference := decoded.Reference
	require.NotNil(t, reference)
	assert.Equal(t, 4, reference.InitialType)
	assert.Equal(t, []byte{0xDE, 0xAD}, reference.HavokMove)
	require.NotNil(t, reference.FormFlags)
	assert.Equal(t, uint32(0x400), *reference.FormFlags)
	assert.Equal(t, uint16(7), *reference.FormFlagData)
	assert.Equal(t, ironSword, *reference.BaseObject)
	assert.Equal(t, float32(1.25), *reference.Scale)

	require.NotNil(t, reference.Extra)
	owner, ok := reference.Extra.Entries[0].RefID("owner")
	require.True(t, ok)
	assert.Equal(t, chestOwner, owner)

	require.Len(t, decoded.Inventory, 1)
	require.Len(t, decoded.Inventory[0].Extra, 1)
	count, ok := decoded.Inventory[0].Extra[0].Find(sextra.TypeCount)
	require.True(t, ok)
	value, _ := count.Payload.Get("count")
	assert.Equal(t, uint16(2), value)
}

func TestDecode_ReferenceWithoutInventory(t *testing.T) {
	cf := ChangeForm{
		RefID: chestObject,
		Flags: FlagRefrPromoted | FlagRefrScale,
		Type:  FormTypeReference,
		Data:  []byte{1, 2, 3},
	}
	decoded, err := Decode(lbytes.NewBytesReader(EncodeChangeForm(cf, false)))
	require.NoError(t, err)
	require.NotNil(t, decoded.Reference)
	assert.Equal(t, 6, decoded.Reference.InitialType)
	assert.Nil(t, decoded.Reference.Scale)
	assert.Nil(t, decoded.Inventory)
}

func TestDecode_Ingredient(t *testing.T) {
	cf := ChangeForm{RefID: wheat, Type: FormTypeIngredient, Data: lbytes.EncodeUint32(0b1011)}
	decoded, err := Decode(lbytes.NewBytesReader(EncodeChangeForm(cf, false)))
	require.NoError(t, err)
	require.NotNil(t, decoded.IngredientData)
	assert.Equal(t, uint32(0b1011), *decoded.IngredientData)
}

func TestDecode_IngredientSize(t *testing.T) {
	short := ChangeForm{RefID: wheat, Type: FormTypeIngredient, Data: []byte{1, 2, 3}}
	_, err := Decode(lbytes.NewBytesReader(EncodeChangeForm(short, false)))
	var malformed lbytes.ErrMalformedPrimitive
	assert.True(t, errors.As(err, &malformed))

	long := ChangeForm{RefID: wheat, Type: FormTypeIngredient, Data: lbytes.Concat(lbytes.EncodeUint32(1), []byte{0, 0})}
	_, err = Decode(lbytes.NewBytesReader(EncodeChangeForm(long, false)))
	var trailing lbytes.ErrTrailingDataMismatch
	require.True(t, errors.As(err, &trailing))
	assert.Equal(t, int64(4), trailing.Actual)
	assert.Equal(t, int64(6), trailing.Expected)
}

func TestDecode_LengthsBeyondData(t *testing.T) {
	inventory := lbytes.Concat(
		make([]byte, PlayerInventoryOffset),
		lbytes.MustEncodeVsval(lbytes.MaxVsval),
		EncodeInventoryItem(wheat, 1),
	)
	testCases := map[string][]byte{
		"payload length": lbytes.Concat(
			wheat.Encode(), lbytes.EncodeUint32(0), []byte{0x80 | 9, 0},
			lbytes.EncodeUint32(0xFFFFFFFF), lbytes.EncodeUint32(0),
			[]byte{1, 2, 3},
		),
		"inventory count": EncodeChangeForm(ChangeForm{RefID: player, Type: FormTypeActor, Data: inventory}, false),
	}
	for name, bs := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(lbytes.NewBytesReader(bs))
			var malformed lbytes.ErrMalformedPrimitive
			assert.True(t, errors.As(err, &malformed))
		})
	}

	compressed := lbytes.Deflate([]byte("four"))
	huge := lbytes.Concat(
		wheat.Encode(), lbytes.EncodeUint32(0), []byte{0x80 | 9, 0},
		lbytes.EncodeUint32(uint32(len(compressed))), lbytes.EncodeUint32(0xFFFFFFFF),
		compressed,
	)
	_, err := Decode(lbytes.NewBytesReader(huge))
	var mismatch lbytes.ErrDecompressionSizeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 4, mismatch.Actual)
}

func TestDecode_Opaque(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 300)
	cf := ChangeForm{RefID: wheat, Type: FormType(9), Flags: FlagsInventory, Data: data}
	bs := EncodeChangeForm(cf, false)
	// 300 bytes need 16-bit lengths
	assert.Equal(t, byte(1<<6|9), bs[7])

	decoded, err := Decode(lbytes.NewBytesReader(bs))
	require.NoError(t, err)
	assert.Equal(t, data, decoded.Data)
	assert.Nil(t, decoded.Reference)
	assert.Nil(t, decoded.Inventory)
	assert.Nil(t, decoded.IngredientData)
}

func TestDecode_Errors(t *testing.T) {
	badWidth := lbytes.Concat(wheat.Encode(), lbytes.EncodeUint32(0), []byte{0xC0, 0, 0, 0})
	compressed := lbytes.Deflate([]byte("four"))
	badSize := lbytes.Concat(
		wheat.Encode(), lbytes.EncodeUint32(0), []byte{9, 0},
		[]byte{byte(len(compressed)), 5},
		compressed,
	)

	_, err := Decode(lbytes.NewBytesReader(badWidth))
	var malformed lbytes.ErrMalformedPrimitive
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, int64(7), malformed.Offset)

	_, err = Decode(lbytes.NewBytesReader(badSize))
	var mismatch lbytes.ErrDecompressionSizeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 5, mismatch.Expected)
	assert.Equal(t, 4, mismatch.Actual)

	short := ChangeForm{RefID: player, Type: FormTypeActor, Data: make([]byte, 100)}
	_, err = Decode(lbytes.NewBytesReader(EncodeChangeForm(short, false)))
	assert.True(t, errors.As(err, &malformed))
}

func TestInitialType(t *testing.T) {
	created := refid.RefID{Namespace: refid.NamespaceCreated, Value: 1}
	testCases := map[string]struct {
		ref      refid.RefID
		flags    Flags
		expected int
	}{
		"created":      {ref: created, flags: FlagRefrPromoted, expected: 5},
		"promoted":     {ref: chestObject, flags: FlagRefrPromoted | FlagRefrMove, expected: 6},
		"cell changed": {ref: chestObject, flags: FlagRefrCellChanged, expected: 6},
		"havok":        {ref: chestObject, flags: FlagRefrHavokMove, expected: 4},
		"moved":        {ref: chestObject, flags: FlagRefrMove, expected: 4},
		"in place":     {ref: chestObject, flags: FlagRefrInventory, expected: 0},
	}
	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, InitialType(testCase.ref, testCase.flags))
		})
	}
}
