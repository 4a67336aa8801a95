package erecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/efield"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

func TestDecode_PluginHeader(t *testing.T) {
	bs := EncodeRecord(
		Header{Type: TypePluginHeader, Flags: FlagMaster | FlagLocalized},
		efield.Field{Type: "HEDR", Data: lbytes.Concat(
			lbytes.EncodeFloat32(0.94),
			lbytes.EncodeValueInt(920185),
			lbytes.EncodeUint32(0xFEA),
		)},
		ZStringField("CNAM", "mcarofano"),
		ZStringField("MAST", "Skyrim.esm"),
		ZStringField("MAST", "Update.esm"),
	)

	record, _, err := decodeBytes(t, bs, Context{})
	require.NoError(t, err)
	header := record.(*PluginHeader)
	assert.True(t, header.RecordHeader().Flags.Has(FlagLocalized))
	assert.Equal(t, float32(0.94), header.Version)
	assert.Equal(t, int32(920185), header.RecordCount)
	assert.Equal(t, "mcarofano", header.Author)
	assert.Equal(t, []string{"Skyrim.esm", "Update.esm"}, header.Masters)
}

func TestDecode_Potion(t *testing.T) {
	fields := []efield.Field{
		ZStringField("FULL", "Potion of Minor Healing"),
		{Type: "DATA", Data: lbytes.EncodeFloat32(0.5)},
		{Type: "ENIT", Data: lbytes.Concat(lbytes.EncodeUint32(17), lbytes.EncodeUint32(0x10001))},
	}
	fields = append(fields, EffectFields(Effect{EffectID: 0x3EB15, Magnitude: 25})...)

	record, _, err := decodeBytes(t, EncodeRecord(Header{Type: TypePotion}, fields...), Context{})
	require.NoError(t, err)
	potion := record.(*Potion)
	assert.Equal(t, uint32(17), potion.BaseValue())
	assert.Equal(t, float32(0.5), potion.ItemWeight())
	assert.Equal(t, []string{"ManualCalc", "Medicine"}, potion.Flags.Names())
	assert.False(t, potion.Flags.IsPoison())
	assert.Len(t, potion.EffectList(), 1)
}

func TestDecode_Enchantment(t *testing.T) {
	enit := lbytes.Concat(
		lbytes.EncodeUint32(100),
		lbytes.EncodeUint32(0x1),
		lbytes.EncodeUint32(0x01),
		lbytes.EncodeUint32(500),
		lbytes.EncodeUint32(0x01),
		lbytes.EncodeUint32(0x06),
		lbytes.EncodeFloat32(0.5),
		lbytes.EncodeUint32(0),
		lbytes.EncodeUint32(0xAABB),
	)
	record, _, err := decodeBytes(t, EncodeRecord(
		Header{Type: TypeEnchantment},
		efield.Field{Type: "ENIT", Data: enit},
	), Context{})
	require.NoError(t, err)
	ench := record.(*Enchantment)
	assert.Equal(t, uint32(500), ench.Item.EnchantAmount)
	assert.Equal(t, "Fire and Forget", ench.Item.CastTypeName())
	assert.Equal(t, "Touch", ench.Item.DeliveryName())
	assert.Equal(t, "Enchantment", ench.Item.EnchantTypeName())
	assert.Equal(t, NamelessName, ench.Name())
}

func TestDecode_Items(t *testing.T) {
	testCases := map[string]struct {
		bs       []byte
		validate func(t *testing.T, record Record)
	}{
		"armor": {
			bs: EncodeRecord(
				Header{Type: TypeArmor},
				Uint32Field("EITM", 0x99),
				efield.Field{Type: "EAMT", Data: lbytes.EncodeUint16(300)},
				ZStringField("DESC", "Shiny"),
				ValueWeightField(125, 6),
				Uint32Field("DNAM", 2300),
			),
			validate: func(t *testing.T, record Record) {
				armor := record.(*Armor)
				assert.Equal(t, uint32(0x99), armor.Enchantment)
				assert.Equal(t, uint16(300), armor.EnchantmentAmount)
				assert.Equal(t, "Shiny", armor.Description)
				assert.Equal(t, uint32(2300), armor.ArmorRating)
				assert.Equal(t, float32(6), armor.ItemWeight())
			},
		},
		"book": {
			bs: EncodeRecord(
				Header{Type: TypeBook},
				efield.Field{Type: "DATA", Data: lbytes.Concat(
					[]byte{0x1, 0xFF, 0},
					lbytes.EncodeUint32(12),
					lbytes.EncodeUint32(45),
					lbytes.EncodeFloat32(1),
				)},
			),
			validate: func(t *testing.T, record Record) {
				book := record.(*Book)
				assert.Equal(t, uint8(0xFF), book.BookType)
				assert.Equal(t, uint32(12), book.Teaches)
				assert.Equal(t, uint32(45), book.BaseValue())
			},
		},
		"weapon": {
			bs: EncodeRecord(
				Header{Type: TypeWeapon},
				efield.Field{Type: "DATA", Data: lbytes.Concat(
					lbytes.EncodeUint32(25),
					lbytes.EncodeFloat32(9),
					lbytes.EncodeUint16(7),
				)},
				efield.Field{Type: "EAMT", Data: lbytes.EncodeUint16(800)},
				Uint32Field("CNAM", 0x12EB7),
			),
			validate: func(t *testing.T, record Record) {
				weapon := record.(*Weapon)
				assert.Equal(t, uint16(7), weapon.Damage)
				assert.Equal(t, uint16(800), weapon.EnchantmentCharge)
				assert.Equal(t, uint32(0x12EB7), weapon.Template)
			},
		},
		"ammo": {
			bs: EncodeRecord(
				Header{Type: TypeAmmo},
				efield.Field{Type: "DATA", Data: lbytes.Concat(
					lbytes.EncodeUint32(0x3BE11),
					lbytes.EncodeUint32(0x4),
					lbytes.EncodeFloat32(8),
					lbytes.EncodeUint32(1),
				)},
			),
			validate: func(t *testing.T, record Record) {
				ammo := record.(*Ammo)
				assert.Equal(t, uint32(0x3BE11), ammo.Projectile)
				assert.Equal(t, float32(8), ammo.Damage)
				assert.Equal(t, uint32(1), ammo.BaseValue())
			},
		},
		"soul gem": {
			bs: EncodeRecord(
				Header{Type: TypeSoulGem},
				efield.Field{Type: "SOUL", Data: []byte{0}},
				efield.Field{Type: "SLCP", Data: []byte{5}},
				ValueWeightField(300, 1),
			),
			validate: func(t *testing.T, record Record) {
				gem := record.(*SoulGem)
				assert.Equal(t, "Empty", gem.Soul.String())
				assert.Equal(t, "Grand", gem.Capacity.String())
			},
		},
		"scroll": {
			bs: EncodeRecord(
				Header{Type: TypeScroll},
				append([]efield.Field{ValueWeightField(50, 0.5)}, EffectFields(Effect{EffectID: 3, Magnitude: 40})...)...,
			),
			validate: func(t *testing.T, record Record) {
				scroll := record.(*Scroll)
				assert.Equal(t, uint32(50), scroll.BaseValue())
				assert.Len(t, scroll.EffectList(), 1)
			},
		},
		"key": {
			bs: EncodeRecord(Header{Type: TypeKey}, ZStringField("EDID", "HousekeyWhiterun"), ValueWeightField(0, 0)),
			validate: func(t *testing.T, record Record) {
				assert.Equal(t, "HousekeyWhiterun", record.Name())
			},
		},
	}
	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			record, reader, err := decodeBytes(t, testCase.bs, Context{})
			require.NoError(t, err)
			assert.Equal(t, int64(0), reader.Remaining())
			testCase.validate(t, record)
		})
	}
}

func TestDecode_ShortDataField(t *testing.T) {
	bs := EncodeRecord(Header{Type: TypeMisc}, efield.Field{Type: "DATA", Data: []byte{1, 0}})
	_, _, err := decodeBytes(t, bs, Context{})
	assert.Error(t, err)
}
