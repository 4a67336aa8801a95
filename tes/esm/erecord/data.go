// Package erecord decodes plugin records: the fixed header, the optionally
// compressed field payload and the typed view of each known record type.
package erecord

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/efield"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

type (
	Flags  uint32
	Header struct {
		Type     string `json:"type"`
		DataSize uint32 `json:"data_size"`
		Flags    Flags  `json:"flags"`
		FormID   uint32 `json:"form_id"`
		Revision uint32 `json:"revision"`
		Version  uint16 `json:"version"`
		Unknown  uint16 `json:"unknown"`
	}
	// Context carries what field interpretation needs from the file being
	// read: the string tables and whether the file stores text by id.
	Context struct {
		Strings   lbytes.StringLookup
		Localized bool
	}
	// Record is implemented by every typed record. Name makes records usable
	// as refid objects.
	Record interface {
		RecordHeader() Header
		FormID() uint32
		Name() string
	}
	// EffectCarrier is implemented by records owning magic effect references.
	// The returned slice shares its backing array with the record.
	EffectCarrier interface {
		Record
		EffectList() []Effect
	}
	// Item is implemented by records that can sit in an inventory.
	Item interface {
		Record
		BaseValue() uint32
		ItemWeight() float32
	}
	decodeFunc func(common Common, fields []efield.Field, ctx Context) (Record, error)
)

const (
	HeaderSize = 24

	FlagMaster     = Flags(0x00000001)
	FlagDeleted    = Flags(0x00000020)
	FlagLocalized  = Flags(0x00000080)
	FlagCompressed = Flags(0x00040000)
)

const (
	TypeGroup        = "GRUP"
	TypePluginHeader = "TES4"
	TypeMagicEffect  = "MGEF"
	TypeIngredient   = "INGR"
	TypePotion       = "ALCH"
	TypeEnchantment  = "ENCH"
	TypeArmor        = "ARMO"
	TypeMisc         = "MISC"
	TypeScroll       = "SCRL"
	TypeBook         = "BOOK"
	TypeWeapon       = "WEAP"
	TypeAmmo         = "AMMO"
	TypeSoulGem      = "SLGM"
	TypeKey          = "KEYM"
	NamelessName     = "Nameless"
)

func (f Flags) Has(bit Flags) bool {
	return f&bit == bit
}
