// Package schange decodes savegame change forms: the per-object deltas
// against plugin data. Only references, ingredients and the player actor are
// interpreted; everything else is kept as raw payload.
package schange

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sextra"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

type (
	Flags    uint32
	FormType uint8
	// ChangeForm is immutable once decoded.
	ChangeForm struct {
		RefID   refid.RefID `json:"ref_id"`
		Flags   Flags       `json:"flags"`
		Type    FormType    `json:"type"`
		Version uint8       `json:"version"`
		Length1 uint32      `json:"length1"`
		Length2 uint32      `json:"length2"`
		// Data is the payload after inflation.
		Data           []byte     `json:"-"`
		Reference      *Reference `json:"reference,omitempty"`
		IngredientData *uint32    `json:"ingredient_data,omitempty"`
		// Inventory is filled for the player actor and for references with
		// an inventory flag.
		Inventory []InventoryItem `json:"inventory,omitempty"`
	}
	// Reference is the interpreted part of a REFR change form. Pointers are
	// nil when the matching change flag is not set.
	Reference struct {
		InitialType  int           `json:"initial_type"`
		HavokMove    []byte        `json:"havok_move,omitempty"`
		FormFlags    *uint32       `json:"form_flags,omitempty"`
		FormFlagData *uint16       `json:"form_flag_data,omitempty"`
		BaseObject   *refid.RefID  `json:"base_object,omitempty"`
		Scale        *float32      `json:"scale,omitempty"`
		Extra        *sextra.Block `json:"extra,omitempty"`
	}
	InventoryItem struct {
		Item  refid.RefID    `json:"item"`
		Count int32          `json:"count"`
		Extra []sextra.Block `json:"extra"`
	}
	interpretFunc func(cf *ChangeForm) error
)

const (
	FlagFormFlags                   = Flags(0x01)
	FlagRefrMove                    = Flags(0x02)
	FlagRefrHavokMove               = Flags(0x04)
	FlagRefrCellChanged             = Flags(0x08)
	FlagRefrScale                   = Flags(0x10)
	FlagRefrInventory               = Flags(0x20)
	FlagRefrExtraOwnership          = Flags(0x40)
	FlagRefrBaseObject              = Flags(0x80)
	FlagObjectExtraItemData         = Flags(0x400)
	FlagObjectExtraAmmo             = Flags(0x800)
	FlagObjectExtraLock             = Flags(0x1000)
	FlagDoorExtraTeleport           = Flags(0x20000)
	FlagObjectEmpty                 = Flags(0x200000)
	FlagObjectOpenDefaultState      = Flags(0x400000)
	FlagObjectOpenState             = Flags(0x800000)
	FlagRefrPromoted                = Flags(0x2000000)
	FlagRefrExtraActivatingChildren = Flags(0x4000000)
	FlagRefrLeveledInventory        = Flags(0x8000000)
	FlagRefrAnimation               = Flags(0x10000000)
	FlagRefrExtraEncounterZone      = Flags(0x20000000)
	FlagRefrExtraCreatedOnly        = Flags(0x40000000)
	FlagRefrExtraGameOnly           = Flags(0x80000000)
	FlagsInventory                  = FlagRefrInventory | FlagRefrLeveledInventory
	// FlagsExtraData gates the ExtraData block ahead of a reference inventory.
	FlagsExtraData = FlagRefrExtraOwnership |
		FlagObjectExtraLock |
		FlagRefrExtraEncounterZone |
		FlagRefrExtraGameOnly |
		FlagObjectExtraAmmo |
		FlagDoorExtraTeleport |
		FlagRefrPromoted |
		FlagRefrExtraActivatingChildren |
		FlagObjectExtraItemData
)

const (
	FormTypeReference  = FormType(0)
	FormTypeActor      = FormType(1)
	FormTypeIngredient = FormType(16)
)

const (
	// PlayerValue is the identifier value of the player actor.
	PlayerValue = 0x14
	// PlayerInventoryOffset is where the inventory count starts in the
	// player actor payload.
	PlayerInventoryOffset = 829
	// FormTypeMask selects the form type from the packed type byte; the top
	// two bits select the width of the length fields.
	FormTypeMask = 0x3F
	// MinHeaderSize is a header with one-byte length fields.
	MinHeaderSize = refid.Size + 4 + 1 + 1 + 2
	// MinInventoryItemSize is an item without extra data.
	MinInventoryItemSize = refid.Size + 4 + 1
)

// initialTypeSkips maps a reference initial type to the bytes of location
// data that precede the flag-gated fields.
var initialTypeSkips = map[int]int64{
	0: 0,
	4: 27,
	5: 31,
	6: 34,
}

// Has reports whether any bit of mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}

// IsPlayer reports whether the change form is the player actor.
func (c ChangeForm) IsPlayer() bool {
	return c.Type == FormTypeActor && c.RefID.Value == PlayerValue
}
