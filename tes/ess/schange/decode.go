package schange

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sextra"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

var interpreters = map[FormType]interpretFunc{
	FormTypeReference:  interpretReference,
	FormTypeIngredient: interpretIngredient,
}

// Decode reads one change form and interprets its payload when the form
// type is one we understand.
func Decode(reader *lbytes.Reader) (ChangeForm, error) {
	cf, err := ReadHeader(reader)
	if err != nil {
		err := errors.Wrap(err, "schange.Decode error")
		return ChangeForm{}, err
	}
	data, err := reader.ReadBytes(int(cf.Length1))
	if err != nil {
		err := errors.Wrapf(err, "schange.Decode error reading payload of %s", cf.RefID)
		return ChangeForm{}, err
	}
	if cf.Length2 != 0 {
		data, err = lbytes.Inflate(data, int(cf.Length2))
		if err != nil {
			err := errors.Wrapf(err, "schange.Decode error inflating payload of %s", cf.RefID)
			return ChangeForm{}, err
		}
	}
	cf.Data = data

	interpret, ok := interpreters[cf.Type]
	if cf.IsPlayer() {
		interpret, ok = interpretPlayer, true
	}
	if !ok {
		return cf, nil
	}
	if err := interpret(&cf); err != nil {
		err := errors.Wrapf(err, "schange.Decode error interpreting %s (type %d)", cf.RefID, cf.Type)
		return ChangeForm{}, err
	}
	return cf, nil
}

// ReadHeader reads everything up to the payload.
func ReadHeader(reader *lbytes.Reader) (ChangeForm, error) {
	cf := ChangeForm{}
	err := error(nil)
	if cf.RefID, err = refid.Read(reader); err != nil {
		return ChangeForm{}, errors.Wrap(err, "schange.ReadHeader error reading ref id")
	}
	flags, err := reader.ReadUint32()
	if err != nil {
		return ChangeForm{}, errors.Wrap(err, "schange.ReadHeader error reading flags")
	}
	cf.Flags = Flags(flags)
	offset := reader.Offset()
	packed, err := reader.ReadUint8()
	if err != nil {
		return ChangeForm{}, errors.Wrap(err, "schange.ReadHeader error reading type")
	}
	cf.Type = FormType(packed & FormTypeMask)
	if cf.Version, err = reader.ReadUint8(); err != nil {
		return ChangeForm{}, errors.Wrap(err, "schange.ReadHeader error reading version")
	}
	readLength, err := lengthReader(reader, packed>>6, offset)
	if err != nil {
		return ChangeForm{}, err
	}
	if cf.Length1, err = readLength(); err != nil {
		return ChangeForm{}, errors.Wrap(err, "schange.ReadHeader error reading length1")
	}
	if cf.Length2, err = readLength(); err != nil {
		return ChangeForm{}, errors.Wrap(err, "schange.ReadHeader error reading length2")
	}
	return cf, nil
}

func lengthReader(reader *lbytes.Reader, width uint8, offset int64) (func() (uint32, error), error) {
	dispatchMap := map[uint8]func() (uint32, error){
		0: func() (uint32, error) {
			value, err := reader.ReadUint8()
			return uint32(value), err
		},
		1: func() (uint32, error) {
			value, err := reader.ReadUint16()
			return uint32(value), err
		},
		2: reader.ReadUint32,
	}
	readLength, ok := dispatchMap[width]
	if !ok {
		return nil, lbytes.ErrMalformedPrimitive{
			Kind:   lbytes.KindUint8,
			Offset: offset,
			Reason: fmt.Sprintf("invalid change form length width selector %d", width),
		}
	}
	return readLength, nil
}

// InitialType chooses how much location data precedes the flag-gated
// reference fields.
func InitialType(ref refid.RefID, flags Flags) int {
	switch {
	case ref.Namespace == refid.NamespaceCreated:
		return 5
	case flags.Has(FlagRefrPromoted | FlagRefrCellChanged):
		return 6
	case flags.Has(FlagRefrHavokMove | FlagRefrMove):
		return 4
	}
	return 0
}

// interpretReference reads the flag-gated fields of a REFR in their fixed
// order. Without an inventory flag only the initial type is recorded: the
// fields after the inventory are not decoded, so nothing would be gained.
func interpretReference(cf *ChangeForm) error {
	reference := &Reference{InitialType: InitialType(cf.RefID, cf.Flags)}
	cf.Reference = reference
	if !cf.Flags.Has(FlagsInventory) {
		return nil
	}

	reader := lbytes.NewBytesReader(cf.Data)
	if err := reader.Skip(initialTypeSkips[reference.InitialType]); err != nil {
		return errors.Wrap(err, "interpretReference error skipping location")
	}
	if cf.Flags.Has(FlagRefrHavokMove) {
		size, err := reader.ReadVsval()
		if err != nil {
			return errors.Wrap(err, "interpretReference error reading havok move size")
		}
		if reference.HavokMove, err = reader.ReadBytes(int(size)); err != nil {
			return errors.Wrap(err, "interpretReference error reading havok move")
		}
	}
	if cf.Flags.Has(FlagFormFlags) {
		formFlags, err := reader.ReadUint32()
		if err != nil {
			return errors.Wrap(err, "interpretReference error reading form flags")
		}
		formFlagData, err := reader.ReadUint16()
		if err != nil {
			return errors.Wrap(err, "interpretReference error reading form flag data")
		}
		reference.FormFlags = &formFlags
		reference.FormFlagData = &formFlagData
	}
	if cf.Flags.Has(FlagRefrBaseObject) {
		baseObject, err := refid.Read(reader)
		if err != nil {
			return errors.Wrap(err, "interpretReference error reading base object")
		}
		reference.BaseObject = &baseObject
	}
	if cf.Flags.Has(FlagRefrScale) {
		scale, err := reader.ReadFloat32()
		if err != nil {
			return errors.Wrap(err, "interpretReference error reading scale")
		}
		reference.Scale = &scale
	}
	if cf.Flags.Has(FlagsExtraData) {
		extra, err := sextra.Decode(reader)
		if err != nil {
			return errors.Wrap(err, "interpretReference error reading extra data")
		}
		reference.Extra = &extra
	}
	inventory, err := ReadInventory(reader)
	if err != nil {
		return errors.Wrap(err, "interpretReference error")
	}
	cf.Inventory = inventory
	return nil
}

func interpretIngredient(cf *ChangeForm) error {
	reader := lbytes.NewBytesReader(cf.Data)
	value, err := reader.ReadUint32()
	if err != nil {
		return errors.Wrap(err, "interpretIngredient error")
	}
	if err := reader.ExpectEnd("schange.interpretIngredient"); err != nil {
		return err
	}
	cf.IngredientData = &value
	return nil
}

func interpretPlayer(cf *ChangeForm) error {
	reader := lbytes.NewBytesReader(cf.Data)
	if err := reader.Skip(PlayerInventoryOffset); err != nil {
		return errors.Wrap(err, "interpretPlayer error skipping actor data")
	}
	inventory, err := ReadInventory(reader)
	if err != nil {
		return errors.Wrap(err, "interpretPlayer error")
	}
	cf.Inventory = inventory
	log.Debug().
		Int("items", len(inventory)).
		Msg("player inventory decoded")
	return nil
}

// ReadInventory reads a vsval-counted list of inventory items.
func ReadInventory(reader *lbytes.Reader) ([]InventoryItem, error) {
	count, err := reader.ReadVsval()
	if err != nil {
		err := errors.Wrap(err, "ReadInventory error reading count")
		return nil, err
	}
	items := make([]InventoryItem, 0, reader.Capacity(count, MinInventoryItemSize))
	for i := uint32(0); i < count; i++ {
		item, err := ReadInventoryItem(reader)
		if err != nil {
			err := errors.Wrapf(err, "ReadInventory error reading item %d of %d", i, count)
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func ReadInventoryItem(reader *lbytes.Reader) (InventoryItem, error) {
	item := InventoryItem{}
	err := error(nil)
	if item.Item, err = refid.Read(reader); err != nil {
		return InventoryItem{}, errors.Wrap(err, "ReadInventoryItem error reading item")
	}
	if item.Count, err = reader.ReadInt(); err != nil {
		return InventoryItem{}, errors.Wrap(err, "ReadInventoryItem error reading count")
	}
	extraCount, err := reader.ReadVsval()
	if err != nil {
		return InventoryItem{}, errors.Wrap(err, "ReadInventoryItem error reading extra count")
	}
	item.Extra = make([]sextra.Block, 0, reader.Capacity(extraCount, 1))
	for i := uint32(0); i < extraCount; i++ {
		block, err := sextra.Decode(reader)
		if err != nil {
			err := errors.Wrapf(err, "ReadInventoryItem error reading extra data of %s", item.Item)
			return InventoryItem{}, err
		}
		item.Extra = append(item.Extra, block)
	}
	return item, nil
}
