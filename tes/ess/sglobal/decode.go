package sglobal

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

var decoders = map[Type]decodeFunc{
	TypeMiscStats:        decodeMiscStats,
	TypeCreatedObjects:   decodeCreatedObjects,
	TypeIngredientShared: decodeIngredientShared,
}

// Decode reads one global data block. Created objects are registered into
// registry as they are read; registry may be nil. Parsed blocks must use up
// their declared length exactly.
func Decode(reader *lbytes.Reader, registry *refid.Registry) (Block, error) {
	block := Block{Offset: reader.Offset()}
	value, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "sglobal.Decode error reading type")
		return Block{}, err
	}
	block.Type = Type(value)
	block.Name = block.Type.String()
	if block.Length, err = reader.ReadUint32(); err != nil {
		err := errors.Wrapf(err, `sglobal.Decode error reading length of "%s"`, block.Name)
		return Block{}, err
	}
	payload, err := reader.Sub(int(block.Length))
	if err != nil {
		err := errors.Wrapf(err, `sglobal.Decode error reading payload of "%s"`, block.Name)
		return Block{}, err
	}

	if _, ok := typeNames[block.Type]; !ok {
		log.Warn().
			Uint32("type", value).
			Int64("offset", block.Offset).
			Uint32("length", block.Length).
			Msg("unknown global data type kept unparsed")
	}
	decode, ok := decoders[block.Type]
	if !ok {
		raw, _ := payload.ReadBytes(int(block.Length))
		block.Payload = Unparsed{Raw: raw}
		return block, nil
	}
	if block.Payload, err = decode(payload, registry); err != nil {
		err := errors.Wrapf(err, `sglobal.Decode error decoding "%s" at offset %d`, block.Name, block.Offset)
		return Block{}, err
	}
	caller := fmt.Sprintf("sglobal.Decode %s", block.Name)
	if err := payload.ExpectEnd(caller); err != nil {
		return Block{}, err
	}
	return block, nil
}

// DecodeTable reads count consecutive blocks.
func DecodeTable(reader *lbytes.Reader, count uint32, registry *refid.Registry) ([]Block, error) {
	blocks := make([]Block, 0, reader.Capacity(count, BlockHeaderSize))
	for i := uint32(0); i < count; i++ {
		block, err := Decode(reader, registry)
		if err != nil {
			err := errors.Wrapf(err, "sglobal.DecodeTable error reading block %d of %d", i, count)
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func decodeMiscStats(reader *lbytes.Reader, _ *refid.Registry) (Payload, error) {
	count, err := reader.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "decodeMiscStats error reading count")
	}
	stats := make([]Stat, 0, reader.Capacity(count, minStatSize))
	for i := uint32(0); i < count; i++ {
		stat := Stat{}
		if stat.Name, err = reader.ReadWString(); err != nil {
			return nil, errors.Wrapf(err, "decodeMiscStats error reading name of stat %d", i)
		}
		offset := reader.Offset()
		category, err := reader.ReadUint8()
		if err != nil {
			return nil, errors.Wrapf(err, `decodeMiscStats error reading category of "%s"`, stat.Name)
		}
		stat.Category = Category(category)
		if _, ok := categoryNames[stat.Category]; !ok {
			return nil, lbytes.ErrMalformedPrimitive{
				Kind:   lbytes.KindUint8,
				Offset: offset,
				Reason: fmt.Sprintf("unknown stat category %d", category),
			}
		}
		if stat.Value, err = reader.ReadUint32(); err != nil {
			return nil, errors.Wrapf(err, `decodeMiscStats error reading value of "%s"`, stat.Name)
		}
		stats = append(stats, stat)
	}
	return MiscStats{Stats: stats}, nil
}

func decodeCreatedObjects(reader *lbytes.Reader, registry *refid.Registry) (Payload, error) {
	created := CreatedObjects{}
	lists := []struct {
		kind   CreatedKind
		target *[]Enchantment
	}{
		{kind: CreatedWeapon, target: &created.Weapons},
		{kind: CreatedArmour, target: &created.Armours},
		{kind: CreatedPotion, target: &created.Potions},
		{kind: CreatedPoison, target: &created.Poisons},
	}
	for _, list := range lists {
		enchantments, err := readEnchantments(reader, list.kind, registry)
		if err != nil {
			err := errors.Wrapf(err, "decodeCreatedObjects error reading %s list", list.kind)
			return nil, err
		}
		*list.target = enchantments
	}
	log.Debug().
		Int("weapons", len(created.Weapons)).
		Int("armours", len(created.Armours)).
		Int("potions", len(created.Potions)).
		Int("poisons", len(created.Poisons)).
		Msg("created objects decoded")
	return created, nil
}

func readEnchantments(reader *lbytes.Reader, kind CreatedKind, registry *refid.Registry) ([]Enchantment, error) {
	count, err := reader.ReadVsval()
	if err != nil {
		return nil, errors.Wrap(err, "readEnchantments error reading count")
	}
	enchantments := make([]Enchantment, 0, reader.Capacity(count, minEnchantmentSize))
	for i := uint32(0); i < count; i++ {
		enchantment, err := ReadEnchantment(reader, kind)
		if err != nil {
			err := errors.Wrapf(err, "readEnchantments error reading item %d of %d", i, count)
			return nil, err
		}
		if registry != nil {
			if err := registry.RegisterCreated(enchantment.RefID, enchantment); err != nil {
				return nil, errors.Wrap(err, "readEnchantments error")
			}
		}
		enchantments = append(enchantments, enchantment)
	}
	return enchantments, nil
}

func ReadEnchantment(reader *lbytes.Reader, kind CreatedKind) (Enchantment, error) {
	enchantment := Enchantment{Kind: kind}
	err := error(nil)
	if enchantment.RefID, err = refid.Read(reader); err != nil {
		return Enchantment{}, errors.Wrap(err, "ReadEnchantment error reading ref id")
	}
	if enchantment.TimesUsed, err = reader.ReadUint32(); err != nil {
		return Enchantment{}, errors.Wrap(err, "ReadEnchantment error reading times used")
	}
	count, err := reader.ReadVsval()
	if err != nil {
		return Enchantment{}, errors.Wrap(err, "ReadEnchantment error reading effect count")
	}
	enchantment.Effects = make([]EffectInfo, 0, reader.Capacity(count, effectInfoSize))
	for i := uint32(0); i < count; i++ {
		effect, err := ReadEffectInfo(reader)
		if err != nil {
			err := errors.Wrapf(err, "ReadEnchantment error reading effect %d of %s", i, enchantment.RefID)
			return Enchantment{}, err
		}
		enchantment.Effects = append(enchantment.Effects, effect)
	}
	return enchantment, nil
}

func ReadEffectInfo(reader *lbytes.Reader) (EffectInfo, error) {
	effect := EffectInfo{}
	err := error(nil)
	if effect.EffectID, err = refid.Read(reader); err != nil {
		return EffectInfo{}, errors.Wrap(err, "ReadEffectInfo error reading effect id")
	}
	if effect.Magnitude, err = reader.ReadFloat32(); err != nil {
		return EffectInfo{}, errors.Wrap(err, "ReadEffectInfo error reading magnitude")
	}
	if effect.Duration, err = reader.ReadUint32(); err != nil {
		return EffectInfo{}, errors.Wrap(err, "ReadEffectInfo error reading duration")
	}
	if effect.Area, err = reader.ReadUint32(); err != nil {
		return EffectInfo{}, errors.Wrap(err, "ReadEffectInfo error reading area")
	}
	if effect.Price, err = reader.ReadFloat32(); err != nil {
		return EffectInfo{}, errors.Wrap(err, "ReadEffectInfo error reading price")
	}
	return effect, nil
}

func decodeIngredientShared(reader *lbytes.Reader, _ *refid.Registry) (Payload, error) {
	count, err := reader.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "decodeIngredientShared error reading count")
	}
	pairs := make([]IngredientPair, 0, reader.Capacity(count, 2*refid.Size))
	for i := uint32(0); i < count; i++ {
		pair := IngredientPair{}
		if pair.First, err = refid.Read(reader); err != nil {
			return nil, errors.Wrapf(err, "decodeIngredientShared error reading pair %d", i)
		}
		if pair.Second, err = refid.Read(reader); err != nil {
			return nil, errors.Wrapf(err, "decodeIngredientShared error reading pair %d", i)
		}
		pairs = append(pairs, pair)
	}
	return IngredientShared{Pairs: pairs}, nil
}
