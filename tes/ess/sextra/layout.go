package sextra

import (
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

type (
	valueFunc func(reader *lbytes.Reader) (any, error)
	step      struct {
		Key  string
		Read valueFunc
	}
)

func field(key string, read valueFunc) step {
	return step{Key: key, Read: read}
}

func kind(k lbytes.Kind) valueFunc {
	return func(reader *lbytes.Reader) (any, error) {
		return reader.ReadKind(k, nil)
	}
}

func readRefID(reader *lbytes.Reader) (any, error) {
	return refid.Read(reader)
}

func fixed(n int) valueFunc {
	return func(reader *lbytes.Reader) (any, error) {
		return reader.ReadBytes(n)
	}
}

// repeat reads n values of the same layout.
func repeat(n int, read valueFunc) valueFunc {
	return func(reader *lbytes.Reader) (any, error) {
		values := make([]any, 0, n)
		for i := 0; i < n; i++ {
			value, err := read(reader)
			if err != nil {
				err := errors.Wrapf(err, "repeat error reading value %d of %d", i, n)
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	}
}

func readSteps(reader *lbytes.Reader, steps []step) (*orderedmap.OrderedMap, error) {
	out := orderedmap.New()
	for _, s := range steps {
		value, err := s.Read(reader)
		if err != nil {
			err := errors.Wrapf(err, `readSteps error reading key "%s"`, s.Key)
			return nil, err
		}
		out.Set(s.Key, value)
	}
	return out, nil
}

// counted reads a vsval count followed by that many structures.
func counted(steps ...step) valueFunc {
	return func(reader *lbytes.Reader) (any, error) {
		count, err := reader.ReadVsval()
		if err != nil {
			err := errors.Wrap(err, "counted error reading count")
			return nil, err
		}
		items := make([]*orderedmap.OrderedMap, 0, reader.Capacity(count, 1))
		for i := uint32(0); i < count; i++ {
			item, err := readSteps(reader, steps)
			if err != nil {
				err := errors.Wrapf(err, "counted error reading item %d of %d", i, count)
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}
}

func sequence(steps ...step) decodeFunc {
	return func(reader *lbytes.Reader) (*orderedmap.OrderedMap, error) {
		return readSteps(reader, steps)
	}
}

var (
	u8  = kind(lbytes.KindUint8)
	i8  = kind(lbytes.KindInt8)
	u16 = kind(lbytes.KindUint16)
	u32 = kind(lbytes.KindUint32)
	i32 = kind(lbytes.KindInt32)
	f32 = kind(lbytes.KindFloat32)
	ws  = kind(lbytes.KindWString)
	ref = valueFunc(readRefID)
)

func singleRef(key string) decodeFunc {
	return sequence(field(key, ref))
}

// magicTarget's data length is stored in the three-byte identifier form.
func magicTarget(reader *lbytes.Reader) (any, error) {
	out := orderedmap.New()
	target, err := refid.Read(reader)
	if err != nil {
		return nil, errors.Wrap(err, "magicTarget error reading target")
	}
	out.Set("target", target)
	flag, err := reader.ReadUint8()
	if err != nil {
		return nil, errors.Wrap(err, "magicTarget error reading flag")
	}
	out.Set("flag", flag)
	unknown, err := reader.ReadVsval()
	if err != nil {
		return nil, errors.Wrap(err, "magicTarget error reading unknown")
	}
	out.Set("unknown", unknown)
	size, err := refid.Read(reader)
	if err != nil {
		return nil, errors.Wrap(err, "magicTarget error reading size")
	}
	data, err := reader.ReadBytes(int(size.Value))
	if err != nil {
		return nil, errors.Wrap(err, "magicTarget error reading data")
	}
	out.Set("data", data)
	return out, nil
}

func decodeTresPassPackage(reader *lbytes.Reader) (*orderedmap.OrderedMap, error) {
	offset := reader.Offset()
	out, err := readSteps(reader, []step{field("package", ref)})
	if err != nil {
		return nil, err
	}
	value, _ := out.Get("package")
	if !value.(refid.RefID).IsZero() {
		return nil, ErrUnsupportedExtraDataType{
			Type:   TypeTresPassPackage,
			Offset: offset,
			Reason: "package data follows a non-zero package",
		}
	}
	return out, nil
}

func decodePackageData(reader *lbytes.Reader) (*orderedmap.OrderedMap, error) {
	offset := reader.Offset()
	marker, err := reader.ReadInt8()
	if err != nil {
		return nil, errors.Wrap(err, "decodePackageData error reading marker")
	}
	if marker != -1 {
		return nil, ErrUnsupportedExtraDataType{
			Type:   TypePackageData,
			Offset: offset,
			Reason: "package data body is not decoded",
		}
	}
	out := orderedmap.New()
	out.Set("marker", marker)
	return out, nil
}

// decodeTextDisplayData reads the custom name that follows an empty
// message/quest pair marked with -2.
func decodeTextDisplayData(reader *lbytes.Reader) (*orderedmap.OrderedMap, error) {
	out, err := readSteps(reader, []step{
		field("message", ref),
		field("quest", ref),
		field("kind", i32),
	})
	if err != nil {
		return nil, err
	}
	message, _ := out.Get("message")
	quest, _ := out.Get("quest")
	textKind, _ := out.Get("kind")
	if textKind.(int32) != -2 || !message.(refid.RefID).IsZero() || !quest.(refid.RefID).IsZero() {
		return out, nil
	}
	name, err := reader.ReadWString()
	if err != nil {
		return nil, errors.Wrap(err, "decodeTextDisplayData error reading name")
	}
	out.Set("name", name)
	return out, nil
}

// layouts holds every entry type with a known layout. Types present in
// typeNames but absent here are unsupported.
var layouts = map[DataType]decodeFunc{
	TypeWorn:     sequence(),
	TypeWornLeft: sequence(),
	TypePackageStartLocation: sequence(
		field("package", ref),
		field("location", ref),
		field("flags", u32),
		field("unknown", fixed(3)),
	),
	TypePackage: sequence(
		field("package", ref),
		field("target", ref),
		field("index", u32),
		field("flags", repeat(3, u8)),
	),
	TypeTresPassPackage: decodeTresPassPackage,
	TypeRunOncePacks: sequence(
		field("packs", counted(field("package", ref), field("flag", u8))),
	),
	TypeReferenceHandle: singleRef("reference"),
	TypeLevCreaModifier: sequence(field("modifier", u32)),
	TypeGhost:           sequence(field("ghost", u8)),
	TypeOwnership:       singleRef("owner"),
	TypeGlobal:          singleRef("global"),
	TypeRank:            singleRef("rank"),
	TypeCount:           sequence(field("count", u16)),
	TypeHealth:          sequence(field("health", f32)),
	TypeTimeLeft:        sequence(field("time_left", u32)),
	TypeCharge:          sequence(field("charge", f32)),
	TypeLock: sequence(
		field("level", u8),
		field("unknown", u8),
		field("key", ref),
		field("flags", u32),
		field("unknown2", u32),
	),
	TypeTeleport: sequence(
		field("position", repeat(3, f32)),
		field("rotation", repeat(3, f32)),
		field("flag", u8),
		field("destination", ref),
	),
	TypeMapMarker:   sequence(field("flags", u8)),
	TypeLeveledItem: sequence(field("item", u32), field("flags", u8)),
	TypeScale:       sequence(field("scale", f32)),
	TypeNonActorMagicCaster: sequence(
		field("unknown1", u32),
		field("data", ref),
		field("unknown2", u32),
		field("unknown3", u32),
		field("data2", ref),
		field("unknown4", f32),
		field("reference", ref),
		field("reference2", ref),
	),
	TypeNonActorMagicTarget: sequence(
		field("reference", ref),
		field("targets", counted(field("target", magicTarget))),
	),
	TypePlayerCrimeList: sequence(
		field("crimes", counted(field("crime", u32), field("unknown", u32))),
	),
	TypeItemDropper:         singleRef("dropper"),
	TypeExtraPoison:         sequence(field("poison", ref), field("count", u32)),
	TypeFriendHits:          sequence(field("hits", counted(field("hit", f32)))),
	TypeHeadingTarget:       singleRef("target"),
	TypeStartingWorldOrCell: singleRef("world_or_cell"),
	TypeHotkey:              sequence(field("hotkey", u8)),
	TypeInfoGeneralTopic: sequence(
		field("topic", ws),
		field("flags", repeat(5, u8)),
		field("references", repeat(4, ref)),
	),
	TypeHasNoRumors:     sequence(field("value", u8)),
	TypeTerminalState:   sequence(field("state", u8), field("unknown", u8)),
	TypeUnknown83:       sequence(field("value", u32)),
	TypeCanTalkToPlayer: sequence(field("value", u8)),
	TypeObjectHealth:    sequence(field("health", f32)),
	TypeModelSwap:       sequence(field("model", ref), field("unknown", u32)),
	TypeRadius:          sequence(field("radius", u32)),
	TypeFactionChanges: sequence(
		field("changes", counted(field("faction", ref), field("rank", i8))),
		field("faction", ref),
		field("rank", i8),
	),
	TypeActorCause:           sequence(field("cause", u32)),
	TypeCombatStyle:          singleRef("style"),
	TypeOpenCloseActivateRef: singleRef("reference"),
	TypeAmmo:                 sequence(field("ammo", ref), field("count", u32)),
	TypePackageData:          decodePackageData,
	TypeSayTopicInfoOnceADay: sequence(
		field("topics", counted(field("topic", ref), field("day", u32), field("unknown", u32))),
	),
	TypeEncounterZone: singleRef("zone"),
	TypeGuardedRefData: sequence(
		field("guarded", counted(field("reference", ref), field("unknown", u32), field("flag", u8))),
	),
	TypeAshPileRef: singleRef("reference"),
	TypeFollowerSwimBreadcrumbs: sequence(
		field("position", repeat(3, f32)),
		field("cell", ref),
		field("unknown", u32),
		field("breadcrumbs", counted(
			field("from", repeat(3, f32)),
			field("from_cell", ref),
			field("to", repeat(3, f32)),
			field("to_cell", ref),
			field("flag", u8),
		)),
	),
	TypeAliasInstanceArray: sequence(
		field("aliases", counted(field("quest", ref), field("alias", u32))),
	),
	TypePromotedRef:     sequence(field("references", counted(field("reference", ref)))),
	TypeOutfitItem:      singleRef("outfit"),
	TypeSceneData:       singleRef("scene"),
	TypeFromAlias:       sequence(field("quest", ref), field("alias", u32)),
	TypeShouldWear:      sequence(field("value", u8)),
	TypeTextDisplayData: decodeTextDisplayData,
	TypeEnchantment:     sequence(field("enchantment", ref), field("charge", u16)),
	TypeSoul:            sequence(field("soul", u8)),
	TypeForcedTarget:    singleRef("target"),
	TypeUniqueID:        sequence(field("id", u32), field("prefix", u16)),
	TypeFlags:           sequence(field("flags", u32)),
	TypeRefrPath: sequence(
		field("points", repeat(3*6, f32)),
		field("unknown", repeat(4, u32)),
	),
	TypeForcedLandingMarker: singleRef("marker"),
	TypeInteraction: sequence(
		field("unknown", u32),
		field("from", ref),
		field("to", ref),
		field("flag", u8),
	),
	TypeScriptedAnimDependence: singleRef("reference"),
	TypeCachedScale:            singleRef("reference"),
}
