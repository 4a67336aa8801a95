package sglobal

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// EncodeBlock frames payload as a global data block of type t.
func EncodeBlock(t Type, payload []byte) []byte {
	return lbytes.Concat(
		lbytes.EncodeUint32(uint32(t)),
		lbytes.EncodeUint32(uint32(len(payload))),
		payload,
	)
}

func EncodeMiscStats(stats ...Stat) []byte {
	bs := lbytes.EncodeUint32(uint32(len(stats)))
	for _, stat := range stats {
		bs = append(bs, lbytes.EncodeWString(stat.Name)...)
		bs = append(bs, uint8(stat.Category))
		bs = append(bs, lbytes.EncodeUint32(stat.Value)...)
	}
	return bs
}

func EncodeEnchantment(enchantment Enchantment) []byte {
	bs := lbytes.Concat(
		enchantment.RefID.Encode(),
		lbytes.EncodeUint32(enchantment.TimesUsed),
		lbytes.MustEncodeVsval(uint32(len(enchantment.Effects))),
	)
	for _, effect := range enchantment.Effects {
		bs = append(bs, lbytes.Concat(
			effect.EffectID.Encode(),
			lbytes.EncodeFloat32(effect.Magnitude),
			lbytes.EncodeUint32(effect.Duration),
			lbytes.EncodeUint32(effect.Area),
			lbytes.EncodeFloat32(effect.Price),
		)...)
	}
	return bs
}

func EncodeCreatedObjects(created CreatedObjects) []byte {
	bs := []byte{}
	for _, list := range [][]Enchantment{created.Weapons, created.Armours, created.Potions, created.Poisons} {
		bs = append(bs, lbytes.MustEncodeVsval(uint32(len(list)))...)
		for _, enchantment := range list {
			bs = append(bs, EncodeEnchantment(enchantment)...)
		}
	}
	return bs
}
