package erecord

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/efield"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// EncodeRecord writes a record with its type tag. DataSize is computed; the
// payload is deflated when header carries FlagCompressed.
func EncodeRecord(header Header, fields ...efield.Field) []byte {
	payload := efield.EncodeFields(fields...)
	if header.Flags.Has(FlagCompressed) {
		payload = lbytes.Concat(
			lbytes.EncodeUint32(uint32(len(payload))),
			lbytes.Deflate(payload),
		)
	}
	header.DataSize = uint32(len(payload))
	return lbytes.Concat(EncodeHeader(header), payload)
}

// EncodeHeader writes the 24 header bytes as they are, DataSize included.
func EncodeHeader(header Header) []byte {
	return lbytes.Concat(
		[]byte(header.Type),
		lbytes.EncodeUint32(header.DataSize),
		lbytes.EncodeUint32(uint32(header.Flags)),
		lbytes.EncodeUint32(header.FormID),
		lbytes.EncodeUint32(header.Revision),
		lbytes.EncodeUint16(header.Version),
		lbytes.EncodeUint16(header.Unknown),
	)
}

// ZStringField and the helpers below build fixture fields.
func ZStringField(fieldType string, s string) efield.Field {
	return efield.Field{Type: fieldType, Data: lbytes.EncodeZString(s)}
}

func Uint32Field(fieldType string, value uint32) efield.Field {
	return efield.Field{Type: fieldType, Data: lbytes.EncodeUint32(value)}
}

func ValueWeightField(value uint32, weight float32) efield.Field {
	return efield.Field{
		Type: "DATA",
		Data: lbytes.Concat(lbytes.EncodeUint32(value), lbytes.EncodeFloat32(weight)),
	}
}

func EffectFields(effect Effect) []efield.Field {
	return []efield.Field{
		Uint32Field("EFID", effect.EffectID),
		{
			Type: "EFIT",
			Data: lbytes.Concat(
				lbytes.EncodeFloat32(effect.Magnitude),
				lbytes.EncodeUint32(effect.AreaOfEffect),
				lbytes.EncodeUint32(effect.Duration),
			),
		},
	}
}

// MagicEffectDataField lays out an MGEF DATA field with the given values and
// zeroes elsewhere.
func MagicEffectDataField(record MagicEffect) efield.Field {
	return efield.Field{
		Type: "DATA",
		Data: lbytes.Concat(
			lbytes.EncodeUint32(record.Flags),
			lbytes.EncodeFloat32(record.BaseCost),
			lbytes.EncodeUint32(record.RelatedID),
			lbytes.EncodeValueInt(record.Skill),
			lbytes.EncodeUint32(record.ResistanceAV),
			make([]byte, 16),
			lbytes.EncodeUint32(record.SkillLevel),
			lbytes.EncodeUint32(record.Area),
			lbytes.EncodeFloat32(record.CastingTime),
			make([]byte, 12),
			lbytes.EncodeUint32(record.EffectType),
			lbytes.EncodeValueInt(record.PrimaryAV),
		),
	}
}
