package erecord

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/efield"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

var decoders = map[string]decodeFunc{
	TypePluginHeader: decodePluginHeader,
	TypeMagicEffect:  decodeMagicEffect,
	TypeIngredient:   decodeIngredient,
	TypePotion:       decodePotion,
	TypeEnchantment:  decodeEnchantment,
	TypeArmor:        decodeArmor,
	TypeMisc:         decodeMisc,
	TypeScroll:       decodeScroll,
	TypeBook:         decodeBook,
	TypeWeapon:       decodeWeapon,
	TypeAmmo:         decodeAmmo,
	TypeSoulGem:      decodeSoulGem,
	TypeKey:          decodeKey,
}

// KnownTypes lists the record types with a typed decoder, sorted.
func KnownTypes() []string {
	types := maps.Keys(decoders)
	slices.Sort(types)
	return types
}

// ItemTypes lists the known types that are also group labels worth
// descending into, that is every known type but the plugin header.
func ItemTypes() []string {
	return lo.Filter(KnownTypes(), func(recordType string, _ int) bool {
		return recordType != TypePluginHeader
	})
}

func IsKnown(recordType string) bool {
	_, ok := decoders[recordType]
	return ok
}

// ReadHeader reads the 20 header bytes following an already consumed type
// tag.
func ReadHeader(reader *lbytes.Reader, recordType string) (Header, error) {
	header := Header{Type: recordType}
	err := error(nil)
	if header.DataSize, err = reader.ReadUint32(); err != nil {
		return Header{}, errors.Wrap(err, "erecord.ReadHeader error reading size")
	}
	flags, err := reader.ReadUint32()
	if err != nil {
		return Header{}, errors.Wrap(err, "erecord.ReadHeader error reading flags")
	}
	header.Flags = Flags(flags)
	if header.FormID, err = reader.ReadUint32(); err != nil {
		return Header{}, errors.Wrap(err, "erecord.ReadHeader error reading form id")
	}
	if header.Revision, err = reader.ReadUint32(); err != nil {
		return Header{}, errors.Wrap(err, "erecord.ReadHeader error reading revision")
	}
	if header.Version, err = reader.ReadUint16(); err != nil {
		return Header{}, errors.Wrap(err, "erecord.ReadHeader error reading version")
	}
	if header.Unknown, err = reader.ReadUint16(); err != nil {
		return Header{}, errors.Wrap(err, "erecord.ReadHeader error reading unknown")
	}
	return header, nil
}

// ReadPayload returns the field bytes of a record whose header was just read,
// inflating them when the record is compressed.
func ReadPayload(reader *lbytes.Reader, header Header) ([]byte, error) {
	if !header.Flags.Has(FlagCompressed) {
		payload, err := reader.ReadBytes(int(header.DataSize))
		if err != nil {
			err := errors.Wrap(err, "erecord.ReadPayload error")
			return nil, err
		}
		return payload, nil
	}

	if header.DataSize < 4 {
		return nil, lbytes.ErrMalformedPrimitive{
			Kind:   lbytes.KindBytes,
			Offset: reader.Offset(),
			Reason: "compressed record smaller than its decompressed size field",
		}
	}
	decompressedSize, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "erecord.ReadPayload error reading decompressed size")
		return nil, err
	}
	compressed, err := reader.ReadBytes(int(header.DataSize - 4))
	if err != nil {
		err := errors.Wrap(err, "erecord.ReadPayload error reading compressed data")
		return nil, err
	}
	payload, err := lbytes.Inflate(compressed, int(decompressedSize))
	if err != nil {
		err := errors.Wrapf(err, "erecord.ReadPayload error inflating %s %08X", header.Type, header.FormID)
		return nil, err
	}
	return payload, nil
}

// Decode reads one record after its type tag and returns the typed view.
func Decode(reader *lbytes.Reader, recordType string, ctx Context) (Record, error) {
	offset := reader.Offset() - 4
	decode, ok := decoders[recordType]
	if !ok {
		return nil, ErrUnknownRecordType{Type: recordType, Offset: offset}
	}
	header, err := ReadHeader(reader, recordType)
	if err != nil {
		err := errors.Wrap(err, "erecord.Decode error")
		return nil, err
	}
	payload, err := ReadPayload(reader, header)
	if err != nil {
		err := errors.Wrap(err, "erecord.Decode error")
		return nil, err
	}
	fields, err := efield.DecodeFields(payload)
	if err != nil {
		err := errors.Wrapf(err, "erecord.Decode error reading fields of %s %08X", recordType, header.FormID)
		return nil, err
	}
	record, err := decode(Common{Header: header}, fields, ctx)
	if err != nil {
		err := errors.Wrapf(err, "erecord.Decode error interpreting %s %08X", recordType, header.FormID)
		return nil, err
	}
	return record, nil
}

// Skip consumes a record after its type tag without decoding the payload.
func Skip(reader *lbytes.Reader, recordType string) (Header, error) {
	header, err := ReadHeader(reader, recordType)
	if err != nil {
		err := errors.Wrap(err, "erecord.Skip error")
		return Header{}, err
	}
	if err := reader.Skip(int64(header.DataSize)); err != nil {
		err := errors.Wrapf(err, "erecord.Skip error skipping %s %08X", recordType, header.FormID)
		return Header{}, err
	}
	return header, nil
}
